package event

import "github.com/gravemoor/sim/internal/core/ecs"

// Simulation event types published between systems.

// AgentSpawned is emitted by the spawn system when a new agent enters the
// world.
type AgentSpawned struct {
	ID      ecs.EntityID
	Species string
	X, Y    int
}

// EntityDied is emitted by the combat system when a health pool reaches
// zero. Killer is zero when the death had no attacker (lifetime expiry).
type EntityDied struct {
	ID     ecs.EntityID
	Killer ecs.EntityID
	X, Y   int
}
