package system

import (
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/core/event"
	coresys "github.com/gravemoor/sim/internal/core/system"
	"github.com/gravemoor/sim/internal/data"
	"github.com/gravemoor/sim/internal/persist"
	"github.com/gravemoor/sim/internal/scripting"
	"go.uber.org/zap"
)

// Deps bundles everything the standard system set needs.
type Deps struct {
	World  *ecs.World
	Stores *Stores
	Bus    *event.Bus
	Agents *data.AgentTable
	Spawns []data.SpawnEntry
	Grid   *data.GridMap
	Lua    *scripting.Engine
	Log    *zap.Logger

	SnapshotRepo  *persist.SnapshotRepo // nil runs without persistence
	SnapshotEvery int
	SnapshotKeep  int
}

// RegisterAll registers the standard system set with its ordering
// constraints. The declared partial order, not registration order, is what
// guarantees events swap before spawning, intents are decided before
// movement, damage lands after movement, and cleanup runs last.
func RegisterAll(d *Deps) error {
	w := d.World

	if err := w.RegisterSystem(NewEventSystem(d.Bus)); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewSpawnSystem(w, d.Stores, d.Agents, d.Spawns, d.Bus, d.Log),
		coresys.Kind[EventSystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewAISystem(d.Stores, d.Agents, d.Lua),
		coresys.Kind[SpawnSystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewMovementSystem(d.Stores, d.Grid),
		coresys.Kind[AISystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewCombatSystem(w, d.Stores, d.Bus),
		coresys.Kind[MovementSystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewRegenSystem(d.Stores, d.Lua),
		coresys.Kind[CombatSystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewLifetimeSystem(w, d.Stores),
		coresys.Kind[RegenSystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewSnapshotSystem(d.Stores, d.SnapshotRepo, d.SnapshotEvery, d.SnapshotKeep, d.Log),
		coresys.Kind[LifetimeSystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewRenderSystem(d.Stores, d.Grid, w.Runner(), d.Log),
		coresys.Kind[CombatSystem](),
	); err != nil {
		return err
	}
	if err := w.RegisterSystem(
		NewCleanupSystem(w),
		coresys.Kind[LifetimeSystem](),
		coresys.Kind[SnapshotSystem](),
		coresys.Kind[RenderSystem](),
	); err != nil {
		return err
	}

	return w.Finalize()
}
