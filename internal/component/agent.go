package component

// Agent marks an entity as a scripted actor and records which behavior
// drives it. Species keys into the agent template table and the Lua
// behavior functions.
type Agent struct {
	Species  string
	Behavior string // Lua behavior key, e.g. "wander", "hunt"
	SpawnX   int
	SpawnY   int
}

// Lifetime counts an entity down to destruction. TicksLeft decrements once
// per tick; at zero the entity is queued for end-of-tick cleanup.
type Lifetime struct {
	TicksLeft int
}
