package component

// Health is a damageable pool. Dead entities (Current <= 0) are handled by
// the combat system, not here.
type Health struct {
	Current int
	Max     int
}

// Combat gives an entity touch damage: any hostile sharing its cell takes
// Damage once per Cooldown ticks.
type Combat struct {
	Damage       int
	Cooldown     int // ticks between strikes
	TicksToReady int // internal counter, 0 = ready
	Hostile      bool
}
