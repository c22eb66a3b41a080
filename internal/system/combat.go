package system

import (
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/core/event"
)

// corpseLinger is how many ticks a corpse stays tagged before cleanup.
const corpseLinger = 25

// CombatSystem applies touch damage: every ready attacker strikes one foe
// sharing its cell. A kill tags the victim "corpse", strips its agency, and
// leaves the body to expire via Lifetime. Kill counts are published per
// tick for other systems to read.
type CombatSystem struct {
	world  *ecs.World
	stores *Stores
	bus    *event.Bus

	// KillsTotal is the running kill count across the whole run, readable
	// by other systems via typed lookup.
	KillsTotal int
}

func NewCombatSystem(w *ecs.World, stores *Stores, bus *event.Bus) *CombatSystem {
	return &CombatSystem{world: w, stores: stores, bus: bus}
}

// pendingKill defers a death out of the strike scan: kill mutates the
// Combat store, which must not happen while Each walks it.
type pendingKill struct {
	victim, killer ecs.EntityID
	x, y           int
}

func (s *CombatSystem) Update(_ time.Duration) {
	var kills []pendingKill
	s.stores.Combat.Each(func(attacker ecs.EntityID, c *component.Combat) {
		if c.TicksToReady > 0 {
			c.TicksToReady--
			return
		}
		apos, ok := s.stores.Pos.TryGet(attacker)
		if !ok {
			return
		}
		ax, ay := apos.Cell()

		victim, ok := s.findVictim(attacker, c.Hostile, ax, ay)
		if !ok {
			return
		}
		c.TicksToReady = c.Cooldown

		hp, err := s.stores.HP.Get(victim)
		if err != nil {
			return
		}
		hp.Current -= c.Damage
		if hp.Current > 0 {
			return
		}
		kills = append(kills, pendingKill{victim: victim, killer: attacker, x: ax, y: ay})
	})
	for _, k := range kills {
		s.kill(k.victim, k.killer, k.x, k.y)
	}
}

// findVictim returns a damageable entity in the attacker's cell on the
// opposite side, skipping corpses.
func (s *CombatSystem) findVictim(attacker ecs.EntityID, hostile bool, ax, ay int) (ecs.EntityID, bool) {
	var victim ecs.EntityID
	found := false
	ecs.Each2(s.stores.HP, s.stores.Pos, func(id ecs.EntityID, hp *component.Health, p *component.Position) {
		if found || id == attacker {
			return
		}
		// Skip corpses and anyone already struck down earlier this tick.
		if hp.Current <= 0 || s.world.HasTag(id, "corpse") {
			return
		}
		if c, ok := s.stores.Combat.TryGet(id); ok && c.Hostile == hostile {
			return // same side
		}
		x, y := p.Cell()
		if x == ax && y == ay {
			victim = id
			found = true
		}
	})
	return victim, found
}

func (s *CombatSystem) kill(victim, killer ecs.EntityID, x, y int) {
	s.KillsTotal++

	// The body stops acting and fighting but lingers for a few ticks.
	s.stores.Agent.Remove(victim)
	s.stores.Combat.Remove(victim)
	s.stores.Vel.Remove(victim)
	s.world.AddTag(victim, "corpse")
	s.stores.Life.Set(victim, component.Lifetime{TicksLeft: corpseLinger})
	if r, ok := s.stores.Render.TryGet(victim); ok {
		r.Glyph = '%'
		r.Layer = 0
	}

	event.Emit(s.bus, event.EntityDied{ID: victim, Killer: killer, X: x, Y: y})
}
