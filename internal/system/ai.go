package system

import (
	"math"
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/data"
	"github.com/gravemoor/sim/internal/scripting"
)

// AISystem decides each agent's movement intent once per tick: it packs the
// agent's situation into a behavior context, asks the Lua engine for an
// action, and writes the scaled result into the Velocity store.
type AISystem struct {
	stores *Stores
	agents *data.AgentTable
	lua    *scripting.Engine
	tick   int
}

func NewAISystem(stores *Stores, agents *data.AgentTable, lua *scripting.Engine) *AISystem {
	return &AISystem{stores: stores, agents: agents, lua: lua}
}

func (s *AISystem) Update(_ time.Duration) {
	s.tick++

	s.stores.Agent.Each(func(id ecs.EntityID, ag *component.Agent) {
		pos, ok := s.stores.Pos.TryGet(id)
		if !ok {
			return
		}
		vel, ok := s.stores.Vel.TryGet(id)
		if !ok {
			return
		}

		ctx := scripting.BehaviorContext{
			Species: ag.Species,
			SpawnX:  ag.SpawnX,
			SpawnY:  ag.SpawnY,
			Tick:    s.tick,
		}
		ctx.X, ctx.Y = pos.Cell()
		if hp, ok := s.stores.HP.TryGet(id); ok {
			ctx.HP = hp.Current
			ctx.MaxHP = hp.Max
		}
		if foe, ok := s.nearestFoe(id); ok {
			fx, fy := foe.Cell()
			ctx.NearestFoeDX = fx - ctx.X
			ctx.NearestFoeDY = fy - ctx.Y
			ctx.HasFoe = true
		}

		action := s.lua.DecideAction(ag.Behavior, ctx)

		speed := 1.0
		if tmpl := s.agents.Get(ag.Species); tmpl != nil && tmpl.Speed > 0 {
			speed = tmpl.Speed
		}
		vel.VX = action.DX * speed
		vel.VY = action.DY * speed
	})
}

// nearestFoe returns the position of the closest entity on the opposite
// side (hostile vs non-hostile) of id. The combat store is the driver: it
// is far smaller than the position store.
func (s *AISystem) nearestFoe(id ecs.EntityID) (component.Position, bool) {
	self, ok := s.stores.Pos.TryGet(id)
	if !ok {
		return component.Position{}, false
	}
	selfHostile := false
	if c, ok := s.stores.Combat.TryGet(id); ok {
		selfHostile = c.Hostile
	}

	var best component.Position
	bestDist := math.MaxFloat64
	found := false
	ecs.Each2(s.stores.Combat, s.stores.Pos, func(other ecs.EntityID, c *component.Combat, p *component.Position) {
		if other == id || c.Hostile == selfHostile {
			return
		}
		dx := p.X - self.X
		dy := p.Y - self.Y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = *p
			found = true
		}
	})
	return best, found
}
