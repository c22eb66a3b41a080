package system

import (
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/scripting"
)

// RegenSystem restores health to wounded agents. The pulse interval and
// amount come from Lua formulas per species, so balance tuning never
// touches Go code.
type RegenSystem struct {
	stores *Stores
	lua    *scripting.Engine
	tick   int
}

func NewRegenSystem(stores *Stores, lua *scripting.Engine) *RegenSystem {
	return &RegenSystem{stores: stores, lua: lua}
}

func (s *RegenSystem) Update(_ time.Duration) {
	s.tick++

	ecs.Each2(s.stores.Agent, s.stores.HP, func(_ ecs.EntityID, ag *component.Agent, hp *component.Health) {
		if hp.Current <= 0 || hp.Current >= hp.Max {
			return
		}
		interval := s.lua.RegenInterval(ag.Species, hp.Max)
		if s.tick%interval != 0 {
			return
		}
		hp.Current += s.lua.RegenAmount(ag.Species, hp.Current, hp.Max)
		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}
	})
}
