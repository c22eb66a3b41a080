package system

import (
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
)

// LifetimeSystem counts down timed entities and queues expired ones for
// end-of-tick destruction. Destruction is deferred so systems later in the
// same tick still see a consistent world.
type LifetimeSystem struct {
	world  *ecs.World
	stores *Stores
}

func NewLifetimeSystem(w *ecs.World, stores *Stores) *LifetimeSystem {
	return &LifetimeSystem{world: w, stores: stores}
}

func (s *LifetimeSystem) Update(_ time.Duration) {
	s.stores.Life.Each(func(id ecs.EntityID, l *component.Lifetime) {
		l.TicksLeft--
		if l.TicksLeft <= 0 {
			s.world.MarkForDestruction(id)
		}
	})
}
