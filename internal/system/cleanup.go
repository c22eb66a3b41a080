package system

import (
	"time"

	"github.com/gravemoor/sim/internal/core/ecs"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// It declares "after" every system that can mark entities, so it is always
// the last update of the tick.
type CleanupSystem struct {
	world *ecs.World
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
}
