package system

import (
	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
)

// Stores bundles the component stores the gameplay systems share. Every
// store is hooked into the world's destroy cascade at construction.
type Stores struct {
	Pos    *ecs.Store[component.Position]
	Vel    *ecs.Store[component.Velocity]
	HP     *ecs.Store[component.Health]
	Agent  *ecs.Store[component.Agent]
	Life   *ecs.Store[component.Lifetime]
	Combat *ecs.Store[component.Combat]
	Render *ecs.Store[component.Renderable]
}

func NewStores(w *ecs.World) *Stores {
	return &Stores{
		Pos:    ecs.RegisterStore[component.Position](w),
		Vel:    ecs.RegisterStore[component.Velocity](w),
		HP:     ecs.RegisterStore[component.Health](w),
		Agent:  ecs.RegisterStore[component.Agent](w),
		Life:   ecs.RegisterStore[component.Lifetime](w),
		Combat: ecs.RegisterStore[component.Combat](w),
		Render: ecs.RegisterStore[component.Renderable](w),
	}
}
