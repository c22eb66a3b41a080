package system

import (
	"time"

	"github.com/gravemoor/sim/internal/core/event"
)

// EventSystem rotates the event bus at tick start: everything emitted last
// tick becomes readable, and subscribed handlers fire. Every other system
// declares "after EventSystem" so published results are stable for the
// whole tick.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
