package system

import (
	"reflect"
	"time"
)

// System is the interface every update unit implements. Systems are stateful
// objects constructed during bootstrap; their state persists across ticks.
type System interface {
	Update(dt time.Duration)
}

// Drawer is implemented by systems that additionally produce per-frame draw
// output. Draw runs after all updates for the frame, in the same order.
type Drawer interface {
	Draw(now time.Duration)
}

// KindID identifies a system kind for ordering constraints and lookup. One
// type key per concrete system type, same trick as the event bus.
type KindID = reflect.Type

// Kind returns the KindID for system type T, for use in "run after"
// declarations: r.Register(sys, system.Kind[MovementSystem]()).
func Kind[T any]() KindID {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func kindOf(s System) KindID {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
