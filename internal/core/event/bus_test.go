package event_test

import (
	"testing"

	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/core/event"
)

func TestEmitIsVisibleNextTick(t *testing.T) {
	b := event.NewBus()
	event.Emit(b, event.EntityDied{ID: ecs.NewEntityID(1, 0)})

	// Same tick: nothing published yet.
	if got := event.Events[event.EntityDied](b); got != nil {
		t.Fatalf("event visible before buffer swap: %v", got)
	}

	b.SwapBuffers()
	got := event.Events[event.EntityDied](b)
	if len(got) != 1 || got[0].ID != ecs.NewEntityID(1, 0) {
		t.Fatalf("expected one EntityDied, got %v", got)
	}

	// Next swap clears it.
	b.SwapBuffers()
	if got := event.Events[event.EntityDied](b); got != nil {
		t.Errorf("event survived two swaps: %v", got)
	}
}

func TestSubscribeDispatch(t *testing.T) {
	b := event.NewBus()
	var seen []string
	event.Subscribe(b, func(ev event.AgentSpawned) {
		seen = append(seen, ev.Species)
	})

	event.Emit(b, event.AgentSpawned{Species: "wisp"})
	event.Emit(b, event.AgentSpawned{Species: "revenant"})
	b.SwapBuffers()
	b.DispatchAll()

	if len(seen) != 2 || seen[0] != "wisp" || seen[1] != "revenant" {
		t.Errorf("expected [wisp revenant], got %v", seen)
	}
}

func TestEventTypesDoNotCross(t *testing.T) {
	b := event.NewBus()
	event.Emit(b, event.AgentSpawned{Species: "wisp"})
	b.SwapBuffers()

	if got := event.Events[event.EntityDied](b); got != nil {
		t.Errorf("EntityDied query returned AgentSpawned events: %v", got)
	}
	if got := event.Events[event.AgentSpawned](b); len(got) != 1 {
		t.Errorf("expected 1 AgentSpawned, got %v", got)
	}
}
