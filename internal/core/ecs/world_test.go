package ecs_test

import (
	"testing"
	"time"

	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/core/system"
)

func TestWorldDestroyCascades(t *testing.T) {
	w := ecs.NewWorld()
	pos := ecs.RegisterStore[Position](w)
	hp := ecs.RegisterStore[Health](w)

	e := w.CreateEntity()
	pos.Set(e, Position{X: 1})
	hp.Set(e, Health{Current: 5, Max: 5})
	w.AddTag(e, "enemy")
	w.AddTag(e, "undead")

	w.Destroy(e)

	if w.Alive(e) {
		t.Fatal("entity alive after Destroy")
	}
	if pos.Has(e) || hp.Has(e) {
		t.Error("component data survived Destroy")
	}
	if w.HasTag(e, "enemy") || w.HasTag(e, "undead") {
		t.Error("tags survived Destroy")
	}
	if w.Tags().Count("enemy") != 0 {
		t.Error("tag index still lists the destroyed entity")
	}
}

func TestWorldDestroyStaleHandleIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	hp := ecs.RegisterStore[Health](w)

	e := w.CreateEntity()
	w.Destroy(e)

	// Slot gets recycled; the stale handle must not reach the new entity.
	fresh := w.CreateEntity()
	hp.Set(fresh, Health{Current: 7, Max: 7})
	w.Destroy(e)

	if !w.Alive(fresh) {
		t.Error("stale Destroy killed the recycled entity")
	}
	if !hp.Has(fresh) {
		t.Error("stale Destroy stripped the recycled entity's components")
	}
}

func TestWorldDeferredDestruction(t *testing.T) {
	w := ecs.NewWorld()
	hp := ecs.RegisterStore[Health](w)

	e := w.CreateEntity()
	hp.Set(e, Health{Current: 1, Max: 1})
	w.AddTag(e, "corpse")

	w.MarkForDestruction(e)
	if !w.Alive(e) {
		t.Fatal("marked entity should stay alive until the flush")
	}

	w.FlushDestroyQueue()
	if w.Alive(e) || hp.Has(e) || w.HasTag(e, "corpse") {
		t.Error("flush did not fully destroy the entity")
	}

	// Queue is drained; a second flush is harmless.
	w.FlushDestroyQueue()
}

func TestWorldIndependentInstances(t *testing.T) {
	w1 := ecs.NewWorld()
	w2 := ecs.NewWorld()

	e1 := w1.CreateEntity()
	e2 := w2.CreateEntity()
	w1.AddTag(e1, "player")

	if w2.HasTag(e2, "player") {
		t.Error("worlds share tag state")
	}
	w1.Destroy(e1)
	if !w2.Alive(e2) {
		t.Error("destroying in one world affected another")
	}
}

// ---- frame entry point wiring ----

type recorder struct{ calls *[]string }

type updaterA recorder
type updaterB recorder

func (s *updaterA) Update(time.Duration) { *s.calls = append(*s.calls, "A.update") }
func (s *updaterB) Update(time.Duration) { *s.calls = append(*s.calls, "B.update") }
func (s *updaterB) Draw(time.Duration)   { *s.calls = append(*s.calls, "B.draw") }

func TestWorldUpdateAndDraw(t *testing.T) {
	w := ecs.NewWorld()
	var calls []string

	// B registered first but declared to run after A.
	if err := w.RegisterSystem(&updaterB{calls: &calls}, system.Kind[updaterA]()); err != nil {
		t.Fatal(err)
	}
	if err := w.RegisterSystem(&updaterA{calls: &calls}); err != nil {
		t.Fatal(err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatal(err)
	}

	w.Update(16 * time.Millisecond)
	w.Draw(time.Second)

	want := []string{"A.update", "B.update", "B.draw"}
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, calls)
		}
	}
}
