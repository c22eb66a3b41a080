package ecs_test

import (
	"errors"
	"testing"

	"github.com/gravemoor/sim/internal/core/ecs"
)

type Position struct{ X, Y float64 }
type Velocity struct{ VX, VY float64 }
type Health struct{ Current, Max int }

func TestStoreSetGet(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Health]()

	e := p.Create()
	s.Set(e, Health{Current: 5, Max: 5})

	h, err := s.Get(e)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if h.Current != 5 {
		t.Errorf("expected 5, got %d", h.Current)
	}

	// Mutation through the returned pointer sticks.
	h.Current = 3
	h2, _ := s.Get(e)
	if h2.Current != 3 {
		t.Errorf("expected mutation to stick, got %d", h2.Current)
	}
}

func TestStoreGetMissing(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Health]()
	e := p.Create()

	if _, err := s.Get(e); !errors.Is(err, ecs.ErrMissingComponent) {
		t.Fatalf("expected ErrMissingComponent, got %v", err)
	}
	if _, ok := s.TryGet(e); ok {
		t.Error("TryGet reported a component that was never set")
	}
	if s.Has(e) {
		t.Error("Has reported a component that was never set")
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Health]()
	e := p.Create()

	s.Set(e, Health{Current: 5, Max: 5})
	s.Set(e, Health{Current: 9, Max: 9})
	if s.Len() != 1 {
		t.Fatalf("overwrite grew the store: len=%d", s.Len())
	}
	h, _ := s.Get(e)
	if h.Current != 9 {
		t.Errorf("expected overwritten value 9, got %d", h.Current)
	}
}

func TestStoreRemove(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Health]()
	e := p.Create()

	s.Set(e, Health{Current: 5, Max: 5})
	s.Remove(e)
	if s.Has(e) {
		t.Error("Has true after Remove")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, len=%d", s.Len())
	}

	// Removing again is a no-op, as is removing an unknown entity.
	s.Remove(e)
	s.Remove(p.Create())
}

func TestStoreSwapRemoveIntegrity(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Health]()

	ids := make([]ecs.EntityID, 500)
	for i := range ids {
		ids[i] = p.Create()
		s.Set(ids[i], Health{Current: i, Max: i})
	}

	// Remove every even-positioned entity's component.
	for i := 0; i < len(ids); i += 2 {
		s.Remove(ids[i])
	}

	if s.Len() != 250 {
		t.Fatalf("expected 250 live components, got %d", s.Len())
	}
	for i := 1; i < len(ids); i += 2 {
		h, err := s.Get(ids[i])
		if err != nil {
			t.Fatalf("entity %d lost its component: %v", i, err)
		}
		if h.Current != i {
			t.Errorf("entity %d value corrupted by swap-remove: got %d", i, h.Current)
		}
	}
	for i := 0; i < len(ids); i += 2 {
		if s.Has(ids[i]) {
			t.Errorf("entity %d still present after remove", i)
		}
	}
}

func TestStoreStaleHandleAfterRecycle(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Health]()

	old := p.Create()
	s.Set(old, Health{Current: 1, Max: 1})
	s.Remove(old)
	p.Destroy(old)

	// Recycled slot, new generation, new component.
	fresh := p.Create()
	s.Set(fresh, Health{Current: 42, Max: 42})

	// The stale handle shares the sparse index but must not see the new data.
	if s.Has(old) {
		t.Error("stale handle resolves to the recycled entity's component")
	}
	if _, err := s.Get(old); err == nil {
		t.Error("Get with a stale handle should fail")
	}
	h, _ := s.Get(fresh)
	if h == nil || h.Current != 42 {
		t.Error("live entity's component damaged by stale lookup")
	}
}

func TestStoreStaleSetDropped(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Health]()

	old := p.Create()
	s.Set(old, Health{Current: 1, Max: 1})
	s.Remove(old)
	p.Destroy(old)

	fresh := p.Create()
	s.Set(fresh, Health{Current: 42, Max: 42})

	// A write through the dead handle must not touch the recycled slot's
	// new tenant, and must not resurrect the dead handle's component.
	s.Set(old, Health{Current: 7, Max: 7})

	h, err := s.Get(fresh)
	if err != nil {
		t.Fatal("live entity lost its component after a stale Set")
	}
	if h.Current != 42 {
		t.Errorf("stale Set overwrote the live entity: HP=%d", h.Current)
	}
	if s.Has(old) {
		t.Error("destroyed handle reports a live component")
	}
}

func TestStoreEachVisitsAll(t *testing.T) {
	p := ecs.NewEntityPool()
	s := ecs.NewStore[Position]()

	want := map[ecs.EntityID]float64{}
	for i := 0; i < 20; i++ {
		e := p.Create()
		s.Set(e, Position{X: float64(i)})
		want[e] = float64(i)
	}

	seen := 0
	s.Each(func(id ecs.EntityID, pos *Position) {
		seen++
		if want[id] != pos.X {
			t.Errorf("entity %d: expected X=%v, got %v", id.Index(), want[id], pos.X)
		}
	})
	if seen != 20 {
		t.Errorf("Each visited %d of 20", seen)
	}
}
