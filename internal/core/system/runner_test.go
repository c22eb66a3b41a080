package system_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gravemoor/sim/internal/core/system"
)

// Test systems append their name to a shared trace so order is observable.

type trace struct{ calls []string }

type inputSys struct{ tr *trace }
type logicSys struct{ tr *trace }
type outputSys struct{ tr *trace }
type renderSys struct{ tr *trace }

func (s *inputSys) Update(time.Duration)  { s.tr.calls = append(s.tr.calls, "input") }
func (s *logicSys) Update(time.Duration)  { s.tr.calls = append(s.tr.calls, "logic") }
func (s *outputSys) Update(time.Duration) { s.tr.calls = append(s.tr.calls, "output") }
func (s *renderSys) Update(time.Duration) { s.tr.calls = append(s.tr.calls, "render") }
func (s *renderSys) Draw(time.Duration)   { s.tr.calls = append(s.tr.calls, "render.draw") }

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestConstraintOrdering(t *testing.T) {
	tr := &trace{}
	r := system.NewRunner()

	// Register in reverse of the intended order; constraints must win.
	if err := r.Register(&outputSys{tr}, system.Kind[logicSys]()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&logicSys{tr}, system.Kind[inputSys]()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&inputSys{tr}); err != nil {
		t.Fatal(err)
	}

	r.Tick(time.Millisecond)
	assertOrder(t, tr.calls, []string{"input", "logic", "output"})
}

func TestRegistrationOrderBreaksTies(t *testing.T) {
	tr := &trace{}
	r := system.NewRunner()

	// No constraints at all: resolved order is registration order.
	if err := r.Register(&renderSys{tr}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&inputSys{tr}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&logicSys{tr}); err != nil {
		t.Fatal(err)
	}

	r.Tick(time.Millisecond)
	assertOrder(t, tr.calls, []string{"render", "input", "logic"})
}

func TestDuplicateRegistrationFails(t *testing.T) {
	r := system.NewRunner()
	if err := r.Register(&inputSys{&trace{}}); err != nil {
		t.Fatal(err)
	}
	err := r.Register(&inputSys{&trace{}})
	if !errors.Is(err, system.ErrDuplicateSystem) {
		t.Fatalf("expected ErrDuplicateSystem, got %v", err)
	}
}

func TestCycleFailsAtResolution(t *testing.T) {
	r := system.NewRunner()
	if err := r.Register(&inputSys{&trace{}}, system.Kind[logicSys]()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&logicSys{&trace{}}, system.Kind[inputSys]()); err != nil {
		t.Fatal(err)
	}

	err := r.Resolve()
	if !errors.Is(err, system.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	// The error names the systems involved.
	if !strings.Contains(err.Error(), "inputSys") || !strings.Contains(err.Error(), "logicSys") {
		t.Errorf("cycle error does not name the offenders: %v", err)
	}
}

func TestCycleErrorOmitsDownstreamDependents(t *testing.T) {
	r := system.NewRunner()
	if err := r.Register(&inputSys{&trace{}}, system.Kind[logicSys]()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&logicSys{&trace{}}, system.Kind[inputSys]()); err != nil {
		t.Fatal(err)
	}
	// outputSys depends on the cycle but is not part of it.
	if err := r.Register(&outputSys{&trace{}}, system.Kind[logicSys]()); err != nil {
		t.Fatal(err)
	}

	err := r.Resolve()
	if !errors.Is(err, system.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if !strings.Contains(err.Error(), "inputSys") || !strings.Contains(err.Error(), "logicSys") {
		t.Errorf("cycle error does not name the cycle members: %v", err)
	}
	if strings.Contains(err.Error(), "outputSys") {
		t.Errorf("cycle error names a system outside the cycle: %v", err)
	}
}

func TestUnregisteredConstraintIgnored(t *testing.T) {
	tr := &trace{}
	r := system.NewRunner()

	// logicSys runs after inputSys, but inputSys is never registered — a
	// headless partial configuration, not an error.
	if err := r.Register(&logicSys{tr}, system.Kind[inputSys]()); err != nil {
		t.Fatal(err)
	}
	if err := r.Resolve(); err != nil {
		t.Fatalf("unregistered constraint should be ignored: %v", err)
	}

	r.Tick(time.Millisecond)
	assertOrder(t, tr.calls, []string{"logic"})
}

func TestRegisterAfterResolveFails(t *testing.T) {
	r := system.NewRunner()
	if err := r.Register(&inputSys{&trace{}}); err != nil {
		t.Fatal(err)
	}
	if err := r.Resolve(); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&logicSys{&trace{}}); !errors.Is(err, system.ErrResolved) {
		t.Fatalf("expected ErrResolved, got %v", err)
	}
}

func TestDrawRunsDrawersOnly(t *testing.T) {
	tr := &trace{}
	r := system.NewRunner()
	if err := r.Register(&inputSys{tr}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&renderSys{tr}, system.Kind[inputSys]()); err != nil {
		t.Fatal(err)
	}

	r.Tick(time.Millisecond)
	r.Draw(time.Second)
	assertOrder(t, tr.calls, []string{"input", "render", "render.draw"})
}

func TestResolveIsStableAcrossTicks(t *testing.T) {
	tr := &trace{}
	r := system.NewRunner()
	if err := r.Register(&logicSys{tr}, system.Kind[inputSys]()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&inputSys{tr}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		r.Tick(time.Millisecond)
	}
	assertOrder(t, tr.calls, []string{
		"input", "logic",
		"input", "logic",
		"input", "logic",
	})
}

func TestGetTypedLookup(t *testing.T) {
	tr := &trace{}
	r := system.NewRunner()
	want := &logicSys{tr}
	if err := r.Register(want); err != nil {
		t.Fatal(err)
	}

	got, ok := system.Get[logicSys](r)
	if !ok {
		t.Fatal("registered system not found")
	}
	if got != want {
		t.Error("Get returned a different instance")
	}

	if _, ok := system.Get[renderSys](r); ok {
		t.Error("Get found a system that was never registered")
	}
}
