package system

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrDuplicateSystem reports a second registration of the same kind.
	ErrDuplicateSystem = errors.New("system: duplicate system kind")
	// ErrResolved reports a registration after the order was computed.
	ErrResolved = errors.New("system: execution order already resolved")
	// ErrCycle reports an ordering constraint cycle among registered systems.
	ErrCycle = errors.New("system: ordering constraint cycle")
)

type entry struct {
	sys   System
	kind  KindID
	after []KindID
}

// Runner holds all registered systems and executes them in an order that
// respects their declared "must run after" constraints. The order is
// computed once — lazily on the first Tick/Draw, or eagerly via Resolve —
// and reused for every subsequent tick.
type Runner struct {
	entries  []*entry // registration order
	byKind   map[KindID]*entry
	order    []System
	resolved bool
}

func NewRunner() *Runner {
	return &Runner{
		entries: make([]*entry, 0, 16),
		byKind:  make(map[KindID]*entry, 16),
	}
}

// Register records a system and the kinds it must run after. Constraints on
// kinds that are never registered are ignored at resolution: partial
// configurations (a lone system under test, headless setups) are expected,
// not errors. Registering two systems of one kind is a configuration error.
func (r *Runner) Register(s System, after ...KindID) error {
	k := kindOf(s)
	if r.resolved {
		return fmt.Errorf("%w: cannot register %s", ErrResolved, k)
	}
	if _, dup := r.byKind[k]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateSystem, k)
	}
	e := &entry{sys: s, kind: k, after: append([]KindID(nil), after...)}
	r.entries = append(r.entries, e)
	r.byKind[k] = e
	return nil
}

// Resolve computes a linear extension of the declared partial order with
// Kahn's algorithm. Ties between independent systems break by registration
// order, so the result is deterministic for a given registration sequence.
// A cycle is a configuration error naming the systems involved; the caller
// must not proceed to the frame loop.
func (r *Runner) Resolve() error {
	if r.resolved {
		return nil
	}

	indegree := make(map[*entry]int, len(r.entries))
	dependents := make(map[*entry][]*entry, len(r.entries))
	for _, e := range r.entries {
		for _, k := range e.after {
			dep, ok := r.byKind[k]
			if !ok {
				continue // constraint on an unregistered kind: ignored
			}
			dependents[dep] = append(dependents[dep], e)
			indegree[e]++
		}
	}

	order := make([]System, 0, len(r.entries))
	emitted := make(map[*entry]bool, len(r.entries))
	for len(order) < len(r.entries) {
		var next *entry
		for _, e := range r.entries {
			if !emitted[e] && indegree[e] == 0 {
				next = e
				break
			}
		}
		if next == nil {
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycleNames(r.entries, emitted, dependents), ", "))
		}
		emitted[next] = true
		order = append(order, next.sys)
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}

	r.order = order
	r.resolved = true
	return nil
}

// cycleNames names the systems participating in an ordering cycle. The
// un-emitted set also holds acyclic dependents downstream of the cycle;
// repeatedly trimming nodes with no outgoing edge inside the set strips
// them, since every true cycle member keeps at least one.
func cycleNames(entries []*entry, emitted map[*entry]bool, dependents map[*entry][]*entry) []string {
	remaining := make(map[*entry]bool, len(entries))
	for _, e := range entries {
		if !emitted[e] {
			remaining[e] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for e := range remaining {
			out := 0
			for _, d := range dependents[e] {
				if remaining[d] {
					out++
				}
			}
			if out == 0 {
				delete(remaining, e)
				changed = true
			}
		}
	}
	names := make([]string, 0, len(remaining))
	for _, e := range entries {
		if remaining[e] {
			names = append(names, e.kind.String())
		}
	}
	return names
}

func (r *Runner) ensureResolved() {
	if r.resolved {
		return
	}
	// A cycle here is a startup misconfiguration that survived to the frame
	// loop; there is no way to run the frame correctly.
	if err := r.Resolve(); err != nil {
		panic(err)
	}
}

// Tick invokes every system's update hook once, in resolved order.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureResolved()
	for _, s := range r.order {
		s.Update(dt)
	}
}

// Draw invokes every Drawer's draw hook once, in the same resolved order.
func (r *Runner) Draw(now time.Duration) {
	r.ensureResolved()
	for _, s := range r.order {
		if d, ok := s.(Drawer); ok {
			d.Draw(now)
		}
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	return len(r.entries)
}

// Order returns the resolved execution order as kind identifiers, resolving
// first if needed. For diagnostics and tests.
func (r *Runner) Order() []KindID {
	r.ensureResolved()
	kinds := make([]KindID, 0, len(r.order))
	for _, s := range r.order {
		kinds = append(kinds, kindOf(s))
	}
	return kinds
}

// Get returns the registered system of concrete type T, for systems that
// read each other's published per-tick results. Not found is an expected
// result in partial configurations.
func Get[T any](r *Runner) (*T, bool) {
	e, ok := r.byKind[Kind[T]()]
	if !ok {
		return nil, false
	}
	s, ok := any(e.sys).(*T)
	return s, ok
}
