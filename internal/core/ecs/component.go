package ecs

import (
	"errors"
	"fmt"
)

// ErrMissingComponent is returned by Store.Get when the entity does not hold
// a component of the store's kind. Callers that expect absence should use
// TryGet or Has instead.
var ErrMissingComponent = errors.New("ecs: missing component")

const absent = -1

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Probe is the type-erased view of a store used by the query helpers:
// membership tests plus access to the dense owner list.
type Probe interface {
	Removable
	Has(id EntityID) bool
	Len() int
	Entities() []EntityID
}

// Store is a generic sparse-set store for one component kind. A sparse array
// maps entity slot index to a position in the dense arrays; the dense arrays
// hold packed values and their owning entities. Insert appends, remove
// swap-removes, so every operation is O(1) and iteration is a linear scan of
// packed data. No reflect, no interface{} — pure generics.
type Store[T any] struct {
	sparse []int32
	dense  []T
	owners []EntityID
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		sparse: make([]int32, 0, 256),
		dense:  make([]T, 0, 256),
		owners: make([]EntityID, 0, 256),
	}
}

// pos returns the dense position for id, or absent. The owner check guards
// against a recycled slot: a stale handle and a live one share the same
// sparse index but differ in generation.
func (s *Store[T]) pos(id EntityID) int32 {
	idx := id.Index()
	if int(idx) >= len(s.sparse) {
		return absent
	}
	p := s.sparse[idx]
	if p == absent || s.owners[p] != id {
		return absent
	}
	return p
}

// Set inserts or overwrites the component for an entity. A write through a
// stale handle is dropped: destroy cascades clear the sparse slot before
// recycling, so an owner mismatch can only mean the caller's generation is
// dead and the slot now belongs to someone else.
func (s *Store[T]) Set(id EntityID, v T) {
	idx := id.Index()
	for int(idx) >= len(s.sparse) {
		s.sparse = append(s.sparse, absent)
	}
	if p := s.sparse[idx]; p != absent {
		if s.owners[p] != id {
			return
		}
		s.dense[p] = v
		return
	}
	s.dense = append(s.dense, v)
	s.owners = append(s.owners, id)
	s.sparse[idx] = int32(len(s.dense) - 1)
}

// Get returns a mutable reference to the entity's component, or
// ErrMissingComponent. The pointer is valid only until the next Set/Remove
// on this store, since swap-remove relocates dense entries.
func (s *Store[T]) Get(id EntityID) (*T, error) {
	p := s.pos(id)
	if p == absent {
		var zero T
		return nil, fmt.Errorf("%w: %T for entity %d/%d", ErrMissingComponent, zero, id.Index(), id.Generation())
	}
	return &s.dense[p], nil
}

// TryGet is the non-failing variant of Get for optional-read call sites.
func (s *Store[T]) TryGet(id EntityID) (*T, bool) {
	p := s.pos(id)
	if p == absent {
		return nil, false
	}
	return &s.dense[p], true
}

func (s *Store[T]) Has(id EntityID) bool {
	return s.pos(id) != absent
}

// Remove deletes the entity's component by swap-remove: the last dense entry
// moves into the vacated position and its sparse pointer is updated. No-op
// if absent.
func (s *Store[T]) Remove(id EntityID) {
	p := s.pos(id)
	if p == absent {
		return
	}
	last := int32(len(s.dense) - 1)
	if p != last {
		s.dense[p] = s.dense[last]
		s.owners[p] = s.owners[last]
		s.sparse[s.owners[p].Index()] = p
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[id.Index()] = absent
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Entities exposes the dense owner list directly. Order is insertion/swap
// order and is not stable across Set/Remove.
func (s *Store[T]) Entities() []EntityID {
	return s.owners
}

// Each calls fn for every packed component. fn must not Set or Remove on
// this store while iterating.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.dense {
		fn(s.owners[i], &s.dense[i])
	}
}
