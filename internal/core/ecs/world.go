package ecs

import (
	"time"

	"github.com/gravemoor/sim/internal/core/system"
)

// World is the top-level simulation container. It owns the entity pool, the
// component registry, the tag index, the system runner, and a deferred
// destruction queue flushed by a cleanup system at tick end. Worlds are
// plain values with no process-wide state, so independent worlds can coexist
// in one process.
type World struct {
	pool         *EntityPool
	registry     *Registry
	tags         *TagIndex
	runner       *system.Runner
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		tags:         NewTagIndex(),
		runner:       system.NewRunner(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool      { return w.pool }
func (w *World) Registry() *Registry    { return w.registry }
func (w *World) Tags() *TagIndex        { return w.tags }
func (w *World) Runner() *system.Runner { return w.runner }

// RegisterStore creates a store for component kind T and hooks it into the
// destroy cascade.
func RegisterStore[T any](w *World) *Store[T] {
	s := NewStore[T]()
	w.registry.Register(s)
	return s
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Destroy invalidates the handle and strips the entity from every component
// store and the tag index before its slot becomes reusable. No-op for a
// stale handle.
func (w *World) Destroy(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	w.registry.RemoveAll(id)
	w.tags.RemoveEntity(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Systems use
// this instead of Destroy when other systems later in the same tick may
// still look at the entity.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities. Called by the cleanup
// system at the end of each tick.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// Tag/untag convenience wrappers over the index.

func (w *World) AddTag(id EntityID, tag string)    { w.tags.Add(id, tag) }
func (w *World) RemoveTag(id EntityID, tag string) { w.tags.Remove(id, tag) }
func (w *World) HasTag(id EntityID, tag string) bool {
	return w.tags.Has(id, tag)
}
func (w *World) EntitiesWithTag(tag string, fn func(EntityID)) {
	w.tags.EntitiesWith(tag, fn)
}

// RegisterSystem records a system and its "must run after" constraints with
// the runner. Configuration errors (duplicate kind, registration after the
// order is resolved) are returned immediately.
func (w *World) RegisterSystem(s system.System, after ...system.KindID) error {
	return w.runner.Register(s, after...)
}

// Finalize resolves the system execution order eagerly. Optional: the first
// Update/Draw resolves lazily, but resolving at startup surfaces ordering
// cycles before the frame loop begins.
func (w *World) Finalize() error {
	return w.runner.Resolve()
}

// Update runs every registered system's update hook once, in resolved
// order, passing the same delta for the whole tick.
func (w *World) Update(dt time.Duration) {
	w.runner.Tick(dt)
}

// Draw runs every registered system's draw hook (if it has one) once, in
// the same resolved order.
func (w *World) Draw(now time.Duration) {
	w.runner.Draw(now)
}
