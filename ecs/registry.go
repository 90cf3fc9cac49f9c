package ecs

import "github.com/milk9111/asteroidminer/physics"

type slot[T any] struct {
	entity Entity
	body   physics.BodyID
	value  T
}

// Registry owns the live objects of a world and indexes them by the physics
// body they own, so contact callbacks can resolve a body back to its object.
type Registry[T any] struct {
	entities entityStore
	slots    SparseSet[slot[T]]
	bodies   map[physics.BodyID]Entity
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{bodies: make(map[physics.BodyID]Entity)}
}

// Create allocates an entity for v. A zero body id means the object owns no body.
func (r *Registry[T]) Create(v T, body physics.BodyID) Entity {
	e := r.entities.create()
	r.slots.Set(e.id(), slot[T]{entity: e, body: body, value: v})
	if body != 0 {
		r.bodies[body] = e
	}
	return e
}

// Destroy forgets e. It returns false for stale or unknown handles.
func (r *Registry[T]) Destroy(e Entity) bool {
	s, ok := r.slot(e)
	if !ok {
		return false
	}
	if s.body != 0 && r.bodies[s.body] == e {
		delete(r.bodies, s.body)
	}
	r.slots.Remove(e.id())
	return r.entities.destroy(e)
}

func (r *Registry[T]) IsAlive(e Entity) bool {
	return r.entities.isAlive(e)
}

func (r *Registry[T]) Get(e Entity) (T, bool) {
	s, ok := r.slot(e)
	return s.value, ok
}

// Lookup resolves a physics body to its owning entity.
func (r *Registry[T]) Lookup(body physics.BodyID) (Entity, T, bool) {
	e, ok := r.bodies[body]
	if !ok {
		var zero T
		return 0, zero, false
	}
	v, ok := r.Get(e)
	return e, v, ok
}

// Entities returns a snapshot of live handles; callers may create or destroy
// while walking it.
func (r *Registry[T]) Entities() []Entity {
	out := make([]Entity, 0, len(r.slots.denseValues))
	for _, s := range r.slots.denseValues {
		out = append(out, s.entity)
	}
	return out
}

// Each calls fn for every entity alive when Each was called and still alive
// when its turn comes.
func (r *Registry[T]) Each(fn func(e Entity, v T)) {
	for _, e := range r.Entities() {
		if v, ok := r.Get(e); ok {
			fn(e, v)
		}
	}
}

func (r *Registry[T]) Len() int {
	return r.slots.Len()
}

func (r *Registry[T]) slot(e Entity) (slot[T], bool) {
	if !r.entities.isAlive(e) {
		return slot[T]{}, false
	}
	s, ok := r.slots.Get(e.id())
	if !ok || s.entity != e {
		return slot[T]{}, false
	}
	return s, true
}
