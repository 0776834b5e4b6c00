package ecs

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// EntityID uniquely identifies an entity. IDs are random (v4) UUIDs generated
// at creation time.
type EntityID = uuid.UUID

// Entity is an id plus at most one component per ComponentType.
type Entity struct {
	id         EntityID
	components map[ComponentType]Component
	order      []ComponentType
}

// NewEntity creates an entity with a fresh id. Components are inserted in
// argument order; a component whose type is already present is dropped.
func NewEntity(components ...Component) *Entity {
	e := &Entity{
		id:         uuid.New(),
		components: make(map[ComponentType]Component, len(components)),
		order:      make([]ComponentType, 0, len(components)),
	}
	for _, c := range components {
		e.AddComponent(c)
	}
	return e
}

// ID returns the entity id.
func (e *Entity) ID() EntityID {
	return e.id
}

// AddComponent inserts c unless a component of the same type is present.
// It reports whether c was inserted. Nil components, including typed nil
// pointers, are never inserted.
func (e *Entity) AddComponent(c Component) bool {
	if isNilComponent(c) {
		return false
	}
	t := c.Type()
	if _, exists := e.components[t]; exists {
		return false
	}
	e.components[t] = c
	e.order = append(e.order, t)
	return true
}

func isNilComponent(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Component returns the component of type t. Mutating the returned
// component mutates the entity.
func (e *Entity) Component(t ComponentType) (Component, bool) {
	c, ok := e.components[t]
	return c, ok
}

// Has reports whether the entity owns a component of type t.
func (e *Entity) Has(t ComponentType) bool {
	_, ok := e.components[t]
	return ok
}

// Types returns the entity's component types in insertion order.
func (e *Entity) Types() []ComponentType {
	out := make([]ComponentType, len(e.order))
	copy(out, e.order)
	return out
}

// Components returns the entity's components in insertion order.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.order))
	for _, t := range e.order {
		out = append(out, e.components[t])
	}
	return out
}

// Clone deep-copies the entity, keeping its id.
func (e *Entity) Clone() *Entity {
	c := &Entity{
		id:         e.id,
		components: make(map[ComponentType]Component, len(e.components)),
		order:      make([]ComponentType, len(e.order)),
	}
	copy(c.order, e.order)
	for t, comp := range e.components {
		c.components[t] = comp.Clone()
	}
	return c
}

// Get returns the component of type t downcast to *T.
func Get[T any](e *Entity, t ComponentType) (*T, bool) {
	c, ok := e.Component(t)
	if !ok {
		return nil, false
	}
	return As[T](c)
}

// EntityRef is a shared handle to an entity stored in a World. Access to the
// entity is exclusive: callers lock the ref for every read or mutation.
type EntityRef struct {
	mu     sync.Mutex
	id     EntityID
	entity *Entity
}

func newEntityRef(e *Entity) *EntityRef {
	return &EntityRef{id: e.id, entity: e}
}

// ID returns the id of the referenced entity without locking it.
func (r *EntityRef) ID() EntityID {
	return r.id
}

// Lock acquires exclusive access and returns the entity. Callers must Unlock.
func (r *EntityRef) Lock() *Entity {
	r.mu.Lock()
	return r.entity
}

// Unlock releases the access acquired by Lock.
func (r *EntityRef) Unlock() {
	r.mu.Unlock()
}

// With runs fn while holding the entity lock.
func (r *EntityRef) With(fn func(e *Entity)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.entity)
}

// Snapshot returns a deep copy of the entity taken under its lock.
func (r *EntityRef) Snapshot() *Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entity.Clone()
}
