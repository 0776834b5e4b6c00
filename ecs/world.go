package ecs

import (
	"slices"

	"go.uber.org/zap"
)

// World owns every entity and answers component-type queries through a
// signature-keyed cache.
//
// The map and the cache are not locked as a whole: a World is driven by a
// single goroutine (the scheduler). Individual entities are locked through
// their EntityRef.
type World struct {
	entities map[EntityID]*EntityRef
	order    []EntityID
	cache    *signatureCache
	logger   *zap.Logger
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithWorldLogger sets the logger used for cache diagnostics.
func WithWorldLogger(logger *zap.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities: make(map[EntityID]*EntityRef),
		cache:    newSignatureCache(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateEntity builds an entity from the given components and stores it.
// If the generated id is already taken the call is a no-op.
func (w *World) CreateEntity(components ...Component) EntityID {
	return w.insert(NewEntity(components...))
}

func (w *World) insert(e *Entity) EntityID {
	if _, exists := w.entities[e.id]; exists {
		return e.id
	}
	w.entities[e.id] = newEntityRef(e)
	w.order = append(w.order, e.id)
	return e.id
}

// Delete removes an entity from the live map. Cached signatures keep the id;
// Resolve skips it from then on.
func (w *World) Delete(id EntityID) {
	if _, exists := w.entities[id]; !exists {
		return
	}
	delete(w.entities, id)
	if i := slices.Index(w.order, id); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
}

// Entity returns the live ref for id.
func (w *World) Entity(id EntityID) (*EntityRef, bool) {
	ref, ok := w.entities[id]
	return ref, ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Entities returns every live entity in creation order.
func (w *World) Entities() []*EntityRef {
	out := make([]*EntityRef, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

// Resolve returns the entities that own any of the given component types.
//
// The first call for a signature scans the world and caches the matching ids.
// Later calls with the same signature, in any order of types, reuse that list:
// entities created afterwards are not added until ClearCache is called. An
// entity owning several of the requested types is listed once per matching
// component.
func (w *World) Resolve(types []ComponentType) []*EntityRef {
	signature := Signature(types)

	ids, ok := w.cache.get(signature)
	if !ok {
		ids = w.scan(types)
		w.cache.putIfAbsent(signature, ids)
		w.logger.Debug("signature cached",
			zap.String("signature", signature),
			zap.Int("matches", len(ids)),
		)
	}

	refs := make([]*EntityRef, 0, len(ids))
	for _, id := range ids {
		if ref, exists := w.entities[id]; exists {
			refs = append(refs, ref)
		}
	}
	return refs
}

// Match scans the world without consulting or populating the cache.
func (w *World) Match(types []ComponentType) []EntityID {
	return w.scan(types)
}

func (w *World) scan(types []ComponentType) []EntityID {
	ids := make([]EntityID, 0)
	for _, id := range w.order {
		ref := w.entities[id]
		entity := ref.Lock()
		for _, t := range entity.order {
			if slices.Contains(types, t) {
				ids = append(ids, entity.id)
			}
		}
		ref.Unlock()
	}
	return ids
}

// ClearCache drops every cached signature.
func (w *World) ClearCache() {
	w.cache.clear()
}

// CachedSignatures returns a snapshot of the cache in population order.
func (w *World) CachedSignatures() []CacheEntry {
	return w.cache.entries()
}
