// Package registry holds the authoritative id → object store, the
// catalog event dispatch, collision detection and connection-graph
// analysis. It optionally consults a spatial index to prune collision
// candidates; keeping that index consistent with the store is the
// owning facade's responsibility.
package registry

import (
	"sort"

	"github.com/vchernov/physcat/internal/model"
	"github.com/vchernov/physcat/internal/spatial"
)

// Registry is the single source of truth for catalog objects.
//
// Not internally synchronized: callers serialize access.
type Registry struct {
	objects  map[string]*model.PhysicalObject
	handlers map[EventType][]Handler

	// Optional acceleration for CheckCollisions. The index only
	// prunes candidate pairs; it never decides a collision.
	index *spatial.Index
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		objects:  make(map[string]*model.PhysicalObject),
		handlers: make(map[EventType][]Handler),
	}
}

// AttachIndex makes the registry consult a spatial index when pruning
// collision candidates. The owner must keep the index in sync with
// the store; a stale index silently drops collision pairs.
func (r *Registry) AttachIndex(ix *spatial.Index) {
	r.index = ix
}

// Register inserts the object into the store and fires ObjectCreated
// to all registered handlers, synchronously, before returning. The
// object stays registered even when a handler fails; the returned
// error reports the handler failure to the caller.
//
// Duplicate ids are not guarded here — the facade validates them
// before a silent overwrite can strand a spatial bucket entry.
func (r *Registry) Register(obj *model.PhysicalObject) error {
	r.objects[obj.ID()] = obj
	return r.dispatch(ObjectCreated, obj)
}

// Get returns the object for id, with an explicit found indicator so
// "no object" is never mistaken for "object with no attributes".
func (r *Registry) Get(id string) (*model.PhysicalObject, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Contains reports whether an object with the given id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.objects[id]
	return ok
}

// Remove deletes the object from the store and fires ObjectRemoved.
// Returns the removed object, or (nil, nil) if the id was absent.
func (r *Registry) Remove(id string) (*model.PhysicalObject, error) {
	obj, ok := r.objects[id]
	if !ok {
		return nil, nil
	}
	delete(r.objects, id)
	return obj, r.dispatch(ObjectRemoved, obj)
}

// NotifyMoved fires ObjectMoved for an object whose location the
// facade just updated.
func (r *Registry) NotifyMoved(obj *model.PhysicalObject) error {
	return r.dispatch(ObjectMoved, obj)
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// ForEach iterates over all registered objects in unspecified order.
// If fn returns false, iteration stops early.
func (r *Registry) ForEach(fn func(*model.PhysicalObject) bool) {
	for _, obj := range r.objects {
		if !fn(obj) {
			return
		}
	}
}

// Objects returns a snapshot of all registered objects, sorted by id.
func (r *Registry) Objects() []*model.PhysicalObject {
	objs := make([]*model.PhysicalObject, 0, len(r.objects))
	for _, obj := range r.objects {
		objs = append(objs, obj)
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].ID() < objs[j].ID() })
	return objs
}
