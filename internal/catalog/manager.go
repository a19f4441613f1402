// Package catalog exposes the public facade over one object registry
// and one spatial index. Every mutating call updates both structures
// before returning, always registry first and index second, so that
// event handlers observe a fully registered object and the index is
// never consulted for an object the registry does not know.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vchernov/physcat/internal/model"
	"github.com/vchernov/physcat/internal/registry"
	"github.com/vchernov/physcat/internal/spatial"
)

var (
	// ErrDuplicateID is returned when creating an object whose id is
	// already registered.
	ErrDuplicateID = errors.New("duplicate object id")

	// ErrNotFound is returned when an operation references an id with
	// no registered object.
	ErrNotFound = errors.New("object not found")
)

// Manager owns the registry and the spatial index and keeps them
// consistent across every public mutating call.
//
// Not internally synchronized: a caller mixing goroutines must
// serialize access, e.g. with a single writer lock around the Manager.
type Manager struct {
	registry *registry.Registry
	index    *spatial.Index
}

// New creates an empty catalog with the given spatial grid cell size.
func New(gridSize float64) *Manager {
	ix := spatial.NewIndex(gridSize)
	reg := registry.New()
	reg.AttachIndex(ix)
	return &Manager{registry: reg, index: ix}
}

// Registry exposes the underlying registry for registry-wide queries
// (collisions, network analysis) and event handler registration.
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// Index exposes the underlying spatial index.
func (m *Manager) Index() *spatial.Index {
	return m.index
}

// CreateObject constructs a PhysicalObject, registers it (firing
// ObjectCreated synchronously) and then inserts it into the spatial
// index. A duplicate id fails with ErrDuplicateID before anything is
// written. A handler error propagates, but the object stays
// registered and indexed — handler effects are never rolled back.
func (m *Manager) CreateObject(id, name string, typ model.ObjectType, x, y, z float64, opts ...model.Option) (*model.PhysicalObject, error) {
	if m.registry.Contains(id) {
		return nil, fmt.Errorf("creating object %q: %w", id, ErrDuplicateID)
	}

	obj := model.NewPhysicalObject(id, name, typ, model.NewLocation(x, y, z), opts...)

	// Registry first: created-event observers must see the object
	// before it becomes spatially queryable. The index add cannot
	// fail, so the dual write completes even when a handler errors.
	err := m.registry.Register(obj)
	m.index.Add(id, x, y, z)
	if err != nil {
		return obj, fmt.Errorf("creating object %q: %w", id, err)
	}
	return obj, nil
}

// RemoveObject deletes the object from the registry (firing
// ObjectRemoved) and from its spatial bucket.
func (m *Manager) RemoveObject(id string) error {
	obj, ok := m.registry.Get(id)
	if !ok {
		return fmt.Errorf("removing object %q: %w", id, ErrNotFound)
	}
	loc := obj.Location()
	_, err := m.registry.Remove(id)
	m.index.Remove(id, loc.X, loc.Y, loc.Z)
	if err != nil {
		return fmt.Errorf("removing object %q: %w", id, err)
	}
	return nil
}

// MoveObject relocates the object, updating its spatial bucket in
// lock-step with the stored location, then fires ObjectMoved.
func (m *Manager) MoveObject(id string, x, y, z float64) error {
	obj, ok := m.registry.Get(id)
	if !ok {
		return fmt.Errorf("moving object %q: %w", id, ErrNotFound)
	}

	old := obj.Location()
	m.index.Remove(id, old.X, old.Y, old.Z)
	obj.SetLocation(old.WithCoordinates(x, y, z))
	m.index.Add(id, x, y, z)

	if err := m.registry.NotifyMoved(obj); err != nil {
		return fmt.Errorf("moving object %q: %w", id, err)
	}
	return nil
}

// GetObject returns the object for id, failing loudly with
// ErrNotFound for an unknown id.
func (m *Manager) GetObject(id string) (*model.PhysicalObject, error) {
	obj, ok := m.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("getting object %q: %w", id, ErrNotFound)
	}
	return obj, nil
}

// Connect adds a directed connection from one object to a target id.
// The source must exist; the target is deliberately not validated, so
// edges may dangle until the target is created (or forever).
func (m *Manager) Connect(fromID, toID string) error {
	obj, ok := m.registry.Get(fromID)
	if !ok {
		return fmt.Errorf("connecting %q to %q: %w", fromID, toID, ErrNotFound)
	}
	obj.Connect(toID)
	return nil
}

// Disconnect removes the directed connection, if present.
func (m *Manager) Disconnect(fromID, toID string) error {
	obj, ok := m.registry.Get(fromID)
	if !ok {
		return fmt.Errorf("disconnecting %q from %q: %w", fromID, toID, ErrNotFound)
	}
	obj.Disconnect(toID)
	return nil
}

// NearbyObjects returns every registered object within radius of the
// query point: broad-phase candidate cells from the index, then an
// exact Euclidean filter (distance ≤ radius). Results are sorted by
// distance, ties by id.
func (m *Manager) NearbyObjects(x, y, z, radius float64) []*model.PhysicalObject {
	query := model.NewLocation(x, y, z)
	radiusSq := radius * radius

	type hit struct {
		obj    *model.PhysicalObject
		distSq float64
	}
	hits := make([]hit, 0, 16)

	m.index.ForEachNearby(x, y, z, radius, func(id string) bool {
		obj, ok := m.registry.Get(id)
		if !ok {
			return true // stale index entry
		}
		if distSq := query.DistanceSquared(obj.Location()); distSq <= radiusSq {
			hits = append(hits, hit{obj: obj, distSq: distSq})
		}
		return true
	})

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].distSq != hits[j].distSq {
			return hits[i].distSq < hits[j].distSq
		}
		return hits[i].obj.ID() < hits[j].obj.ID()
	})

	objs := make([]*model.PhysicalObject, len(hits))
	for i, h := range hits {
		objs[i] = h.obj
	}
	return objs
}

// CheckCollisions returns every pair of objects strictly closer than
// collisionDistance. The registry uses the manager's index to prune
// candidate pairs.
func (m *Manager) CheckCollisions(collisionDistance float64) []registry.Collision {
	return m.registry.CheckCollisions(collisionDistance)
}

// NetworkMetrics computes connection-graph metrics over the whole
// registry.
func (m *Manager) NetworkMetrics() registry.NetworkMetrics {
	return m.registry.AnalyzeNetwork()
}

// Topology materializes the current connection graph.
func (m *Manager) Topology() map[string][]string {
	return m.registry.Topology()
}

// OnEvent registers a handler for the event type. Handlers run
// synchronously, in registration order, on the mutating caller's
// stack.
func (m *Manager) OnEvent(t registry.EventType, h registry.Handler) {
	m.registry.AddHandler(t, h)
}
