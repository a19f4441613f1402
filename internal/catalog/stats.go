package catalog

import "github.com/vchernov/physcat/internal/model"

// Stats is a point-in-time snapshot of catalog aggregates, computed
// from the current registry state on every call rather than kept as
// running counters — it can never drift from the store.
type Stats struct {
	TotalObjects  int
	ByType        map[model.ObjectType]int
	OccupiedCells int
}

// Statistics computes the snapshot. O(n) in object count.
func (m *Manager) Statistics() Stats {
	stats := Stats{
		TotalObjects:  m.registry.Len(),
		ByType:        make(map[model.ObjectType]int),
		OccupiedCells: m.index.CellCount(),
	}
	m.registry.ForEach(func(obj *model.PhysicalObject) bool {
		stats.ByType[obj.Type]++
		return true
	})
	return stats
}

// Objects returns a snapshot of all catalog objects, sorted by id.
// Used by export collaborators that walk the whole catalog.
func (m *Manager) Objects() []*model.PhysicalObject {
	return m.registry.Objects()
}
