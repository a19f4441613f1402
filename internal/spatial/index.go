// Package spatial implements a uniform-grid spatial hash over 3D
// space. Cells are cubes of a fixed side length; each occupied cell
// holds the set of object ids currently located inside it. The index
// stores ids only — it knows nothing about object content, and exact
// distance filtering is the caller's job.
package spatial

// Index is the spatial hash. Insert and removal are O(1); a nearby
// query touches only the cells overlapping the query cube.
//
// Not internally synchronized: callers serialize access.
type Index struct {
	gridSize float64
	cells    map[Cell]map[string]struct{}
}

// NewIndex creates an index with the given cell side length.
// gridSize must be positive.
func NewIndex(gridSize float64) *Index {
	if gridSize <= 0 {
		panic("spatial: grid size must be positive")
	}
	return &Index{
		gridSize: gridSize,
		cells:    make(map[Cell]map[string]struct{}),
	}
}

// GridSize returns the configured cell side length.
func (ix *Index) GridSize() float64 {
	return ix.gridSize
}

// Add inserts id into the bucket for (x, y, z). Duplicate inserts are
// not guarded: re-inserting with different coordinates leaves the id
// in two cells, which is a caller bug.
func (ix *Index) Add(id string, x, y, z float64) {
	cell := CellFor(x, y, z, ix.gridSize)
	bucket, ok := ix.cells[cell]
	if !ok {
		bucket = make(map[string]struct{})
		ix.cells[cell] = bucket
	}
	bucket[id] = struct{}{}
}

// Remove deletes id from the bucket for (x, y, z). The caller must
// supply the coordinates the id was inserted with; removal by id
// alone is not supported. Removing an absent id is a no-op.
func (ix *Index) Remove(id string, x, y, z float64) {
	cell := CellFor(x, y, z, ix.gridSize)
	bucket, ok := ix.cells[cell]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(ix.cells, cell)
	}
}

// Contains reports whether id is present in the bucket for (x, y, z).
func (ix *Index) Contains(id string, x, y, z float64) bool {
	bucket, ok := ix.cells[CellFor(x, y, z, ix.gridSize)]
	if !ok {
		return false
	}
	_, ok = bucket[id]
	return ok
}

// ForEachNearby iterates over every id bucketed within
// ceil(radius/gridSize) cells of the query point's cell along each
// axis. Candidates may lie outside the true query sphere.
// If fn returns false, iteration stops early.
func (ix *Index) ForEachNearby(x, y, z, radius float64, fn func(id string) bool) {
	center := CellFor(x, y, z, ix.gridSize)
	reach := Reach(radius, ix.gridSize)

	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for dz := -reach; dz <= reach; dz++ {
				cell := Cell{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				bucket, ok := ix.cells[cell]
				if !ok {
					continue
				}
				for id := range bucket {
					if !fn(id) {
						return
					}
				}
			}
		}
	}
}

// NearbyIDs returns the union of bucket contents for all cells within
// reach of the query point. Broad phase only: a conservative
// over-approximation of the ids within radius.
func (ix *Index) NearbyIDs(x, y, z, radius float64) []string {
	ids := make([]string, 0, 16)
	ix.ForEachNearby(x, y, z, radius, func(id string) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// CellCount returns the number of occupied cells.
func (ix *Index) CellCount() int {
	return len(ix.cells)
}
