package registry

import "sort"

// Collision is one unordered pair of distinct objects closer than the
// queried distance. AID < BID lexicographically.
type Collision struct {
	AID      string
	BID      string
	Distance float64
}

// CheckCollisions returns every pair of distinct objects whose
// Euclidean distance is strictly less than collisionDistance. With an
// attached spatial index, cell neighborhoods prune the candidate
// pairs; without one, every pair is compared. Both paths apply the
// same exact distance test, so their results are identical. Pairs are
// sorted by (AID, BID).
func (r *Registry) CheckCollisions(collisionDistance float64) []Collision {
	var collisions []Collision
	if r.index != nil {
		collisions = r.collideIndexed(collisionDistance)
	} else {
		collisions = r.collideNaive(collisionDistance)
	}
	sort.Slice(collisions, func(i, j int) bool {
		if collisions[i].AID != collisions[j].AID {
			return collisions[i].AID < collisions[j].AID
		}
		return collisions[i].BID < collisions[j].BID
	})
	return collisions
}

// collideNaive compares all n·(n−1)/2 pairs. Kept both as the
// fallback when no index is attached and as the oracle the indexed
// path is tested against.
func (r *Registry) collideNaive(collisionDistance float64) []Collision {
	objs := r.Objects()
	var collisions []Collision
	for i := range objs {
		for j := i + 1; j < len(objs); j++ {
			if d := objs[i].DistanceTo(objs[j]); d < collisionDistance {
				collisions = append(collisions, Collision{
					AID:      objs[i].ID(),
					BID:      objs[j].ID(),
					Distance: d,
				})
			}
		}
	}
	return collisions
}

// collideIndexed scans each object's cell neighborhood instead of the
// whole store. Any pair closer than collisionDistance differs by at
// most ceil(collisionDistance/gridSize) cells per axis, so the
// neighborhood scan cannot miss a qualifying pair. Each candidate is
// still confirmed with the exact distance test.
func (r *Registry) collideIndexed(collisionDistance float64) []Collision {
	var collisions []Collision
	for _, obj := range r.objects {
		loc := obj.Location()
		r.index.ForEachNearby(loc.X, loc.Y, loc.Z, collisionDistance, func(otherID string) bool {
			// Visit each unordered pair once.
			if otherID <= obj.ID() {
				return true
			}
			other, ok := r.objects[otherID]
			if !ok {
				return true // stale index entry
			}
			if d := obj.DistanceTo(other); d < collisionDistance {
				collisions = append(collisions, Collision{
					AID:      obj.ID(),
					BID:      otherID,
					Distance: d,
				})
			}
			return true
		})
	}
	return collisions
}

// Involves reports whether the collision references the given id.
func (c Collision) Involves(id string) bool {
	return c.AID == id || c.BID == id
}
