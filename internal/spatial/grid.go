package spatial

import "math"

// Cell identifies one cubic grid cell by its integer coordinates.
type Cell struct {
	X int32
	Y int32
	Z int32
}

// CellFor converts world coordinates to the containing cell.
// Formula: floor(coordinate / gridSize) on each axis.
func CellFor(x, y, z, gridSize float64) Cell {
	return Cell{
		X: int32(math.Floor(x / gridSize)),
		Y: int32(math.Floor(y / gridSize)),
		Z: int32(math.Floor(z / gridSize)),
	}
}

// Reach converts a query radius to the number of cells to scan out
// from the center cell on each axis: ceil(radius / gridSize).
// The resulting (2*reach+1)^3 cube is a conservative superset of the
// query sphere; the caller applies the exact distance filter.
func Reach(radius, gridSize float64) int32 {
	return int32(math.Ceil(radius / gridSize))
}
