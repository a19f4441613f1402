package spatial

import "testing"

func TestCellFor(t *testing.T) {
	tests := []struct {
		name     string
		x, y, z  float64
		gridSize float64
		want     Cell
	}{
		{"origin", 0, 0, 0, 10, Cell{0, 0, 0}},
		{"inside first cell", 9.99, 5, 0.1, 10, Cell{0, 0, 0}},
		{"cell boundary belongs to next cell", 10, 10, 10, 10, Cell{1, 1, 1}},
		{"negative coordinates floor down", -0.1, -10, -10.5, 10, Cell{-1, -1, -2}},
		{"mixed axes", 25, -3, 101, 10, Cell{2, -1, 10}},
		{"fractional grid size", 1.5, 0, 0, 0.5, Cell{3, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CellFor(tt.x, tt.y, tt.z, tt.gridSize)
			if got != tt.want {
				t.Errorf("CellFor(%v, %v, %v, %v) = %+v, want %+v",
					tt.x, tt.y, tt.z, tt.gridSize, got, tt.want)
			}
		})
	}
}

func TestReach(t *testing.T) {
	tests := []struct {
		name     string
		radius   float64
		gridSize float64
		want     int32
	}{
		{"zero radius", 0, 10, 0},
		{"radius below one cell", 5, 10, 1},
		{"radius of exactly one cell", 10, 10, 1},
		{"radius just past one cell", 10.1, 10, 2},
		{"many cells", 95, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reach(tt.radius, tt.gridSize); got != tt.want {
				t.Errorf("Reach(%v, %v) = %d, want %d", tt.radius, tt.gridSize, got, tt.want)
			}
		})
	}
}
