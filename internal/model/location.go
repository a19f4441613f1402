package model

import "github.com/go-gl/mathgl/mgl64"

// Location is a point in catalog space.
// Value type, passed by value (immutable).
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation creates a Location with the given coordinates.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// Vec3 returns the location as an mgl64 vector.
func (l Location) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{l.X, l.Y, l.Z}
}

// WithCoordinates returns a new Location with updated coordinates (immutable pattern).
func (l Location) WithCoordinates(x, y, z float64) Location {
	l.X = x
	l.Y = y
	l.Z = z
	return l
}

// DistanceTo returns the Euclidean distance to another point.
func (l Location) DistanceTo(other Location) float64 {
	return l.Vec3().Sub(other.Vec3()).Len()
}

// DistanceSquared returns the squared distance to another point (no sqrt for hot paths).
func (l Location) DistanceSquared(other Location) float64 {
	d := l.Vec3().Sub(other.Vec3())
	return d.Dot(d)
}
