package model

import "math"

// City is an immutable point with identity. Cities are plain values and may
// be copied freely into any number of tours.
type City struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Dist returns the Euclidean distance to other. Coincident cities yield 0.
func (c City) Dist(other City) float64 {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Equal reports whether two cities are interchangeable: label and both
// coordinates must all match.
func (c City) Equal(other City) bool {
	return c.Label == other.Label && c.X == other.X && c.Y == other.Y
}

func (c City) String() string {
	return c.Label
}
