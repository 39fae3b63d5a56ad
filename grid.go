package lattice

import "math"

// Grid describes a rectangular lattice of cells anchored at the grid entity's translation.
//
// Cell (0,0) sits at Offset from the grid's translation; each further cell along an axis
// is one Pitch (CellSize + CellGap) away. Dimensions optionally bound each axis.
type Grid struct {
	CellSize   Vec2
	CellGap    Vec2
	Offset     Vec2
	Dimensions Dimensions
}

// SnapPolicy selects how a world position that misses the grid is turned into a coordinate
type SnapPolicy int

const (
	// Clamp always produces a coordinate, saturating each axis into range
	Clamp SnapPolicy = iota
	// Reject produces no coordinate when the position falls outside the grid
	Reject
)

func (p SnapPolicy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// Pitch is the distance between the origins of adjacent cells
func (g Grid) Pitch() Vec2 {
	return g.CellSize.Add(g.CellGap)
}

// Validate checks that the pitch on both axes is finite and positive.
func (g Grid) Validate() error {
	pitch := g.Pitch()
	if !validPitch(pitch.X) {
		return InvalidGridError{Axis: "x", Pitch: pitch.X}
	}
	if !validPitch(pitch.Y) {
		return InvalidGridError{Axis: "y", Pitch: pitch.Y}
	}
	return nil
}

func validPitch(p float64) bool {
	return p > 0 && !math.IsInf(p, 1)
}

// CellOffset returns the position of the cell at c relative to the grid's translation.
// It does not check c against the grid's dimensions.
func (g Grid) CellOffset(c Coordinate) Vec3 {
	pitch := g.Pitch()
	return Vec2{
		X: float64(c.X)*pitch.X + g.Offset.X,
		Y: float64(c.Y)*pitch.Y + g.Offset.Y,
	}.Extend(0)
}

// DeriveCoordinate maps a cell's world translation back onto the grid.
//
// The position relative to cell (0,0) is divided by the pitch and rounded half away from
// zero. Under Clamp each axis is then saturated into [0, n] (n being the axis bound, the
// upper end inclusive) or floored at 0 when unbounded, and the call always succeeds. Under
// Reject the rounded coordinate is returned unchanged if it is non-negative and inside
// the bounds, otherwise ok is false.
func (g Grid) DeriveCoordinate(gridTranslation, cellTranslation Vec3, policy SnapPolicy) (c Coordinate, ok bool) {
	local := cellTranslation.Sub(gridTranslation).XY().Sub(g.Offset)
	pitch := g.Pitch()
	rawX := math.Round(local.X / pitch.X)
	rawY := math.Round(local.Y / pitch.Y)

	if policy == Clamp {
		return Coordinate{
			X: g.Dimensions.X.clamp(rawX),
			Y: g.Dimensions.Y.clamp(rawY),
		}, true
	}

	x, okX := g.Dimensions.X.admit(rawX)
	y, okY := g.Dimensions.Y.admit(rawY)
	if !okX || !okY {
		return Coordinate{}, false
	}
	return Coordinate{X: x, Y: y}, true
}

// IsCoordinateValid reports whether c lies inside the grid's bounded axes
func (g Grid) IsCoordinateValid(c Coordinate) bool {
	return g.Dimensions.X.contains(c.X) && g.Dimensions.Y.contains(c.Y)
}
