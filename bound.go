package lattice

import "math"

// Bound limits the valid coordinates along one grid axis.
// The zero value is unbounded.
type Bound struct {
	limit   uint32
	bounded bool
}

// Dimensions holds the per-axis bounds of a grid
type Dimensions struct {
	X, Y Bound
}

func Unbounded() Bound {
	return Bound{}
}

// BoundedTo limits an axis to coordinates in [0, n)
func BoundedTo(n uint32) Bound {
	return Bound{limit: n, bounded: true}
}

// Limit reports the axis size and whether the axis is bounded at all
func (b Bound) Limit() (uint32, bool) {
	return b.limit, b.bounded
}

// clamp saturates a rounded axis value into [0, limit] (or [0, MaxUint32] when
// unbounded). The upper end is inclusive.
func (b Bound) clamp(raw float64) uint32 {
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	upper := float64(math.MaxUint32)
	if b.bounded {
		upper = float64(b.limit)
	}
	if raw >= upper {
		return uint32(upper)
	}
	return uint32(raw)
}

// admit returns raw as a coordinate if it lies in [0, limit).
func (b Bound) admit(raw float64) (uint32, bool) {
	if math.IsNaN(raw) || raw < 0 || raw > math.MaxUint32 {
		return 0, false
	}
	v := uint32(raw)
	if !b.contains(v) {
		return 0, false
	}
	return v, true
}

func (b Bound) contains(v uint32) bool {
	return !b.bounded || v < b.limit
}
