package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrMalformedPoint is returned when a serialized sample point is not a
// [x, y, temperature] triple of finite numbers with integral coordinates.
var ErrMalformedPoint = errors.New("malformed heat map point")

// SamplePoint is a single temperature sample at an integer grid cell.
type SamplePoint struct {
	X           int
	Y           int
	Temperature float64
}

// MarshalJSON encodes the point as the [x, y, temperature] triple the
// frontend consumes.
func (p SamplePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{float64(p.X), float64(p.Y), p.Temperature})
}

// UnmarshalJSON decodes a [x, y, temperature] triple.
func (p *SamplePoint) UnmarshalJSON(data []byte) error {
	var triple []float64
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPoint, err)
	}
	point, err := PointFromTriple(triple)
	if err != nil {
		return err
	}
	*p = point
	return nil
}

// PointFromTriple validates a raw [x, y, temperature] slice.
func PointFromTriple(triple []float64) (SamplePoint, error) {
	if len(triple) != 3 {
		return SamplePoint{}, fmt.Errorf("%w: want 3 values, got %d", ErrMalformedPoint, len(triple))
	}
	for _, v := range triple {
		if !isFinite(v) {
			return SamplePoint{}, fmt.Errorf("%w: non-finite value", ErrMalformedPoint)
		}
	}
	x, y := triple[0], triple[1]
	if x != math.Trunc(x) || y != math.Trunc(y) {
		return SamplePoint{}, fmt.Errorf("%w: coordinates must be integers", ErrMalformedPoint)
	}
	return SamplePoint{X: int(x), Y: int(y), Temperature: triple[2]}, nil
}

// HeatGrid is the full sampled temperature field, one entry per (x, y) cell.
// Consumers must not depend on enumeration order beyond one entry per cell.
type HeatGrid []SamplePoint

// Clone returns an independent copy of the grid.
func (g HeatGrid) Clone() HeatGrid {
	if g == nil {
		return nil
	}
	out := make(HeatGrid, len(g))
	copy(out, g)
	return out
}

// Bounds returns the grid extent derived from the largest coordinates seen.
// An empty grid has zero extent.
func (g HeatGrid) Bounds() (width, height int) {
	if len(g) == 0 {
		return 0, 0
	}
	for _, p := range g {
		if p.X+1 > width {
			width = p.X + 1
		}
		if p.Y+1 > height {
			height = p.Y + 1
		}
	}
	return width, height
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
