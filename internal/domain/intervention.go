package domain

import (
	"fmt"
	"math"
	"strings"
)

// InterventionType names a cooling measure with a fixed effect profile.
type InterventionType string

const (
	InterventionTrees InterventionType = "trees"
	InterventionRoofs InterventionType = "roofs"
	InterventionGreen InterventionType = "green"
	InterventionWater InterventionType = "water"
	InterventionShade InterventionType = "shade"
)

// CoordMode says how an intervention's coordinates map onto the grid.
type CoordMode string

const (
	// CoordAbsolute treats coordinates as grid indices. It is the default.
	CoordAbsolute CoordMode = "absolute"

	// CoordPercent maps [0, 100] onto [0, extent-1] of the grid's own width
	// (x) or height (y).
	CoordPercent CoordMode = "percent"

	// CoordLegacy keeps the scaling rule of the first release: a value <= 100
	// with a fractional part is multiplied by len(grid)/100, any other value
	// is absolute.
	CoordLegacy CoordMode = "legacy"
)

// ParseCoordMode maps a request value onto a CoordMode. The empty string is
// absolute.
func ParseCoordMode(s string) (CoordMode, error) {
	switch CoordMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CoordAbsolute:
		return CoordAbsolute, nil
	case CoordPercent:
		return CoordPercent, nil
	case CoordLegacy:
		return CoordLegacy, nil
	default:
		return "", fmt.Errorf("unknown coordinate mode %q", s)
	}
}

// Intervention is a planned cooling measure placed on the grid.
type Intervention struct {
	Type   InterventionType `json:"type"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Coords CoordMode        `json:"coords,omitempty"`
}

// Applicable reports whether the intervention has a known type and finite
// coordinates. Inapplicable interventions are skipped by ApplyInterventions.
func (iv Intervention) Applicable(effects EffectTable) bool {
	_, ok := effects[iv.Type]
	return ok && isFinite(iv.X) && isFinite(iv.Y)
}

// EffectProfile holds the static parameters of an intervention type.
// Cooling is negative: degrees applied at the center.
type EffectProfile struct {
	Radius  float64 `json:"radius"`
	Cooling float64 `json:"cooling"`
	Cost    int     `json:"cost"`
}

// EffectTable maps intervention types to their effect profiles.
type EffectTable map[InterventionType]EffectProfile

// DefaultEffectTable returns the built-in intervention profiles.
func DefaultEffectTable() EffectTable {
	return EffectTable{
		InterventionTrees: {Radius: 15, Cooling: -0.5, Cost: 500},
		InterventionRoofs: {Radius: 10, Cooling: -0.3, Cost: 1200},
		InterventionGreen: {Radius: 20, Cooling: -0.7, Cost: 2000},
		InterventionWater: {Radius: 25, Cooling: -0.8, Cost: 5000},
		InterventionShade: {Radius: 12, Cooling: -0.4, Cost: 3000},
	}
}

// resolveCenter converts intervention coordinates to grid space.
func resolveCenter(iv Intervention, grid HeatGrid) (x, y float64) {
	switch iv.Coords {
	case CoordPercent:
		w, h := grid.Bounds()
		return percentToCoord(iv.X, w), percentToCoord(iv.Y, h)
	case CoordLegacy:
		n := float64(len(grid))
		return legacyCoord(iv.X, n), legacyCoord(iv.Y, n)
	default:
		return iv.X, iv.Y
	}
}

func percentToCoord(v float64, extent int) float64 {
	if extent <= 1 {
		return 0
	}
	return v / 100 * float64(extent-1)
}

// legacyCoord scales by the total point count, not the axis extent.
func legacyCoord(v, gridLen float64) float64 {
	if v <= 100 && v != math.Trunc(v) {
		return v * gridLen / 100
	}
	return v
}
