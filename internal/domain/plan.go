package domain

import (
	"errors"
	"fmt"
	"math"
)

// MaxInterventions bounds the size of a single plan.
const MaxInterventions = 1000

// ErrTooManyInterventions is returned when a plan exceeds MaxInterventions.
var ErrTooManyInterventions = errors.New("too many interventions")

// InterventionSpec is the wire form of an Intervention. Coordinates are
// pointers so a missing value is distinguishable from zero.
type InterventionSpec struct {
	Type   InterventionType `json:"type"`
	X      *float64         `json:"x"`
	Y      *float64         `json:"y"`
	Coords string           `json:"coords,omitempty"`
}

// ParsePlan maps wire interventions onto the domain. Missing coordinates
// become NaN so ApplyInterventions skips them. An unknown coordinate mode
// rejects the whole plan.
func ParsePlan(specs []InterventionSpec) ([]Intervention, error) {
	if len(specs) > MaxInterventions {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrTooManyInterventions, len(specs), MaxInterventions)
	}
	out := make([]Intervention, len(specs))
	for i, s := range specs {
		mode, err := ParseCoordMode(s.Coords)
		if err != nil {
			return nil, fmt.Errorf("intervention %d: %w", i, err)
		}
		out[i] = Intervention{
			Type:   s.Type,
			X:      valueOrNaN(s.X),
			Y:      valueOrNaN(s.Y),
			Coords: mode,
		}
	}
	return out, nil
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
