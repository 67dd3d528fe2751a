package domain

import (
	"time"

	"github.com/google/uuid"
)

// SimulationRecord is the published summary of one simulation run. It omits
// the grids themselves, which are large and reproducible from the inputs.
type SimulationRecord struct {
	ID            string          `json:"id"`
	Location      string          `json:"location"`
	Interventions []Intervention  `json:"interventions"`
	Stats         SimulationStats `json:"statistics"`
	Skipped       int             `json:"skipped_interventions"`
	PointCount    int             `json:"point_count"`
	SimulatedAt   time.Time       `json:"simulated_at"`
}

// NewSimulationRecord stamps a run with a fresh ID and the current time.
// Interventions with non-finite coordinates are left out of the record.
func NewSimulationRecord(location string, interventions []Intervention, grid HeatGrid, stats SimulationStats) SimulationRecord {
	kept := make([]Intervention, 0, len(interventions))
	for _, iv := range interventions {
		if isFinite(iv.X) && isFinite(iv.Y) {
			kept = append(kept, iv)
		}
	}
	return SimulationRecord{
		ID:            uuid.NewString(),
		Location:      NormalizeLocation(location),
		Interventions: kept,
		Stats:         stats,
		Skipped:       stats.Skipped,
		PointCount:    len(grid),
		SimulatedAt:   clock.Now().UTC(),
	}
}
