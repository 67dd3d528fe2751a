package domain

import "math"

// Benefit estimates are fixed fractions of total cost.
const (
	energySavingsRate  = 0.15
	healthBenefitsRate = 0.25
)

// SimulationStats summarizes the effect of an intervention plan.
type SimulationStats struct {
	TotalCost            int     `json:"totalCost"`
	MaxTempReduction     float64 `json:"maxTempReduction"`
	AverageTempReduction float64 `json:"averageTempReduction"`
	EnergySavings        int     `json:"energySavings"`
	HealthBenefits       int     `json:"healthBenefits"`

	// Skipped counts interventions dropped for an unknown type or
	// non-finite coordinates.
	Skipped int `json:"-"`
}

// ApplyInterventions overlays the cooling of each intervention onto a copy of
// base and returns the new grid with aggregate statistics.
//
// base is never modified, so one grid may be shared by concurrent calls.
// Unknown types and non-finite coordinates are skipped without cost. Cooling
// from overlapping interventions accumulates with no temperature floor.
func ApplyInterventions(base HeatGrid, interventions []Intervention, effects EffectTable) (HeatGrid, SimulationStats) {
	grid := base.Clone()
	var stats SimulationStats
	var totalReduction float64

	for _, iv := range interventions {
		if !iv.Applicable(effects) {
			stats.Skipped++
			continue
		}
		effect := effects[iv.Type]
		stats.TotalCost += effect.Cost

		if effect.Radius <= 0 {
			continue
		}
		cx, cy := resolveCenter(iv, grid)

		for i := range grid {
			p := &grid[i]
			d := math.Hypot(float64(p.X)-cx, float64(p.Y)-cy)
			if d > effect.Radius {
				continue
			}
			cooling := effect.Cooling * (1 - d/effect.Radius)
			p.Temperature += cooling

			reduction := -cooling
			totalReduction += reduction
			if reduction > stats.MaxTempReduction {
				stats.MaxTempReduction = reduction
			}
		}
	}

	if len(interventions) > 0 && len(grid) > 0 {
		stats.AverageTempReduction = totalReduction / float64(len(grid))
	}
	stats.EnergySavings = int(math.RoundToEven(float64(stats.TotalCost) * energySavingsRate))
	stats.HealthBenefits = int(math.RoundToEven(float64(stats.TotalCost) * healthBenefitsRate))

	return grid, stats
}
