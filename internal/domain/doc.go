// Package domain models synthetic urban heat fields and the cooling effect of
// planned interventions.
//
// # Heat Field Model
//
// A heat map is a width x height grid of [SamplePoint] values. Generation is
// an illustrative additive model, not a thermodynamic simulation:
//
//	temperature(x, y) = base + Σ hotspot(x, y) + noise
//
//	base     uniform in [28.0, 30.0) °C
//	hotspot  intensity * (1 - d/radius) when d < radius, else 0
//	noise    uniform in [-1.0, +1.0) °C
//
// where d is the Euclidean distance from the cell to the hotspot center.
// Overlapping hotspots add. Each location name maps to a fixed set of 3–4
// hotspots; unknown names use the default set (see [DefaultHotspotTable]).
//
// Randomness comes from an explicit *rand.Rand so that a seeded source
// reproduces the same grid.
//
// # Interventions
//
// Each intervention type has a fixed effect profile:
//
//	type    radius  cooling  cost
//	trees   15      -0.5     500
//	roofs   10      -0.3     1200
//	green   20      -0.7     2000
//	water   25      -0.8     5000
//	shade   12      -0.4     3000
//
// Every cell within the radius (inclusive) is cooled by
// cooling * (1 - d/radius). Effects are cumulative and unclamped, so
// temperatures may drop arbitrarily low under dense plans; the statistics are
// for comparing plans, not predicting real temperatures.
//
// # Coordinates
//
// Intervention coordinates are absolute grid indices by default. Percent mode
// maps [0, 100] onto each axis. Legacy mode reproduces the first release's
// rule, where a fractional value <= 100 is scaled by the total point count.
//
// # Statistics
//
//	totalCost             sum of applied intervention costs
//	maxTempReduction      largest single-cell reduction from one intervention
//	averageTempReduction  total reduction / number of cells
//	energySavings         round(totalCost * 0.15)
//	healthBenefits        round(totalCost * 0.25)
//
// Rounding is half-to-even.
package domain
