package domain

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Defaults applied by callers when a request omits grid parameters.
const (
	DefaultWidth    = 100
	DefaultHeight   = 100
	DefaultLocation = LocationDowntown
)

// Temperature model constants, in degrees Celsius.
const (
	baseTempMin    = 28.0
	baseTempSpan   = 2.0
	noiseAmplitude = 1.0
)

var (
	// ErrInvalidDimensions is returned for a non-positive grid width or height.
	ErrInvalidDimensions = errors.New("grid width and height must be positive")

	// ErrNilRandom is returned when GenerateHeatMap is called without a random source.
	ErrNilRandom = errors.New("random source is required")
)

// GenerateHeatMap synthesizes a width x height heat grid for a location.
//
// Each cell starts from a uniform base temperature in [28, 30), gains
// intensity*(1 - d/r) from every hotspot strictly closer than its radius, and
// receives uniform noise in [-1, 1). The rng makes output reproducible for a
// given seed. It is not safe to share rng across goroutines.
func GenerateHeatMap(rng *rand.Rand, table HotspotTable, width, height int, location string) (HeatGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if rng == nil {
		return nil, ErrNilRandom
	}

	hotspots := table.Resolve(location)
	grid := make(HeatGrid, 0, width*height)

	for x := range width {
		for y := range height {
			temp := baseTempMin + rng.Float64()*baseTempSpan
			temp += hotspotHeat(hotspots, float64(x), float64(y))
			temp += (rng.Float64()*2 - 1) * noiseAmplitude

			grid = append(grid, SamplePoint{X: x, Y: y, Temperature: temp})
		}
	}
	return grid, nil
}

// hotspotHeat sums the linear-falloff contribution of every hotspot reaching (x, y).
func hotspotHeat(hotspots []Hotspot, x, y float64) float64 {
	var heat float64
	for _, h := range hotspots {
		if h.Radius <= 0 {
			continue
		}
		d := math.Hypot(x-h.X, y-h.Y)
		if d < h.Radius {
			heat += h.Intensity * (1 - d/h.Radius)
		}
	}
	return heat
}
