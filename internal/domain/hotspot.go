package domain

import "strings"

// Location names with dedicated hotspot profiles.
const (
	LocationDowntown   = "downtown"
	LocationMidtown    = "midtown"
	LocationIndustrial = "industrial district"
)

// Hotspot is a fixed point of peak heat intensity with a linear falloff radius.
type Hotspot struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
	Radius    float64 `json:"radius"`
}

// HotspotTable maps lowercased location names to hotspot profiles. Names not
// present resolve to Default.
type HotspotTable struct {
	Profiles map[string][]Hotspot
	Default  []Hotspot
}

// Resolve returns the hotspots for a location. It never fails: unknown names
// get the default profile set.
func (t HotspotTable) Resolve(location string) []Hotspot {
	if spots, ok := t.Profiles[NormalizeLocation(location)]; ok {
		return spots
	}
	return t.Default
}

// ProfileName returns the profile a location resolves to, or "default".
func (t HotspotTable) ProfileName(location string) string {
	name := NormalizeLocation(location)
	if _, ok := t.Profiles[name]; ok {
		return name
	}
	return "default"
}

// Locations lists the names with dedicated profiles.
func (t HotspotTable) Locations() []string {
	out := make([]string, 0, len(t.Profiles))
	for name := range t.Profiles {
		out = append(out, name)
	}
	return out
}

// NormalizeLocation lowercases and trims a location name for table lookups.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// DefaultHotspotTable returns the built-in city profiles.
func DefaultHotspotTable() HotspotTable {
	return HotspotTable{
		Profiles: map[string][]Hotspot{
			// Concentrated heat islands.
			LocationDowntown: {
				{X: 45, Y: 35, Intensity: 10, Radius: 30},
				{X: 75, Y: 25, Intensity: 8, Radius: 25},
				{X: 30, Y: 60, Intensity: 7, Radius: 20},
				{X: 60, Y: 70, Intensity: 9, Radius: 28},
			},
			LocationMidtown: {
				{X: 30, Y: 30, Intensity: 7, Radius: 35},
				{X: 60, Y: 40, Intensity: 6, Radius: 30},
				{X: 45, Y: 70, Intensity: 8, Radius: 25},
			},
			// Fewer, more intense sources.
			LocationIndustrial: {
				{X: 40, Y: 40, Intensity: 12, Radius: 20},
				{X: 70, Y: 30, Intensity: 11, Radius: 15},
				{X: 50, Y: 60, Intensity: 10, Radius: 25},
				{X: 20, Y: 70, Intensity: 9, Radius: 18},
			},
		},
		Default: []Hotspot{
			{X: 50, Y: 50, Intensity: 8, Radius: 40},
			{X: 30, Y: 30, Intensity: 6, Radius: 25},
			{X: 70, Y: 70, Intensity: 7, Radius: 30},
		},
	}
}
