package domain

// SimilarArea is a comparable district elsewhere with a documented cooling outcome.
type SimilarArea struct {
	Name      string `json:"name"`
	Image     string `json:"image"`
	Reduction string `json:"reduction"`
}

// Recommendation is a suggested intervention program for a location.
type Recommendation struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Confidence  int              `json:"confidence"`
	GraphScore  int              `json:"graphScore"`
	VectorScore int              `json:"vectorScore"`
	Type        InterventionType `json:"type"`
	Locations   [][2]int         `json:"locations"`
}

// GraphRelationship is a knowledge-graph edge between two places.
type GraphRelationship struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Relationship string  `json:"relationship"`
	Strength     float64 `json:"strength"`
}

// Analysis bundles everything the catalog knows about a location.
type Analysis struct {
	SimilarAreas       []SimilarArea       `json:"similarAreas"`
	Recommendations    []Recommendation    `json:"recommendations"`
	StructuralInsights []GraphRelationship `json:"structuralInsights"`
}

// InsightCatalog holds static per-location planning data. Lookups are
// case-insensitive and fall back to the Fallback location.
type InsightCatalog struct {
	Similar       map[string][]SimilarArea
	Recommended   map[string][]Recommendation
	Relationships map[string][]GraphRelationship
	Fallback      string
}

// SimilarAreas returns comparable districts for a location.
func (c InsightCatalog) SimilarAreas(location string) []SimilarArea {
	return lookup(c.Similar, location, c.Fallback)
}

// Recommendations returns suggested interventions for a location.
func (c InsightCatalog) Recommendations(location string) []Recommendation {
	return lookup(c.Recommended, location, c.Fallback)
}

// StructuralInsights returns knowledge-graph relationships for a location.
func (c InsightCatalog) StructuralInsights(location string) []GraphRelationship {
	return lookup(c.Relationships, location, c.Fallback)
}

// Analyze combines all catalog data for a location.
func (c InsightCatalog) Analyze(location string) Analysis {
	return Analysis{
		SimilarAreas:       c.SimilarAreas(location),
		Recommendations:    c.Recommendations(location),
		StructuralInsights: c.StructuralInsights(location),
	}
}

func lookup[T any](table map[string][]T, location, fallback string) []T {
	if v, ok := table[NormalizeLocation(location)]; ok {
		return v
	}
	return table[fallback]
}

const placeholderImage = "/placeholder.svg?height=100&width=150"

// DefaultInsightCatalog returns the built-in catalog.
func DefaultInsightCatalog() InsightCatalog {
	return InsightCatalog{
		Similar: map[string][]SimilarArea{
			LocationDowntown: {
				{Name: "Barcelona - Gothic Quarter", Image: placeholderImage, Reduction: "3.2°C"},
				{Name: "Madrid - Lavapiés", Image: placeholderImage, Reduction: "2.8°C"},
				{Name: "Melbourne - CBD", Image: placeholderImage, Reduction: "2.5°C"},
				{Name: "Seoul - Gangnam", Image: placeholderImage, Reduction: "2.1°C"},
			},
			LocationMidtown: {
				{Name: "Paris - Montmartre", Image: placeholderImage, Reduction: "2.9°C"},
				{Name: "Chicago - Loop", Image: placeholderImage, Reduction: "3.1°C"},
				{Name: "Tokyo - Shibuya", Image: placeholderImage, Reduction: "2.4°C"},
				{Name: "Berlin - Mitte", Image: placeholderImage, Reduction: "2.6°C"},
			},
			LocationIndustrial: {
				{Name: "Rotterdam - Port", Image: placeholderImage, Reduction: "4.1°C"},
				{Name: "Detroit - Rivertown", Image: placeholderImage, Reduction: "3.8°C"},
				{Name: "Shanghai - Pudong", Image: placeholderImage, Reduction: "3.5°C"},
				{Name: "Hamburg - HafenCity", Image: placeholderImage, Reduction: "3.2°C"},
			},
		},
		Recommended: map[string][]Recommendation{
			LocationDowntown: {
				{
					Title:       "Strategic Tree Placement",
					Description: "Place trees along southern building facades for maximum shade impact",
					Confidence:  92,
					GraphScore:  87,
					VectorScore: 94,
					Type:        InterventionTrees,
					Locations:   [][2]int{{25, 50}, {60, 30}, {40, 70}},
				},
				{
					Title:       "Green Roof Network",
					Description: "Connect green roofs on adjacent buildings to create cooling corridors",
					Confidence:  85,
					GraphScore:  91,
					VectorScore: 82,
					Type:        InterventionRoofs,
					Locations:   [][2]int{{35, 40}, {55, 45}},
				},
				{
					Title:       "Water Feature Placement",
					Description: "Add water features to central gathering areas for evaporative cooling",
					Confidence:  79,
					GraphScore:  75,
					VectorScore: 81,
					Type:        InterventionWater,
					Locations:   [][2]int{{50, 50}},
				},
			},
			LocationMidtown: {
				{
					Title:       "Green Corridor Development",
					Description: "Create connected green spaces along main pedestrian routes",
					Confidence:  88,
					GraphScore:  85,
					VectorScore: 91,
					Type:        InterventionGreen,
					Locations:   [][2]int{{30, 30}, {45, 45}, {60, 60}},
				},
				{
					Title:       "Reflective Pavement",
					Description: "Replace dark asphalt with high-albedo materials in high-traffic areas",
					Confidence:  82,
					GraphScore:  79,
					VectorScore: 84,
					Type:        InterventionRoofs,
					Locations:   [][2]int{{40, 50}, {60, 40}},
				},
				{
					Title:       "Pocket Parks",
					Description: "Convert small unused spaces into vegetated areas",
					Confidence:  76,
					GraphScore:  72,
					VectorScore: 79,
					Type:        InterventionGreen,
					Locations:   [][2]int{{35, 65}, {70, 30}},
				},
			},
			LocationIndustrial: {
				{
					Title:       "Cool Roof Implementation",
					Description: "Apply reflective coatings to large warehouse roofs",
					Confidence:  94,
					GraphScore:  91,
					VectorScore: 97,
					Type:        InterventionRoofs,
					Locations:   [][2]int{{40, 40}, {70, 30}, {50, 60}},
				},
				{
					Title:       "Perimeter Vegetation",
					Description: "Create dense tree buffers around industrial facilities",
					Confidence:  89,
					GraphScore:  87,
					VectorScore: 90,
					Type:        InterventionTrees,
					Locations:   [][2]int{{30, 30}, {60, 60}, {20, 70}},
				},
				{
					Title:       "Permeable Parking Areas",
					Description: "Convert employee parking to water-permeable surfaces",
					Confidence:  83,
					GraphScore:  80,
					VectorScore: 85,
					Type:        InterventionGreen,
					Locations:   [][2]int{{45, 45}, {65, 25}},
				},
			},
		},
		Relationships: map[string][]GraphRelationship{
			LocationDowntown: {
				{Source: "Central Plaza", Target: "Business District", Relationship: "COOLS", Strength: 0.7},
				{Source: "Main Street", Target: "Residential Area", Relationship: "HEAT_CORRIDOR", Strength: 0.9},
				{Source: "Shopping Mall", Target: "Parking Lot", Relationship: "AMPLIFIES_HEAT", Strength: 0.8},
			},
			LocationMidtown: {
				{Source: "Park Avenue", Target: "Residential Towers", Relationship: "COOLS", Strength: 0.6},
				{Source: "Transit Hub", Target: "Commercial District", Relationship: "AMPLIFIES_HEAT", Strength: 0.8},
				{Source: "Green Belt", Target: "Office Buildings", Relationship: "REDUCES_TEMPERATURE", Strength: 0.7},
			},
			LocationIndustrial: {
				{Source: "Factory Complex", Target: "Worker Housing", Relationship: "HEAT_SOURCE", Strength: 0.9},
				{Source: "Rail Yard", Target: "Storage Facilities", Relationship: "AMPLIFIES_HEAT", Strength: 0.8},
				{Source: "Riverfront", Target: "Industrial Zone", Relationship: "COOLS", Strength: 0.6},
			},
		},
		Fallback: LocationDowntown,
	}
}
