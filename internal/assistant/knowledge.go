package assistant

import "context"

// VectorHit is a document returned by similarity search.
type VectorHit struct {
	ID      string
	Score   float64
	Content string
}

// GraphContext is the neighborhood of a set of knowledge-graph entities.
type GraphContext struct {
	Nodes []string
	Edges []string
}

// KnowledgeSource retrieves supporting context for knowledge queries.
type KnowledgeSource interface {
	Search(ctx context.Context, query string, topK int) ([]VectorHit, error)
	GraphContext(ctx context.Context, ids []string) (GraphContext, error)
}

// StaticKnowledge serves a fixed corpus of urban cooling findings. It stands
// in for a graph database and vector index.
type StaticKnowledge struct{}

var staticHits = []VectorHit{
	{ID: "doc1", Score: 0.92, Content: "Urban tree canopies can reduce temperatures by up to 4°C"},
	{ID: "doc2", Score: 0.88, Content: "Cool roofs reflect sunlight and can reduce cooling costs by 15-40%"},
	{ID: "doc3", Score: 0.85, Content: "Barcelona's urban cooling strategy combines green corridors with water features"},
	{ID: "doc4", Score: 0.82, Content: "Heat islands form primarily in areas with dark surfaces and limited vegetation"},
	{ID: "doc5", Score: 0.79, Content: "Strategic placement of trees on southern and western exposures maximizes cooling"},
}

// Search returns up to topK hits in descending score order.
func (StaticKnowledge) Search(_ context.Context, _ string, topK int) ([]VectorHit, error) {
	if topK <= 0 || topK > len(staticHits) {
		topK = len(staticHits)
	}
	out := make([]VectorHit, topK)
	copy(out, staticHits)
	return out, nil
}

// GraphContext returns the same neighborhood for any entity set.
func (StaticKnowledge) GraphContext(_ context.Context, _ []string) (GraphContext, error) {
	return GraphContext{
		Nodes: []string{
			"Urban Area", "Tree Canopy", "Cool Roof", "Heat Island",
			"Pedestrian Comfort", "Energy Consumption", "Water Feature",
		},
		Edges: []string{
			"Tree Canopy REDUCES Heat Island",
			"Heat Island INCREASES Energy Consumption",
			"Cool Roof REDUCES Heat Island",
			"Water Feature ENHANCES Cooling Effect",
			"Tree Canopy IMPROVES Pedestrian Comfort",
		},
	}, nil
}
