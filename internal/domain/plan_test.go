package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSpecs(t *testing.T, raw string) []InterventionSpec {
	t.Helper()
	var specs []InterventionSpec
	require.NoError(t, json.Unmarshal([]byte(raw), &specs))
	return specs
}

func TestParsePlan_MissingCoordinatesAreSkipped(t *testing.T) {
	plan, err := ParsePlan(decodeSpecs(t, `[{"type":"trees","y":5},{"type":"water","x":1,"y":2,"coords":"percent"}]`))
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.True(t, math.IsNaN(plan[0].X))
	assert.Equal(t, 5.0, plan[0].Y)
	assert.Equal(t, Intervention{Type: InterventionWater, X: 1, Y: 2, Coords: CoordPercent}, plan[1])

	_, stats := ApplyInterventions(flatGrid(4, 4, 30), plan, DefaultEffectTable())
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 5000, stats.TotalCost)
}

func TestParsePlan_UnknownCoordinateMode(t *testing.T) {
	_, err := ParsePlan(decodeSpecs(t, `[{"type":"water","x":50,"y":50,"coords":"bogus"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intervention 0")
}

func TestParsePlan_Limit(t *testing.T) {
	x, y := 1.0, 1.0
	specs := make([]InterventionSpec, MaxInterventions+1)
	for i := range specs {
		specs[i] = InterventionSpec{Type: InterventionTrees, X: &x, Y: &y}
	}

	_, err := ParsePlan(specs)
	require.ErrorIs(t, err, ErrTooManyInterventions)

	plan, err := ParsePlan(specs[:MaxInterventions])
	require.NoError(t, err)
	assert.Len(t, plan, MaxInterventions)
}

func TestParsePlan_Empty(t *testing.T) {
	plan, err := ParsePlan(nil)
	require.NoError(t, err)
	assert.Empty(t, plan)
}
