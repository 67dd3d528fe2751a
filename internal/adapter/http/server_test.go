package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/urbanshade-service/internal/adapter/http"
	"github.com/couchcryptid/urbanshade-service/internal/assistant"
	"github.com/couchcryptid/urbanshade-service/internal/domain"
	"github.com/couchcryptid/urbanshade-service/internal/observability"
	"github.com/couchcryptid/urbanshade-service/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridSize = 12

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	srv     *httpadapter.Server
	planner *planner.Planner
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	p := planner.New(planner.Options{Width: gridSize, Height: gridSize, Seed: 5}, nil, nil, nil, discardLogger(), metrics)
	a := assistant.New(nil, nil, rand.New(rand.NewPCG(1, 1)), discardLogger(), metrics)
	return testEnv{
		srv:     httpadapter.NewServer(":0", p, a, nil, discardLogger()),
		planner: p,
	}
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

type heatmapBody struct {
	Location        string          `json:"location"`
	BaseTemperature float64         `json:"baseTemperature"`
	HeatMap         [][]float64     `json:"heatMap"`
	Geo             json.RawMessage `json:"geo"`
}

type simulateBody struct {
	ID         string         `json:"id"`
	NewHeatMap [][]float64    `json:"newHeatMap"`
	Statistics map[string]any `json:"statistics"`
}

// --- ops endpoints ---

func TestHealthzReturns200(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzFollowsWarmup(t *testing.T) {
	env := newTestEnv(t)

	rec := do(t, env.srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, env.planner.Warm(context.Background()))

	rec = do(t, env.srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRootBanner(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Contains(t, body["message"], "UrbanShade")

	rec = do(t, env.srv, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/heatmap", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	env.srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// --- heat map ---

func TestHeatmap_DefaultLocation(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodGet, "/api/heatmap", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[heatmapBody](t, rec)
	assert.Equal(t, "downtown", body.Location)
	assert.Equal(t, 32.5, body.BaseTemperature)
	require.Len(t, body.HeatMap, gridSize*gridSize)
	for _, triple := range body.HeatMap {
		require.Len(t, triple, 3)
	}
	assert.Empty(t, body.Geo, "geo is omitted without a geocoder")
}

func TestHeatmap_EchoesLocation(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodGet, "/api/heatmap?location=Industrial%20District", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[heatmapBody](t, rec)
	assert.Equal(t, "Industrial District", body.Location)
}

// --- simulate ---

func TestSimulate_UsesLocationGrid(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodPost, "/api/simulate",
		`{"location":"downtown","interventions":[{"type":"trees","x":6,"y":6},{"type":"lasers","x":1,"y":1}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[simulateBody](t, rec)
	assert.NotEmpty(t, body.ID)
	assert.Len(t, body.NewHeatMap, gridSize*gridSize)
	assert.InDelta(t, 500, body.Statistics["totalCost"], 0)
	assert.InDelta(t, 75, body.Statistics["energySavings"], 0)
	assert.InDelta(t, 125, body.Statistics["healthBenefits"], 0)
	assert.Len(t, body.Statistics, 5)
}

func TestSimulate_WithBaseHeatMap(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodPost, "/api/simulate",
		`{"location":"x","interventions":[{"type":"water","x":0,"y":0}],"baseHeatMap":[[0,0,30],[0,1,31],[1,0,32]]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[simulateBody](t, rec)
	require.Len(t, body.NewHeatMap, 3)
	assert.Equal(t, []float64{0, 0}, body.NewHeatMap[0][:2])
	assert.InDelta(t, 29.2, body.NewHeatMap[0][2], 1e-9)
	assert.InDelta(t, 0.8, body.Statistics["maxTempReduction"], 1e-9)
}

func TestSimulate_MissingCoordinatesSkipped(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodPost, "/api/simulate",
		`{"location":"downtown","interventions":[{"type":"trees","y":4},{"type":"roofs","x":2,"y":2}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[simulateBody](t, rec)
	assert.InDelta(t, 1200, body.Statistics["totalCost"], 0)
}

func TestSimulate_PercentCoordinates(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodPost, "/api/simulate",
		`{"interventions":[{"type":"shade","x":50,"y":50,"coords":"percent"}],"baseHeatMap":[[0,0,30],[1,0,30],[2,0,30]]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[simulateBody](t, rec)
	assert.InDelta(t, 29.6, body.NewHeatMap[1][2], 1e-9, "50% of x lands on the middle cell")
}

func TestSimulate_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"location":`},
		{"malformed base point", `{"location":"downtown","interventions":[],"baseHeatMap":[[1,2]]}`},
		{"fractional base coordinate", `{"location":"downtown","interventions":[],"baseHeatMap":[[1.5,2,30]]}`},
		{"unknown coordinate mode", `{"location":"downtown","interventions":[{"type":"trees","x":1,"y":1,"coords":"polar"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := do(t, env.srv, http.MethodPost, "/api/simulate", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody[map[string]string](t, rec)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSimulate_TooManyInterventions(t *testing.T) {
	env := newTestEnv(t)
	items := make([]string, domain.MaxInterventions+1)
	for i := range items {
		items[i] = `{"type":"trees","x":1,"y":1}`
	}
	body := `{"location":"downtown","interventions":[` + strings.Join(items, ",") + `]}`

	rec := do(t, env.srv, http.MethodPost, "/api/simulate", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many interventions")
}

func TestSimulate_BodyTooLarge(t *testing.T) {
	env := newTestEnv(t)
	huge := `{"location":"` + strings.Repeat("a", 9<<20) + `"}`
	rec := do(t, env.srv, http.MethodPost, "/api/simulate", huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSimulate_WrongMethod(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodGet, "/api/simulate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// --- assistant ---

func TestVoice_CannedCommand(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodPost, "/api/voice", `{"text":"Show hottest areas"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[assistant.VoiceResponse](t, rec)
	assert.Equal(t, assistant.ActionHighlight, body.Action)
	assert.Equal(t, "heat", body.Parameters["type"])
}

func TestGraphRAG_ReturnsResponse(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodPost, "/api/graphrag", `{"query":"what cools best?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Contains(t, body["response"], "knowledge graph")
}

// --- analysis ---

func TestAnalysis_KnownLocation(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.srv, http.MethodPost, "/api/analysis",
		`{"location":"midtown","interventions":[],"filters":{"trees":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[domain.Analysis](t, rec)
	assert.Len(t, body.SimilarAreas, 4)
	assert.Equal(t, "Green Corridor Development", body.Recommendations[0].Title)
	assert.Len(t, body.StructuralInsights, 3)
}

// --- failure mapping ---

type failingPlanner struct{}

func (failingPlanner) CheckReadiness(context.Context) error { return errors.New("not warmed") }

func (failingPlanner) Heatmap(context.Context, string) (planner.HeatmapResult, error) {
	return planner.HeatmapResult{}, errors.New("generator exploded")
}

func (failingPlanner) Simulate(context.Context, planner.SimulationRequest) (planner.SimulationResult, error) {
	return planner.SimulationResult{}, errors.New("generator exploded")
}

func (failingPlanner) Analyze(context.Context, string) (domain.Analysis, error) {
	return domain.Analysis{}, context.Canceled
}

func TestFailuresMapToStatusCodes(t *testing.T) {
	a := assistant.New(nil, nil, nil, discardLogger(), observability.NewMetricsForTesting())
	srv := httpadapter.NewServer(":0", failingPlanner{}, a, []string{"http://localhost:3000"}, discardLogger())

	rec := do(t, srv, http.MethodGet, "/api/heatmap?location=downtown", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "exploded", "internal errors are not leaked")

	rec = do(t, srv, http.MethodPost, "/api/simulate", `{"location":"downtown","interventions":[]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/analysis", `{"location":"downtown"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
