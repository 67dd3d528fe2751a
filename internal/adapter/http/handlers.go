package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/couchcryptid/urbanshade-service/internal/domain"
	"github.com/couchcryptid/urbanshade-service/internal/planner"
)

// maxBodyBytes bounds request bodies. A 100x100 base grid is roughly 300 KB.
const maxBodyBytes = 8 << 20

type simulateRequest struct {
	Location      string                    `json:"location"`
	Interventions []domain.InterventionSpec `json:"interventions"`
	BaseHeatMap   domain.HeatGrid           `json:"baseHeatMap"`
}

type simulateResponse struct {
	ID         string                 `json:"id"`
	NewHeatMap domain.HeatGrid        `json:"newHeatMap"`
	Statistics domain.SimulationStats `json:"statistics"`
}

type heatmapResponse struct {
	Location        string               `json:"location"`
	BaseTemperature float64              `json:"baseTemperature"`
	HeatMap         domain.HeatGrid      `json:"heatMap"`
	Geo             *domain.AreaLocation `json:"geo,omitempty"`
}

type voiceRequest struct {
	Text string `json:"text"`
}

type graphRAGRequest struct {
	Query string `json:"query"`
}

type graphRAGResponse struct {
	Response string `json:"response"`
}

type analysisRequest struct {
	Location      string                    `json:"location"`
	Interventions []domain.InterventionSpec `json:"interventions"`
	Filters       map[string]bool           `json:"filters,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "UrbanShade API is running."})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	res, err := s.planner.Heatmap(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		s.internalError(w, r, "heat map generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, heatmapResponse{
		Location:        res.Location,
		BaseTemperature: res.BaseTemperature,
		HeatMap:         res.Grid,
		Geo:             res.Geo,
	})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !s.decode(w, r, &req) {
		return
	}
	interventions, err := domain.ParsePlan(req.Interventions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.planner.Simulate(r.Context(), planner.SimulationRequest{
		Location:      req.Location,
		Interventions: interventions,
		BaseGrid:      req.BaseHeatMap,
	})
	if err != nil {
		s.internalError(w, r, "simulation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, simulateResponse{
		ID:         res.Record.ID,
		NewHeatMap: res.Grid,
		Statistics: res.Record.Stats,
	})
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.assistant.Voice(r.Context(), req.Text))
}

func (s *Server) handleGraphRAG(w http.ResponseWriter, r *http.Request) {
	var req graphRAGRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, graphRAGResponse{Response: s.assistant.Query(r.Context(), req.Query)})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if !s.decode(w, r, &req) {
		return
	}
	analysis, err := s.planner.Analyze(r.Context(), req.Location)
	if err != nil {
		s.logger.Warn("analysis aborted", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusServiceUnavailable, "analysis aborted")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// decode reads a size-limited JSON body. On failure it writes a 400 and
// returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg, "error", err, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
	writeError(w, http.StatusInternalServerError, msg)
}
