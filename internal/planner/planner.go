// Package planner runs the heat engine on behalf of the service: it caches
// base grids, applies intervention plans, publishes simulation records and
// reports readiness.
package planner

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/urbanshade-service/internal/cache"
	"github.com/couchcryptid/urbanshade-service/internal/domain"
	"github.com/couchcryptid/urbanshade-service/internal/observability"
)

// BaseTemperature is the reference temperature reported with every heat map.
const BaseTemperature = 32.5

const (
	defaultGridCacheSize = 64
	publishTimeout       = 5 * time.Second
)

// GridCache stores generated base grids by key.
type GridCache interface {
	Get(key string) (domain.HeatGrid, bool)
	Put(key string, grid domain.HeatGrid)
}

// RecordPublisher delivers simulation records to downstream consumers.
type RecordPublisher interface {
	Publish(ctx context.Context, record domain.SimulationRecord) error
}

// Options configures a Planner. Zero values select the built-in defaults.
type Options struct {
	Width         int
	Height        int
	Seed          uint64 // 0 draws a fresh random source for every generated grid
	Hotspots      domain.HotspotTable
	Effects       domain.EffectTable
	Insights      domain.InsightCatalog
	AnalysisDelay time.Duration
	GeocodeRegion string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = domain.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = domain.DefaultHeight
	}
	if o.Hotspots.Profiles == nil && o.Hotspots.Default == nil {
		o.Hotspots = domain.DefaultHotspotTable()
	}
	if o.Effects == nil {
		o.Effects = domain.DefaultEffectTable()
	}
	if o.Insights.Fallback == "" {
		o.Insights = domain.DefaultInsightCatalog()
	}
	return o
}

// HeatmapResult is a base grid for a location.
type HeatmapResult struct {
	Location        string
	BaseTemperature float64
	Grid            domain.HeatGrid
	Geo             *domain.AreaLocation
}

// SimulationRequest describes one intervention plan. When BaseGrid is empty
// the location's base grid is used.
type SimulationRequest struct {
	Location      string
	Interventions []domain.Intervention
	BaseGrid      domain.HeatGrid
}

// SimulationResult is the cooled grid plus the record describing the run.
type SimulationResult struct {
	Grid   domain.HeatGrid
	Record domain.SimulationRecord
}

// Planner orchestrates heat map generation and intervention simulation.
type Planner struct {
	opts      Options
	grids     GridCache
	publisher RecordPublisher
	geocoder  domain.Geocoder
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Planner. grids may be nil for a default-sized LRU; publisher
// and geocoder may be nil to disable publication and geocoding.
func New(opts Options, grids GridCache, publisher RecordPublisher, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Planner {
	if grids == nil {
		grids = cache.New[string, domain.HeatGrid](defaultGridCacheSize)
	}
	return &Planner{
		opts:      opts.withDefaults(),
		grids:     grids,
		publisher: publisher,
		geocoder:  geocoder,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once Warm has completed.
func (p *Planner) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("base heat maps have not been generated yet")
	}
	return nil
}

// Warm generates and caches the base grid of every named location, then
// marks the planner ready.
func (p *Planner) Warm(ctx context.Context) error {
	start := time.Now()
	locations := p.opts.Hotspots.Locations()
	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := p.baseGrid(loc); err != nil {
			return fmt.Errorf("warm %q: %w", loc, err)
		}
	}
	p.ready.Store(true)
	p.metrics.PlannerReady.Set(1)
	p.logger.Info("base heat maps warmed",
		"locations", len(locations),
		"width", p.opts.Width,
		"height", p.opts.Height,
		"duration", time.Since(start),
	)
	return nil
}

// Heatmap returns the base grid for a location, generating it on first use.
// The blank location is the default location.
func (p *Planner) Heatmap(ctx context.Context, location string) (HeatmapResult, error) {
	if domain.NormalizeLocation(location) == "" {
		location = domain.DefaultLocation
	}
	grid, err := p.baseGrid(location)
	if err != nil {
		return HeatmapResult{}, err
	}
	return HeatmapResult{
		Location:        location,
		BaseTemperature: BaseTemperature,
		Grid:            grid.Clone(),
		Geo:             domain.LocateArea(ctx, p.geocoder, location, p.opts.GeocodeRegion, p.logger),
	}, nil
}

// Simulate applies an intervention plan and publishes a record of the run.
// Publication failures are logged and never fail the simulation.
func (p *Planner) Simulate(ctx context.Context, req SimulationRequest) (SimulationResult, error) {
	location := req.Location
	if domain.NormalizeLocation(location) == "" {
		location = domain.DefaultLocation
	}

	base := req.BaseGrid
	if len(base) == 0 {
		var err error
		if base, err = p.baseGrid(location); err != nil {
			return SimulationResult{}, err
		}
	}

	start := time.Now()
	grid, stats := domain.ApplyInterventions(base, req.Interventions, p.opts.Effects)
	p.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	p.metrics.SimulationsRun.Inc()
	for _, iv := range req.Interventions {
		if iv.Applicable(p.opts.Effects) {
			p.metrics.InterventionsApplied.WithLabelValues(string(iv.Type)).Inc()
		}
	}
	if stats.Skipped > 0 {
		p.metrics.InterventionsSkipped.Add(float64(stats.Skipped))
		p.logger.Debug("interventions skipped", "location", location, "skipped", stats.Skipped)
	}

	record := domain.NewSimulationRecord(location, req.Interventions, grid, stats)
	p.publish(ctx, record)

	return SimulationResult{Grid: grid, Record: record}, nil
}

// Analyze returns catalog insights for a location after the configured
// analysis delay.
func (p *Planner) Analyze(ctx context.Context, location string) (domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.Analysis{}, err
	}
	if !retry.SleepWithContext(ctx, p.opts.AnalysisDelay) {
		return domain.Analysis{}, ctx.Err()
	}
	return p.opts.Insights.Analyze(location), nil
}

func (p *Planner) publish(ctx context.Context, record domain.SimulationRecord) {
	if p.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.publisher.Publish(ctx, record); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("publish simulation record failed",
			"error", err,
			"record_id", record.ID,
			"location", record.Location,
		)
		return
	}
	p.metrics.RecordsPublished.Inc()
}

// baseGrid returns the cached grid for a location or generates it. Cached
// grids are shared and must not be modified.
func (p *Planner) baseGrid(location string) (domain.HeatGrid, error) {
	key := gridKey(location, p.opts.Width, p.opts.Height)
	if grid, ok := p.grids.Get(key); ok {
		p.metrics.GridCache.WithLabelValues("hit").Inc()
		return grid, nil
	}
	p.metrics.GridCache.WithLabelValues("miss").Inc()

	start := time.Now()
	grid, err := domain.GenerateHeatMap(p.rng(location), p.opts.Hotspots, p.opts.Width, p.opts.Height, location)
	if err != nil {
		return nil, fmt.Errorf("generate heat map: %w", err)
	}
	p.metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	p.metrics.HeatmapsGenerated.WithLabelValues(p.opts.Hotspots.ProfileName(location)).Inc()

	p.grids.Put(key, grid)
	return grid, nil
}

// rng returns a deterministic per-location source when a seed is configured.
func (p *Planner) rng(location string) *rand.Rand {
	if p.opts.Seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	h := fnv.New64a()
	h.Write([]byte(domain.NormalizeLocation(location))) //nolint:errcheck // hash writes never fail
	return rand.New(rand.NewPCG(p.opts.Seed, h.Sum64()))
}

func gridKey(location string, width, height int) string {
	return fmt.Sprintf("%s|%dx%d", domain.NormalizeLocation(location), width, height)
}
