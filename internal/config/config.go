package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Heat engine configuration.
	GridWidth     int
	GridHeight    int
	HeatmapSeed   uint64
	GridCacheSize int
	AnalysisDelay time.Duration

	// Simulation record publishing.
	KafkaEnabled         bool
	KafkaBrokers         []string
	KafkaSimulationTopic string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
	GeocodeRegion   string

	// Anthropic assistant configuration.
	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicMaxTokens int64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	width, err := parsePositiveInt("GRID_WIDTH", 100)
	if err != nil {
		return nil, err
	}
	height, err := parsePositiveInt("GRID_HEIGHT", 100)
	if err != nil {
		return nil, err
	}
	gridCacheSize, err := parsePositiveInt("GRID_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	seed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("HEATMAP_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HEATMAP_SEED: %w", err)
	}

	analysisDelay, err := time.ParseDuration(sharedcfg.EnvOrDefault("ANALYSIS_DELAY", "0s"))
	if err != nil || analysisDelay < 0 {
		return nil, errors.New("invalid ANALYSIS_DELAY")
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	anthropicMaxTokens, err := parsePositiveInt("ANTHROPIC_MAX_TOKENS", 1024)
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8000"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		CORSAllowedOrigins: splitList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		GridWidth:     width,
		GridHeight:    height,
		HeatmapSeed:   seed,
		GridCacheSize: gridCacheSize,
		AnalysisDelay: analysisDelay,

		KafkaEnabled:         os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:         sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSimulationTopic: sharedcfg.EnvOrDefault("KAFKA_SIMULATION_TOPIC", "heat-simulations"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
		GeocodeRegion:   os.Getenv("GEOCODE_REGION"),

		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     sharedcfg.EnvOrDefault("ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),
		AnthropicMaxTokens: int64(anthropicMaxTokens),
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaSimulationTopic == "" {
			return nil, errors.New("KAFKA_SIMULATION_TOPIC is required when KAFKA_ENABLED is true")
		}
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// AssistantEnabled reports whether an LLM backs the assistant.
func (c *Config) AssistantEnabled() bool {
	return c.AnthropicAPIKey != ""
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
