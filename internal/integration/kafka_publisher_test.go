//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/urbanshade-service/internal/adapter/kafka"
	"github.com/couchcryptid/urbanshade-service/internal/cache"
	"github.com/couchcryptid/urbanshade-service/internal/config"
	"github.com/couchcryptid/urbanshade-service/internal/domain"
	"github.com/couchcryptid/urbanshade-service/internal/observability"
	"github.com/couchcryptid/urbanshade-service/internal/planner"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSimulationTopic = "test-simulations"

// publishedMessage holds a deserialized message read from the simulation topic.
type publishedMessage struct {
	Record  domain.SimulationRecord
	Key     string
	Headers map[string]string
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from simulation topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var record domain.SimulationRecord
	require.NoError(t, json.Unmarshal(msg.Value, &record), "unmarshal simulation record")

	return publishedMessage{Record: record, Key: string(msg.Key), Headers: headers}
}

// TestPlannerPublishesSimulations runs simulations through the planner with
// the Kafka writer attached and reads the records back from the topic.
func TestPlannerPublishesSimulations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSimulationTopic)

	cfg := &config.Config{
		KafkaBrokers:         []string{broker},
		KafkaSimulationTopic: testSimulationTopic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := planner.New(
		planner.Options{Width: 40, Height: 40, Seed: 3},
		cache.New[string, domain.HeatGrid](8),
		writer,
		nil,
		discardLogger(),
		observability.NewMetricsForTesting(),
	)

	plans := map[string][]domain.Intervention{
		"downtown": {{Type: domain.InterventionTrees, X: 20, Y: 20}},
		"midtown":  {{Type: domain.InterventionWater, X: 10, Y: 30}, {Type: "bogus", X: 1, Y: 1}},
	}
	want := make(map[string]domain.SimulationRecord, len(plans))
	for loc, plan := range plans {
		res, err := p.Simulate(ctx, planner.SimulationRequest{Location: loc, Interventions: plan})
		require.NoError(t, err)
		want[res.Record.ID] = res.Record
	}

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSimulationTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	for range len(plans) {
		pm := readPublished(ctx, t, consumer)

		expected, ok := want[pm.Key]
		require.True(t, ok, "unexpected record key %q", pm.Key)
		assert.Equal(t, expected.ID, pm.Record.ID)
		assert.Equal(t, expected.Location, pm.Headers["location"])
		wantStats := expected.Stats
		wantStats.Skipped = 0 // not serialized; carried by the record's own field
		assert.Equal(t, wantStats, pm.Record.Stats)
		assert.Equal(t, expected.Skipped, pm.Record.Skipped)
		assert.Equal(t, 1600, pm.Record.PointCount)

		_, err := time.Parse(time.RFC3339, pm.Headers["simulated_at"])
		assert.NoError(t, err, "invalid simulated_at format")
	}
}
