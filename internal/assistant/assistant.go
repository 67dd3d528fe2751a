// Package assistant answers planner voice commands and knowledge queries.
//
// Each request is answered from the first source that succeeds: a canned
// command, the configured LLM, then a simulated answer. Callers always get
// an answer.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/couchcryptid/urbanshade-service/internal/observability"
)

// Voice actions understood by the frontend.
const (
	ActionHighlight = "highlight"
	ActionCompare   = "compare"
	ActionRecommend = "recommend"
	ActionNone      = "none"
)

const searchTopK = 5

// Answer sources, used as metric labels.
const (
	sourceCanned    = "canned"
	sourceLLM       = "llm"
	sourceSimulated = "simulated"
)

var errEmptyAnswer = errors.New("llm returned an empty answer")

// Prompt is a single-turn LLM request.
type Prompt struct {
	System string
	User   string
	JSON   bool // ask for a single JSON object
}

// LLM completes prompts.
type LLM interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// VoiceResponse is the structured answer to a voice command.
type VoiceResponse struct {
	Response   string         `json:"response"`
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

// Assistant answers voice commands and knowledge queries.
type Assistant struct {
	llm       LLM
	knowledge KnowledgeSource
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an Assistant. llm may be nil, in which case non-canned requests
// get simulated answers. A nil knowledge source uses StaticKnowledge and a nil
// rng draws a random seed.
func New(llm LLM, knowledge KnowledgeSource, rng *rand.Rand, logger *slog.Logger, metrics *observability.Metrics) *Assistant {
	if knowledge == nil {
		knowledge = StaticKnowledge{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Assistant{
		llm:       llm,
		knowledge: knowledge,
		logger:    logger,
		metrics:   metrics,
		rng:       rng,
	}
}

// Voice answers a spoken planning command.
func (a *Assistant) Voice(ctx context.Context, text string) VoiceResponse {
	lowered := strings.ToLower(text)
	for _, c := range cannedCommands {
		if strings.Contains(lowered, c.phrase) {
			a.count("voice", sourceCanned)
			return c.response
		}
	}

	if a.llm != nil {
		resp, err := a.voiceFromLLM(ctx, text)
		if err == nil {
			a.count("voice", sourceLLM)
			return resp
		}
		a.logger.Warn("llm voice answer failed, using simulated answer", "error", err)
	}

	if ctx.Err() != nil {
		return unavailableVoice
	}
	a.count("voice", sourceSimulated)
	return simulatedVoice[a.pick(len(simulatedVoice))]
}

// Query answers a free-form question from retrieved knowledge.
func (a *Assistant) Query(ctx context.Context, query string) string {
	if a.llm == nil {
		a.count("query", sourceSimulated)
		return simulatedAnswers[a.pick(len(simulatedAnswers))]
	}

	answer, err := a.queryFromLLM(ctx, query)
	if err != nil {
		a.logger.Warn("llm query answer failed, using fallback answer", "error", err)
		a.count("query", sourceSimulated)
		return fallbackAnswers[a.pick(len(fallbackAnswers))]
	}
	a.count("query", sourceLLM)
	return answer
}

func (a *Assistant) voiceFromLLM(ctx context.Context, text string) (VoiceResponse, error) {
	raw, err := a.llm.Complete(ctx, Prompt{System: voiceSystemPrompt, User: text, JSON: true})
	if err != nil {
		return VoiceResponse{}, fmt.Errorf("complete: %w", err)
	}
	return parseVoiceResponse(raw)
}

func (a *Assistant) queryFromLLM(ctx context.Context, query string) (string, error) {
	hits, err := a.knowledge.Search(ctx, query, searchTopK)
	if err != nil {
		return "", fmt.Errorf("search knowledge: %w", err)
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	graph, err := a.knowledge.GraphContext(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("graph context: %w", err)
	}

	answer, err := a.llm.Complete(ctx, Prompt{System: querySystemPrompt, User: buildQueryPrompt(query, graph, hits)})
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errEmptyAnswer
	}
	return answer, nil
}

// parseVoiceResponse decodes an LLM JSON answer, tolerating surrounding prose
// and unknown actions.
func parseVoiceResponse(raw string) (VoiceResponse, error) {
	start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return VoiceResponse{}, fmt.Errorf("no JSON object in answer: %q", truncate(raw, 80))
	}

	var resp VoiceResponse
	if err := json.Unmarshal([]byte(raw[start:end+1]), &resp); err != nil {
		return VoiceResponse{}, fmt.Errorf("decode answer: %w", err)
	}
	if strings.TrimSpace(resp.Response) == "" {
		return VoiceResponse{}, errEmptyAnswer
	}
	switch resp.Action {
	case ActionHighlight, ActionCompare, ActionRecommend, ActionNone:
	default:
		resp.Action = ActionNone
	}
	if resp.Parameters == nil {
		resp.Parameters = map[string]any{}
	}
	return resp, nil
}

func buildQueryPrompt(query string, graph GraphContext, hits []VectorHit) string {
	var b strings.Builder
	b.WriteString("You are an urban planning assistant with access to the following knowledge about urban heat islands:\n\n")
	fmt.Fprintf(&b, "Knowledge Graph Nodes: %s\n\n", strings.Join(graph.Nodes, ", "))
	fmt.Fprintf(&b, "Knowledge Graph Relationships: %s\n\n", strings.Join(graph.Edges, "; "))
	b.WriteString("Similar Cases from Vector Search:\n")
	for _, h := range hits {
		fmt.Fprintf(&b, "- %s (similarity: %.2f)\n", h.Content, h.Score)
	}
	b.WriteString("\nBased on this information, answer the following question about urban heat mitigation:\n\n")
	fmt.Fprintf(&b, "Question: %q\n\n", query)
	b.WriteString("In your response, reference both the knowledge graph relationships and vector similarity results.\n")
	b.WriteString("Emphasize concrete, actionable recommendations for urban heat mitigation.")
	return b.String()
}

func (a *Assistant) pick(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.IntN(n)
}

func (a *Assistant) count(kind, source string) {
	a.metrics.AssistantAnswers.WithLabelValues(kind, source).Inc()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
