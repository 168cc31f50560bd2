// Package narrative turns a decision record into a short executive summary
// using an OpenAI-compatible chat model. Strictly optional: no API key
// means no narrative, and API failures degrade to a notice.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/rshade/restorecost/internal/history"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4.1-mini"

const systemPrompt = "You are writing for a FinOps and cloud reliability audience.\n" +
	"You are given JSON with recovery metrics for one restore decision, and sometimes a comparison.\n" +
	"Write 3-4 sentences in a calm, practitioner voice. Be specific about RTO hit or miss, total recovery time, " +
	"monthly storage tradeoffs, and the rough order of magnitude of downtime risk.\n" +
	"Do not use buzzwords, do not talk about yourself, and do not pad with filler. " +
	"Sound like a senior engineer or FinOps lead explaining the trade to a CFO and an SRE in the same room."

// ErrUnavailable is returned when no API key was configured.
var ErrUnavailable = errors.New("narrative generation unavailable: no API key configured")

// chatClient is the slice of the OpenAI client the generator needs.
// Narrowed for testability.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator produces decision narratives.
type Generator struct {
	client chatClient
	model  string
	logger zerolog.Logger
}

// New returns a Generator. With an empty apiKey the generator is inert and
// Generate returns ErrUnavailable. An empty model selects DefaultModel.
func New(apiKey, model string, logger zerolog.Logger) *Generator {
	g := &Generator{model: model, logger: logger}
	if g.model == "" {
		g.model = DefaultModel
	}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

// Available reports whether the generator is configured to make API calls.
func (g *Generator) Available() bool {
	return g.client != nil
}

// Generate asks the model for a narrative over the base decision and its
// optional comparison.
func (g *Generator) Generate(ctx context.Context, base history.Record, compare *history.CompareRecord) (string, error) {
	if g.client == nil {
		return "", ErrUnavailable
	}

	payload := map[string]any{"base": base}
	if compare != nil {
		payload["compare"] = compare
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode narrative payload: %w", err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   300,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(encoded)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	g.logger.Debug().Str("model", g.model).Int("choices", len(resp.Choices)).Msg("narrative generated")
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
