package generativeai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

// Ensure implementation satisfies the generation port
var _ api.LLMClient = (*Client)(nil)

const defaultModel = "gemini-2.0-flash"

const defaultTemperature float32 = 0.5

// Client wraps the Gemini SDK behind the generation port the chat use case
// consumes.
type Client struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewClient builds a Gemini-backed client. An empty model falls back to the
// default flash model.
func NewClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{
		logger: logger,
		client: client,
		model:  model,
	}, nil
}

// Generate sends the conversation to the model and returns the reply text.
// System messages become system instructions, the remaining turns are flattened
// into a single prompt in order. contextText is already embedded in the user
// message by the caller, so it is logged here only for traceability.
func (c *Client) Generate(ctx context.Context, messages []types.ChatMessage, contextText string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAIClient").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.messages", len(messages)),
	))
	defer span.End()

	var systemParts []string
	var promptParts []string
	for _, msg := range messages {
		if msg.Role == types.RoleSystem {
			systemParts = append(systemParts, msg.Content)
			continue
		}
		promptParts = append(promptParts, msg.Content)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](defaultTemperature),
	}
	if len(systemParts) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(systemParts, "\n")}},
		}
	}

	prompt := strings.Join(promptParts, "\n")
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		c.logger.ErrorContext(ctx, "Gemini generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := result.Text()
	span.SetAttributes(attribute.Int("llm.response_chars", len(text)))
	c.logger.DebugContext(ctx, "Gemini generation completed",
		slog.Int("context_chars", len(contextText)),
		slog.Int("response_chars", len(text)))
	return text, nil
}
