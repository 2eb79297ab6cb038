package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for the travel-question pipeline.
type Service interface {
	AnswerTravelQuestion(ctx context.Context, req types.AnswerTravelQuestionRequest) (string, error)
}

const systemPrompt = "You are a helpful travel guide. Use ONLY the context below to answer. " +
	"If the context does not contain relevant information, say so. " +
	"Do not make up places or facts. Be concise and helpful."

type ServiceImpl struct {
	logger    *slog.Logger
	retrieval api.RetrievalService
	llm       api.LLMClient
}

func NewServiceImpl(retrieval api.RetrievalService, llm api.LLMClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		retrieval: retrieval,
		llm:       llm,
	}
}

// AnswerTravelQuestion retrieves grounding context and only then calls the
// generator. There is no path that answers from the model's unguided
// knowledge; even "nothing found" goes through as the retrieval sentinel.
func (s *ServiceImpl) AnswerTravelQuestion(ctx context.Context, req types.AnswerTravelQuestionRequest) (string, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "AnswerTravelQuestion")
	defer span.End()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		err := fmt.Errorf("message is required: %w", types.ErrValidation)
		span.RecordError(err)
		return "", err
	}

	// Location only exists when both coordinates arrived; a lone latitude is
	// treated as "no location", never an error.
	var location *types.Coordinates
	if req.Latitude != nil && req.Longitude != nil {
		location = &types.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
		span.SetAttributes(
			attribute.Float64("latitude", location.Latitude),
			attribute.Float64("longitude", location.Longitude),
		)
	}

	retrieved, err := s.retrieval.GetContext(ctx, message, location)
	if err != nil {
		s.logger.ErrorContext(ctx, "Context retrieval failed", slog.Any("error", err))
		span.RecordError(err)
		return "", fmt.Errorf("failed to retrieve context: %w", err)
	}

	messages := []types.ChatMessage{
		{Role: types.RoleSystem, Content: systemPrompt},
		{Role: types.RoleUser, Content: fmt.Sprintf("Context:\n%s\n\nUser question: %s", retrieved, message)},
	}

	answer, err := s.llm.Generate(ctx, messages, retrieved)
	if err != nil {
		s.logger.ErrorContext(ctx, "Answer generation failed", slog.Any("error", err))
		span.RecordError(err)
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	span.SetAttributes(attribute.Int("answer.length", len(answer)))
	span.SetStatus(codes.Ok, "Answer generated")
	return answer, nil
}
