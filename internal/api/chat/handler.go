package chat

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/matheusqueiroz92/trekmind/app/observability/metrics"
	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

type answerResponse struct {
	Answer string `json:"answer"`
}

// AnswerTravelQuestion handles POST /chat
func (h *Handler) AnswerTravelQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "AnswerTravelQuestion")
	defer span.End()

	l := h.logger.With(slog.String("handler", "AnswerTravelQuestion"))
	start := time.Now()
	m := metrics.Get()
	m.ChatRequestsTotal.Add(ctx, 1)

	var req types.AnswerTravelQuestionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid chat request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.service.AnswerTravelQuestion(ctx, req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, types.ErrValidation) {
			span.SetStatus(codes.Error, "Validation failed")
			api.ErrorResponse(w, r, http.StatusBadRequest, "message is required")
			return
		}
		l.ErrorContext(ctx, "Failed to answer travel question", slog.Any("error", err))
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to answer question")
		return
	}

	m.ChatDurationSeconds.Record(ctx, time.Since(start).Seconds())
	span.SetStatus(codes.Ok, "Answer returned")
	api.WriteJSONResponse(w, r, http.StatusOK, answerResponse{Answer: answer})
}
