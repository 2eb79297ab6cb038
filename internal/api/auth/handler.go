package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/domain"
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

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Register")
	defer span.End()

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Register(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login")
	defer span.End()

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Login(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.DomainError
	switch {
	case errors.Is(err, ErrConflict):
		api.ErrorResponse(w, r, http.StatusConflict, "user already exists")
	case errors.Is(err, ErrUnauthenticated):
		api.ErrorResponse(w, r, http.StatusUnauthorized, "invalid email or password")
	case errors.As(err, &domainErr):
		api.ErrorResponse(w, r, http.StatusBadRequest, domainErr.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Auth request failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error")
	}
}
