package chat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matheusqueiroz92/trekmind/app/observability/metrics"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	m.Run()
}

type mockService struct {
	mock.Mock
}

func (m *mockService) AnswerTravelQuestion(ctx context.Context, req types.AnswerTravelQuestionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestAnswerTravelQuestionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(mockService)
		mockService.On("AnswerTravelQuestion", mock.Anything, types.AnswerTravelQuestionRequest{
			Message: "O que visitar em Lisboa?",
		}).Return("Visite a Torre de Belém.", nil)

		handler := NewHandler(mockService, slog.Default())
		req := httptest.NewRequest(http.MethodPost, "/chat",
			strings.NewReader(`{"message":"O que visitar em Lisboa?"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.AnswerTravelQuestion(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"answer":"Visite a Torre de Belém."}`, rec.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		mockService := new(mockService)
		handler := NewHandler(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.AnswerTravelQuestion(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "AnswerTravelQuestion")
	})

	t.Run("ValidationErrorIs400", func(t *testing.T) {
		mockService := new(mockService)
		mockService.On("AnswerTravelQuestion", mock.Anything, mock.Anything).
			Return("", fmt.Errorf("message must not be empty: %w", types.ErrValidation))

		handler := NewHandler(mockService, slog.Default())
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"  "}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.AnswerTravelQuestion(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "message is required")
	})

	t.Run("ServiceFailureIs500", func(t *testing.T) {
		mockService := new(mockService)
		mockService.On("AnswerTravelQuestion", mock.Anything, mock.Anything).
			Return("", fmt.Errorf("generation failed"))

		handler := NewHandler(mockService, slog.Default())
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"olá"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.AnswerTravelQuestion(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
