package place

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matheusqueiroz92/trekmind/internal/types"
)

func TestGetPlaceDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("FoundInDefaultLanguage", func(t *testing.T) {
		service, m := newTestService()
		m.wiki.On("GetPageSummary", mock.Anything, "Torre de Belém", "pt").
			Return(&types.WikiPageSummary{Title: "Torre de Belém", Lang: "pt"}, nil).Once()

		summary, err := service.GetPlaceDetails(ctx, "Torre de Belém", "")
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, "pt", summary.Lang)
		m.wiki.AssertExpectations(t)
		m.wiki.AssertNumberOfCalls(t, "GetPageSummary", 1)
	})

	t.Run("CallerContextFlowsToProvider", func(t *testing.T) {
		type ctxKey struct{}
		service, m := newTestService()
		// Tracing wraps the context before it reaches the provider, so the
		// expectation must match on derivation, not identity.
		m.wiki.On("GetPageSummary", mock.MatchedBy(func(c context.Context) bool {
			return c.Value(ctxKey{}) == "marker"
		}), "Torre de Belém", "pt").
			Return(&types.WikiPageSummary{Title: "Torre de Belém", Lang: "pt"}, nil).Once()

		_, err := service.GetPlaceDetails(context.WithValue(ctx, ctxKey{}, "marker"), "Torre de Belém", "")
		require.NoError(t, err)
		m.wiki.AssertExpectations(t)
	})

	t.Run("FallsBackToEnglishExactlyOnce", func(t *testing.T) {
		service, m := newTestService()
		m.wiki.On("GetPageSummary", mock.Anything, "Belem Tower", "pt").Return(nil, nil).Once()
		m.wiki.On("GetPageSummary", mock.Anything, "Belem Tower", "en").
			Return(&types.WikiPageSummary{Title: "Belém Tower"}, nil).Once()

		summary, err := service.GetPlaceDetails(ctx, "Belem Tower", "")
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, "en", summary.Lang)
		m.wiki.AssertExpectations(t)
		m.wiki.AssertNumberOfCalls(t, "GetPageSummary", 2)
	})

	t.Run("FallbackForcesEnglishLangMarker", func(t *testing.T) {
		service, m := newTestService()
		m.wiki.On("GetPageSummary", mock.Anything, "Belem Tower", "pt").Return(nil, nil).Once()
		// Provider reports a different serving language; the marker still says en.
		m.wiki.On("GetPageSummary", mock.Anything, "Belem Tower", "en").
			Return(&types.WikiPageSummary{Title: "Belém Tower", Lang: "pt"}, nil).Once()

		summary, err := service.GetPlaceDetails(ctx, "Belem Tower", "")
		require.NoError(t, err)
		assert.Equal(t, "en", summary.Lang)
	})

	t.Run("MissInBothLanguagesIsNil", func(t *testing.T) {
		service, m := newTestService()
		m.wiki.On("GetPageSummary", mock.Anything, "Nowhere", "pt").Return(nil, nil).Once()
		m.wiki.On("GetPageSummary", mock.Anything, "Nowhere", "en").Return(nil, nil).Once()

		summary, err := service.GetPlaceDetails(ctx, "Nowhere", "")
		require.NoError(t, err)
		assert.Nil(t, summary)
		m.wiki.AssertNumberOfCalls(t, "GetPageSummary", 2)
	})

	t.Run("NonDefaultLanguageNeverRetries", func(t *testing.T) {
		service, m := newTestService()
		m.wiki.On("GetPageSummary", mock.Anything, "Alhambra", "es").Return(nil, nil).Once()

		summary, err := service.GetPlaceDetails(ctx, "Alhambra", "es")
		require.NoError(t, err)
		assert.Nil(t, summary)
		m.wiki.AssertNumberOfCalls(t, "GetPageSummary", 1)
	})

	t.Run("EmptyTitleSkipsProvider", func(t *testing.T) {
		service, m := newTestService()

		summary, err := service.GetPlaceDetails(ctx, "   ", "")
		require.NoError(t, err)
		assert.Nil(t, summary)
		m.wiki.AssertNotCalled(t, "GetPageSummary")
	})

	t.Run("ProviderErrorPropagates", func(t *testing.T) {
		service, m := newTestService()
		m.wiki.On("GetPageSummary", mock.Anything, "Torre de Belém", "pt").
			Return(nil, errors.New("rest api down")).Once()

		_, err := service.GetPlaceDetails(ctx, "Torre de Belém", "")
		assert.Error(t, err)
	})
}
