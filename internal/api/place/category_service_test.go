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

func matchCategory(category string) interface{} {
	return mock.MatchedBy(func(req types.SearchByCategoryRequest) bool {
		return req.Category == category
	})
}

func TestSearchPlacesByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("FansOutPerRequestedCategory", func(t *testing.T) {
		service, m := newTestService()
		m.categories.On("SearchByCategory", mock.Anything, matchCategory("restaurant")).
			Return([]types.PlaceDTO{{ID: "r1", Name: "Cervejaria Ramiro"}}, nil).Once()
		m.categories.On("SearchByCategory", mock.Anything, matchCategory("lodging")).
			Return([]types.PlaceDTO{{ID: "l1", Name: "Hotel Avenida"}}, nil).Once()
		m.categories.On("SearchByCategory", mock.Anything, matchCategory("bar")).
			Return([]types.PlaceDTO{}, nil).Once()

		result, err := service.SearchPlacesByCategory(ctx, types.SearchPlacesByCategoryRequest{
			Query:      "Lisboa",
			Categories: []string{"restaurant", "lodging", "bar"},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		require.Len(t, result.Restaurant, 1)
		assert.Equal(t, "Cervejaria Ramiro", result.Restaurant[0].Name)
		require.Len(t, result.Lodging, 1)
		assert.Empty(t, result.Bar)
		// Unqueried category still present as empty list.
		assert.NotNil(t, result.TouristAttraction)
		assert.Empty(t, result.TouristAttraction)
		m.categories.AssertNumberOfCalls(t, "SearchByCategory", 3)
	})

	t.Run("EmptyRequestQueriesAllDefaults", func(t *testing.T) {
		service, m := newTestService()
		for _, c := range types.SearchCategories {
			m.categories.On("SearchByCategory", mock.Anything, matchCategory(c)).
				Return([]types.PlaceDTO{}, nil).Once()
		}

		_, err := service.SearchPlacesByCategory(ctx, types.SearchPlacesByCategoryRequest{Query: "Porto"})
		require.NoError(t, err)
		m.categories.AssertNumberOfCalls(t, "SearchByCategory", 4)
	})

	t.Run("AllInvalidCategoriesFallBackToDefaults", func(t *testing.T) {
		service, m := newTestService()
		for _, c := range types.SearchCategories {
			m.categories.On("SearchByCategory", mock.Anything, matchCategory(c)).
				Return([]types.PlaceDTO{}, nil).Once()
		}

		_, err := service.SearchPlacesByCategory(ctx, types.SearchPlacesByCategoryRequest{
			Query:      "Porto",
			Categories: []string{"casino", "zoo"},
		})
		require.NoError(t, err)
		m.categories.AssertNumberOfCalls(t, "SearchByCategory", 4)
	})

	t.Run("DuplicatesAndUnknownsFiltered", func(t *testing.T) {
		service, m := newTestService()
		m.categories.On("SearchByCategory", mock.Anything, matchCategory("bar")).
			Return([]types.PlaceDTO{}, nil).Once()

		_, err := service.SearchPlacesByCategory(ctx, types.SearchPlacesByCategoryRequest{
			Query:      "Faro",
			Categories: []string{"bar", "casino", "bar"},
		})
		require.NoError(t, err)
		m.categories.AssertNumberOfCalls(t, "SearchByCategory", 1)
	})

	t.Run("FailingCategoryAbsorbedAsEmpty", func(t *testing.T) {
		service, m := newTestService()
		m.categories.On("SearchByCategory", mock.Anything, matchCategory("restaurant")).
			Return(nil, errors.New("quota exceeded")).Once()
		m.categories.On("SearchByCategory", mock.Anything, matchCategory("lodging")).
			Return([]types.PlaceDTO{{ID: "l1", Name: "Pousada"}}, nil).Once()

		result, err := service.SearchPlacesByCategory(ctx, types.SearchPlacesByCategoryRequest{
			Query:      "Coimbra",
			Categories: []string{"restaurant", "lodging"},
		})
		require.NoError(t, err)
		assert.Empty(t, result.Restaurant)
		require.Len(t, result.Lodging, 1)
	})
}
