package place

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matheusqueiroz92/trekmind/internal/domain"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindNearby(ctx context.Context, latitude, longitude, radiusKm float64, category, lang string) ([]*domain.Place, error) {
	args := m.Called(ctx, latitude, longitude, radiusKm, category, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Place), args.Error(1)
}

func (m *MockRepository) SearchByQuery(ctx context.Context, query string, location *domain.Location, lang string) ([]*domain.Place, error) {
	args := m.Called(ctx, query, location, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Place), args.Error(1)
}

// MockGeocodingService is a mock implementation of api.GeocodingService
type MockGeocodingService struct {
	mock.Mock
}

func (m *MockGeocodingService) GetCoordinatesFromAddress(ctx context.Context, address string) (*types.GeocodingResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeocodingResult), args.Error(1)
}

// MockWikiProvider is a mock implementation of api.WikiProvider
type MockWikiProvider struct {
	mock.Mock
}

func (m *MockWikiProvider) Search(ctx context.Context, term, lang string) ([]types.WikiSearchResult, error) {
	args := m.Called(ctx, term, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.WikiSearchResult), args.Error(1)
}

func (m *MockWikiProvider) SearchNearby(ctx context.Context, latitude, longitude, radiusKm float64, lang string) ([]types.WikiSearchResult, error) {
	args := m.Called(ctx, latitude, longitude, radiusKm, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.WikiSearchResult), args.Error(1)
}

func (m *MockWikiProvider) GetPageSummary(ctx context.Context, title, lang string) (*types.WikiPageSummary, error) {
	args := m.Called(ctx, title, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WikiPageSummary), args.Error(1)
}

// MockPlacesByCategoryProvider is a mock implementation of api.PlacesByCategoryProvider
type MockPlacesByCategoryProvider struct {
	mock.Mock
}

func (m *MockPlacesByCategoryProvider) SearchByCategory(ctx context.Context, req types.SearchByCategoryRequest) ([]types.PlaceDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PlaceDTO), args.Error(1)
}

type serviceMocks struct {
	repo       *MockRepository
	geocoder   *MockGeocodingService
	wiki       *MockWikiProvider
	categories *MockPlacesByCategoryProvider
}

func newTestService() (*ServiceImpl, *serviceMocks) {
	m := &serviceMocks{
		repo:       new(MockRepository),
		geocoder:   new(MockGeocodingService),
		wiki:       new(MockWikiProvider),
		categories: new(MockPlacesByCategoryProvider),
	}
	service := NewServiceImpl(m.repo, m.geocoder, m.wiki, m.categories, slog.Default())
	return service, m
}

func testPlace(t *testing.T, name string) *domain.Place {
	t.Helper()
	p, err := domain.ReconstitutePlace(domain.PlaceParams{
		ID:        "wiki-" + name + "-0",
		Name:      name,
		Category:  "other",
		Latitude:  38.7223,
		Longitude: -9.1393,
		Source:    domain.SourceWikipedia,
	}, time.Now())
	require.NoError(t, err)
	return p
}

func TestResolvePlace(t *testing.T) {
	ctx := context.Background()

	t.Run("TrimsQueryBeforeGeocoding", func(t *testing.T) {
		service, m := newTestService()
		m.geocoder.On("GetCoordinatesFromAddress", mock.Anything, "Lisboa").Return(&types.GeocodingResult{
			Latitude:         38.7223,
			Longitude:        -9.1393,
			FormattedAddress: "Lisboa, Portugal",
		}, nil).Once()

		result, err := service.ResolvePlace(ctx, "  Lisboa  ")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Lisboa, Portugal", result.Name)
		assert.Equal(t, 38.7223, result.Latitude)
		m.geocoder.AssertExpectations(t)
	})

	t.Run("EmptyQueryShortCircuits", func(t *testing.T) {
		service, m := newTestService()

		result, err := service.ResolvePlace(ctx, "   ")
		require.NoError(t, err)
		assert.Nil(t, result)
		m.geocoder.AssertNotCalled(t, "GetCoordinatesFromAddress")
	})

	t.Run("NoMatchIsNilNotError", func(t *testing.T) {
		service, m := newTestService()
		m.geocoder.On("GetCoordinatesFromAddress", mock.Anything, "xyzzy").Return(nil, nil).Once()

		result, err := service.ResolvePlace(ctx, "xyzzy")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("QueryUsedWhenFormattedAddressMissing", func(t *testing.T) {
		service, m := newTestService()
		m.geocoder.On("GetCoordinatesFromAddress", mock.Anything, "Sintra").Return(&types.GeocodingResult{
			Latitude:  38.8,
			Longitude: -9.38,
		}, nil).Once()

		result, err := service.ResolvePlace(ctx, "Sintra")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Sintra", result.Name)
	})

	t.Run("GeocoderErrorPropagates", func(t *testing.T) {
		service, m := newTestService()
		m.geocoder.On("GetCoordinatesFromAddress", mock.Anything, "Lisboa").Return(nil, errors.New("upstream down")).Once()

		_, err := service.ResolvePlace(ctx, "Lisboa")
		assert.Error(t, err)
	})
}

func TestSearchPlaces(t *testing.T) {
	ctx := context.Background()

	t.Run("CoordinatesSkipGeocoding", func(t *testing.T) {
		service, m := newTestService()
		lat, lng := 38.7223, -9.1393
		m.repo.On("SearchByQuery", mock.Anything, "miradouros", mock.AnythingOfType("*domain.Location"), "").
			Return([]*domain.Place{testPlace(t, "Miradouro da Graça")}, nil).Once()

		places, err := service.SearchPlaces(ctx, types.SearchPlacesRequest{
			Query:     "miradouros",
			Latitude:  &lat,
			Longitude: &lng,
		})
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Miradouro da Graça", places[0].Name)
		m.geocoder.AssertNotCalled(t, "GetCoordinatesFromAddress")
		m.repo.AssertExpectations(t)
	})

	t.Run("AddressHintsAreJoinedAndGeocoded", func(t *testing.T) {
		service, m := newTestService()
		m.geocoder.On("GetCoordinatesFromAddress", mock.Anything, "Rua Augusta, Lisboa, Portugal").
			Return(&types.GeocodingResult{Latitude: 38.71, Longitude: -9.14}, nil).Once()
		m.repo.On("SearchByQuery", mock.Anything, "cafés", mock.AnythingOfType("*domain.Location"), "").
			Return([]*domain.Place{}, nil).Once()

		_, err := service.SearchPlaces(ctx, types.SearchPlacesRequest{
			Query:   "cafés",
			Address: "Rua Augusta",
			City:    "Lisboa",
			Country: "Portugal",
		})
		require.NoError(t, err)
		m.geocoder.AssertExpectations(t)
	})

	t.Run("GeocodingFailureDegradesToEmptyList", func(t *testing.T) {
		service, m := newTestService()
		m.geocoder.On("GetCoordinatesFromAddress", mock.Anything, "Atlantis").
			Return(nil, errors.New("timeout")).Once()

		places, err := service.SearchPlaces(ctx, types.SearchPlacesRequest{Query: "hotels", City: "Atlantis"})
		require.NoError(t, err)
		assert.Empty(t, places)
		m.repo.AssertNotCalled(t, "SearchByQuery")
	})

	t.Run("GeocodingMissDegradesToEmptyList", func(t *testing.T) {
		service, m := newTestService()
		m.geocoder.On("GetCoordinatesFromAddress", mock.Anything, "Atlantis").Return(nil, nil).Once()

		places, err := service.SearchPlaces(ctx, types.SearchPlacesRequest{Query: "hotels", City: "Atlantis"})
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("NoHintsSearchesUnbiased", func(t *testing.T) {
		service, m := newTestService()
		m.repo.On("SearchByQuery", mock.Anything, "torres", (*domain.Location)(nil), "").
			Return([]*domain.Place{}, nil).Once()

		_, err := service.SearchPlaces(ctx, types.SearchPlacesRequest{Query: "torres"})
		require.NoError(t, err)
		m.geocoder.AssertNotCalled(t, "GetCoordinatesFromAddress")
		m.repo.AssertExpectations(t)
	})
}

func TestGetNearbyPlaces(t *testing.T) {
	ctx := context.Background()

	t.Run("DelegatesToRepository", func(t *testing.T) {
		service, m := newTestService()
		m.repo.On("FindNearby", mock.Anything, 38.7223, -9.1393, 5.0, "museum", "pt").
			Return([]*domain.Place{testPlace(t, "Museu do Azulejo")}, nil).Once()

		places, err := service.GetNearbyPlaces(ctx, types.NearbyPlacesRequest{
			Latitude:  38.7223,
			Longitude: -9.1393,
			RadiusKm:  5,
			Category:  "museum",
			Lang:      "pt",
		})
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Museu do Azulejo", places[0].Name)
		m.repo.AssertExpectations(t)
	})

	t.Run("RepositoryErrorPropagates", func(t *testing.T) {
		service, m := newTestService()
		m.repo.On("FindNearby", mock.Anything, 0.0, 0.0, 0.0, "", "").
			Return(nil, errors.New("provider down")).Once()

		_, err := service.GetNearbyPlaces(ctx, types.NearbyPlacesRequest{})
		assert.Error(t, err)
	})
}
