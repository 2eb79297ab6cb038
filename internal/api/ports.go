package api

import (
	"context"

	"github.com/matheusqueiroz92/trekmind/internal/types"
)

// Port interfaces for the external data sources the use cases orchestrate.
// Concrete HTTP implementations live under internal/gateway; tests swap in
// mocks.

// GeocodingService resolves free-text addresses to coordinates. A nil result
// with a nil error means "no match", which is not a failure.
type GeocodingService interface {
	GetCoordinatesFromAddress(ctx context.Context, address string) (*types.GeocodingResult, error)
}

// WikiProvider exposes the three encyclopedia operations the use cases need:
// full-text search, geographic search, and page-summary lookup. An empty lang
// means the provider's default language.
type WikiProvider interface {
	Search(ctx context.Context, term, lang string) ([]types.WikiSearchResult, error)
	SearchNearby(ctx context.Context, latitude, longitude, radiusKm float64, lang string) ([]types.WikiSearchResult, error)
	GetPageSummary(ctx context.Context, title, lang string) (*types.WikiPageSummary, error)
}

// PlacesByCategoryProvider searches a commercial places index scoped to a
// single category. Implementations absorb missing credentials and upstream
// failures into an empty list so one category cannot sink an aggregation.
type PlacesByCategoryProvider interface {
	SearchByCategory(ctx context.Context, req types.SearchByCategoryRequest) ([]types.PlaceDTO, error)
}

// LLMClient is the black-box generation capability: messages in, text out.
type LLMClient interface {
	Generate(ctx context.Context, messages []types.ChatMessage, contextText string) (string, error)
}

// RetrievalService assembles retrieved evidence into a single context block
// for the answer pipeline.
type RetrievalService interface {
	GetContext(ctx context.Context, question string, location *types.Coordinates) (string, error)
}
