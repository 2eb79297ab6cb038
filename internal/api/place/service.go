package place

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/domain"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for place operations.
type Service interface {
	ResolvePlace(ctx context.Context, query string) (*types.ResolvePlaceResult, error)
	SearchPlaces(ctx context.Context, req types.SearchPlacesRequest) ([]types.PlaceDTO, error)
	GetNearbyPlaces(ctx context.Context, req types.NearbyPlacesRequest) ([]types.PlaceDTO, error)
	GetPlaceDetails(ctx context.Context, title, lang string) (*types.WikiPageSummary, error)
	SearchPlacesByCategory(ctx context.Context, req types.SearchPlacesByCategoryRequest) (*types.PlacesByCategoryResult, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	repo       Repository
	geocoder   api.GeocodingService
	wiki       api.WikiProvider
	categories api.PlacesByCategoryProvider
}

func NewServiceImpl(repo Repository, geocoder api.GeocodingService, wiki api.WikiProvider, categories api.PlacesByCategoryProvider, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repo:       repo,
		geocoder:   geocoder,
		wiki:       wiki,
		categories: categories,
	}
}

// ResolvePlace turns free text into a canonical name plus coordinates. A nil
// result means the geocoder found nothing, which is not an error.
func (s *ServiceImpl) ResolvePlace(ctx context.Context, query string) (*types.ResolvePlaceResult, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "ResolvePlace")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	result, err := s.geocoder.GetCoordinatesFromAddress(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "Geocoding failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to resolve place: %w", err)
	}
	if result == nil {
		span.SetStatus(codes.Ok, "No match")
		return nil, nil
	}

	name := result.FormattedAddress
	if name == "" {
		name = query
	}
	span.SetStatus(codes.Ok, "Place resolved")
	return &types.ResolvePlaceResult{
		Name:      name,
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
	}, nil
}

// SearchPlaces runs a free-text place search, resolving the address hints to
// a location bias first when coordinates were not given. A failed geocoding
// lookup degrades to an empty result instead of an error.
func (s *ServiceImpl) SearchPlaces(ctx context.Context, req types.SearchPlacesRequest) ([]types.PlaceDTO, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "SearchPlaces", trace.WithAttributes(
		attribute.String("query", req.Query),
	))
	defer span.End()

	var location *domain.Location
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		loc, err := domain.LocationFromCoordinates(*req.Latitude, *req.Longitude, 0)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		location = &loc

	case req.Address != "" || req.City != "" || req.Country != "":
		joined := joinAddressParts(req.Address, req.City, req.Country)
		coords, err := s.geocoder.GetCoordinatesFromAddress(ctx, joined)
		if err != nil || coords == nil {
			if err != nil {
				s.logger.WarnContext(ctx, "Geocoding failed during biased search, returning empty result",
					slog.String("address", joined), slog.Any("error", err))
			}
			span.SetStatus(codes.Ok, "No location resolved for address bias")
			return []types.PlaceDTO{}, nil
		}
		loc, err := domain.LocationFromCoordinates(coords.Latitude, coords.Longitude, 0)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		location = &loc
	}

	places, err := s.repo.SearchByQuery(ctx, req.Query, location, req.Lang)
	if err != nil {
		s.logger.ErrorContext(ctx, "Place search failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("places.count", len(places)))
	span.SetStatus(codes.Ok, "Places found")
	return toPlaceDTOs(places), nil
}

// GetNearbyPlaces delegates to the repository's nearby operation. The
// category is a hint the backing provider may only honour approximately.
func (s *ServiceImpl) GetNearbyPlaces(ctx context.Context, req types.NearbyPlacesRequest) ([]types.PlaceDTO, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "GetNearbyPlaces", trace.WithAttributes(
		attribute.Float64("latitude", req.Latitude),
		attribute.Float64("longitude", req.Longitude),
		attribute.Float64("radius_km", req.RadiusKm),
	))
	defer span.End()

	places, err := s.repo.FindNearby(ctx, req.Latitude, req.Longitude, req.RadiusKm, req.Category, req.Lang)
	if err != nil {
		s.logger.ErrorContext(ctx, "Nearby place lookup failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("places.count", len(places)))
	span.SetStatus(codes.Ok, "Nearby places found")
	return toPlaceDTOs(places), nil
}

func joinAddressParts(parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, ", ")
}

func toPlaceDTOs(places []*domain.Place) []types.PlaceDTO {
	dtos := make([]types.PlaceDTO, 0, len(places))
	for _, p := range places {
		dtos = append(dtos, toPlaceDTO(p))
	}
	return dtos
}

// toPlaceDTO flattens a domain Place to the boundary shape: category and
// address become strings, coordinates become bare floats.
func toPlaceDTO(p *domain.Place) types.PlaceDTO {
	dto := types.PlaceDTO{
		ID:             p.ID(),
		Name:           p.Name(),
		Description:    p.Description(),
		Category:       p.Category().Value(),
		Latitude:       p.Coordinates().Latitude(),
		Longitude:      p.Coordinates().Longitude(),
		Source:         string(p.Source()),
		URL:            p.URL(),
		ImageURL:       p.ImageURL(),
		WikipediaTitle: p.WikipediaTitle(),
		CreatedAt:      p.CreatedAt(),
	}
	if addr, ok := p.Address(); ok {
		dto.Address = addr.Value()
	}
	return dto
}
