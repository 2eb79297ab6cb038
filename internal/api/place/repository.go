package place

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/domain"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository unifies "nearby" and "free-text" place lookups over whichever
// provider backs it. The current implementation is encyclopedia-backed, but
// callers never see that.
type Repository interface {
	FindNearby(ctx context.Context, latitude, longitude, radiusKm float64, category, lang string) ([]*domain.Place, error)
	SearchByQuery(ctx context.Context, query string, location *domain.Location, lang string) ([]*domain.Place, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	wiki   api.WikiProvider
}

func NewRepositoryImpl(wiki api.WikiProvider, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		wiki:   wiki,
	}
}

// FindNearby maps geographic encyclopedia hits onto domain Places. The
// category hint is not honoured by this provider; results come back as
// "other". Hits without coordinates inherit the search centre.
func (r *RepositoryImpl) FindNearby(ctx context.Context, latitude, longitude, radiusKm float64, _ /* category */, lang string) ([]*domain.Place, error) {
	results, err := r.wiki.SearchNearby(ctx, latitude, longitude, radiusKm, lang)
	if err != nil {
		r.logger.ErrorContext(ctx, "Nearby encyclopedia search failed", slog.Any("error", err))
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	places := make([]*domain.Place, 0, len(results))
	for i, res := range results {
		lat, lng := latitude, longitude
		if res.Latitude != nil && res.Longitude != nil {
			lat, lng = *res.Latitude, *res.Longitude
		}
		description := res.Description
		if description == "" {
			description = res.Extract
		}
		p, err := domain.ReconstitutePlace(domain.PlaceParams{
			ID:             wikiPlaceID(res.Title, i),
			Name:           res.Title,
			Description:    description,
			Category:       domain.CategoryOther,
			Latitude:       lat,
			Longitude:      lng,
			Source:         domain.SourceWikipedia,
			URL:            res.URL,
			WikipediaTitle: res.Title,
		}, time.Now())
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping unmappable nearby result",
				slog.String("title", res.Title), slog.Any("error", err))
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

// SearchByQuery maps full-text encyclopedia hits onto domain Places. Text
// hits carry no coordinates of their own, so they inherit the location bias
// (or 0,0 when the search is unbiased).
func (r *RepositoryImpl) SearchByQuery(ctx context.Context, query string, location *domain.Location, lang string) ([]*domain.Place, error) {
	results, err := r.wiki.Search(ctx, query, lang)
	if err != nil {
		r.logger.ErrorContext(ctx, "Encyclopedia text search failed", slog.Any("error", err))
		return nil, fmt.Errorf("text search: %w", err)
	}

	var lat, lng float64
	if location != nil {
		if coords, ok := location.Coordinates(); ok {
			lat, lng = coords.Latitude(), coords.Longitude()
		}
	}

	places := make([]*domain.Place, 0, len(results))
	for i, res := range results {
		p, err := domain.ReconstitutePlace(domain.PlaceParams{
			ID:             wikiPlaceID(res.Title, i),
			Name:           res.Title,
			Description:    res.Extract,
			Category:       domain.CategoryOther,
			Latitude:       lat,
			Longitude:      lng,
			Source:         domain.SourceWikipedia,
			URL:            res.URL,
			WikipediaTitle: res.Title,
		}, time.Now())
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping unmappable search result",
				slog.String("title", res.Title), slog.Any("error", err))
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

func wikiPlaceID(title string, index int) string {
	return fmt.Sprintf("wiki-%s-%d", strings.ReplaceAll(title, " ", "-"), index)
}
