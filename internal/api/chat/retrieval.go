package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/api/place"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

var _ api.RetrievalService = (*RetrievalServiceImpl)(nil)

const (
	retrievalRadiusKm = 15

	placesHeader  = "Places found:"
	wikiHeader    = "Wikipedia:"
	emptySentinel = "No relevant places or Wikipedia articles found for this query."
)

// RetrievalServiceImpl composes a place lookup and an encyclopedia lookup
// into the single context block the answer pipeline consumes.
type RetrievalServiceImpl struct {
	logger *slog.Logger
	places place.Service
	wiki   api.WikiProvider
}

func NewRetrievalServiceImpl(places place.Service, wiki api.WikiProvider, logger *slog.Logger) *RetrievalServiceImpl {
	return &RetrievalServiceImpl{
		logger: logger,
		places: places,
		wiki:   wiki,
	}
}

// GetContext runs both lookups independently (never chained) and joins their
// sections in the fixed places-then-encyclopedia order regardless of which
// finished first. A failing source contributes an empty section; when both
// come back empty the sentinel line is returned so the generator still has
// valid context to "say it doesn't know" from.
func (s *RetrievalServiceImpl) GetContext(ctx context.Context, question string, location *types.Coordinates) (string, error) {
	ctx, span := otel.Tracer("RetrievalService").Start(ctx, "GetContext", trace.WithAttributes(
		attribute.Bool("location.present", location != nil),
	))
	defer span.End()

	var placeLines, wikiLines []string

	g := new(errgroup.Group)
	g.Go(func() error {
		placeLines = s.lookupPlaces(ctx, question, location)
		return nil
	})
	g.Go(func() error {
		wikiLines = s.lookupWiki(ctx, question, location)
		return nil
	})
	_ = g.Wait()

	parts := make([]string, 0, len(placeLines)+len(wikiLines)+2)
	if len(placeLines) > 0 {
		parts = append(parts, placesHeader)
		parts = append(parts, placeLines...)
	}
	if len(wikiLines) > 0 {
		parts = append(parts, wikiHeader)
		parts = append(parts, wikiLines...)
	}

	if len(parts) == 0 {
		span.SetStatus(codes.Ok, "No evidence found")
		return emptySentinel, nil
	}

	span.SetAttributes(
		attribute.Int("places.lines", len(placeLines)),
		attribute.Int("wikipedia.lines", len(wikiLines)),
	)
	span.SetStatus(codes.Ok, "Context assembled")
	return strings.Join(parts, "\n"), nil
}

func (s *RetrievalServiceImpl) lookupPlaces(ctx context.Context, question string, location *types.Coordinates) []string {
	var (
		list []types.PlaceDTO
		err  error
	)
	if location != nil {
		list, err = s.places.GetNearbyPlaces(ctx, types.NearbyPlacesRequest{
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
			RadiusKm:  retrievalRadiusKm,
		})
	} else {
		list, err = s.places.SearchPlaces(ctx, types.SearchPlacesRequest{Query: question})
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Place lookup failed during retrieval", slog.Any("error", err))
		return nil
	}

	lines := make([]string, 0, len(list))
	for _, p := range list {
		description := p.Description
		if description == "" {
			description = "No description"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s at %s, %s",
			p.Name, p.Category, description, formatCoord(p.Latitude), formatCoord(p.Longitude)))
	}
	return lines
}

func (s *RetrievalServiceImpl) lookupWiki(ctx context.Context, question string, location *types.Coordinates) []string {
	var (
		list []types.WikiSearchResult
		err  error
	)
	if location != nil {
		list, err = s.wiki.SearchNearby(ctx, location.Latitude, location.Longitude, retrievalRadiusKm, "")
	} else {
		term := strings.TrimSpace(strings.ReplaceAll(question, "?", ""))
		list, err = s.wiki.Search(ctx, term, "")
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Encyclopedia lookup failed during retrieval", slog.Any("error", err))
		return nil
	}

	lines := make([]string, 0, len(list))
	for _, r := range list {
		body := r.Extract
		if body == "" {
			body = r.Description
		}
		lines = append(lines, fmt.Sprintf("- %s: %s %s", r.Title, body, r.URL))
	}
	return lines
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
