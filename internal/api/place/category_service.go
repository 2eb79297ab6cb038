package place

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/matheusqueiroz92/trekmind/internal/types"
)

// SearchPlacesByCategory fans out one provider call per requested category
// and gathers them into the fixed-shape result. Unknown categories are
// filtered out first; an empty surviving set falls back to the full default
// set so the result never covers zero categories. A failing category is
// absorbed into an empty list and never aborts its siblings.
func (s *ServiceImpl) SearchPlacesByCategory(ctx context.Context, req types.SearchPlacesByCategoryRequest) (*types.PlacesByCategoryResult, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "SearchPlacesByCategory", trace.WithAttributes(
		attribute.Int("categories.requested", len(req.Categories)),
	))
	defer span.End()

	categories := filterKnownCategories(req.Categories)
	if len(categories) == 0 {
		categories = types.SearchCategories
	}
	span.SetAttributes(attribute.Int("categories.queried", len(categories)))

	results := make([][]types.PlaceDTO, len(categories))
	g := new(errgroup.Group)
	for i, category := range categories {
		g.Go(func() error {
			list, err := s.categories.SearchByCategory(ctx, types.SearchByCategoryRequest{
				Query:     req.Query,
				Latitude:  req.Latitude,
				Longitude: req.Longitude,
				Category:  category,
				Lang:      req.Lang,
			})
			if err != nil {
				// One failing category yields an empty list, not a failed aggregation.
				s.logger.WarnContext(ctx, "Category search failed",
					slog.String("category", category), slog.Any("error", err))
				return nil
			}
			results[i] = list
			return nil
		})
	}
	_ = g.Wait()

	out := types.NewPlacesByCategoryResult()
	for i, category := range categories {
		out.Set(category, results[i])
	}

	span.SetStatus(codes.Ok, "Category aggregation complete")
	return out, nil
}

// filterKnownCategories keeps the first occurrence of each category that is
// part of the closed search set, preserving request order.
func filterKnownCategories(requested []string) []string {
	known := make(map[string]struct{}, len(types.SearchCategories))
	for _, c := range types.SearchCategories {
		known[c] = struct{}{}
	}

	seen := make(map[string]struct{}, len(requested))
	out := make([]string, 0, len(requested))
	for _, c := range requested {
		if _, ok := known[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
