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

	"github.com/matheusqueiroz92/trekmind/internal/types"
)

const (
	defaultDetailsLang  = "pt"
	fallbackDetailsLang = "en"
)

// GetPlaceDetails fetches a page summary with the product's language-fallback
// policy: one lookup in the requested language, and when that language is
// "pt" and misses, exactly one retry in "en". The fallback summary keeps
// lang = "en" so callers can tell the content was not served in the language
// they asked for. No other language triggers a retry.
func (s *ServiceImpl) GetPlaceDetails(ctx context.Context, title, lang string) (*types.WikiPageSummary, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "GetPlaceDetails", trace.WithAttributes(
		attribute.String("title", title),
	))
	defer span.End()

	title = strings.TrimSpace(title)
	if title == "" {
		span.SetStatus(codes.Ok, "Empty title")
		return nil, nil
	}

	if lang == "" {
		lang = defaultDetailsLang
	}

	summary, err := s.wiki.GetPageSummary(ctx, title, lang)
	if err != nil {
		s.logger.ErrorContext(ctx, "Page summary lookup failed",
			slog.String("title", title), slog.String("lang", lang), slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get place details: %w", err)
	}
	if summary != nil {
		span.SetStatus(codes.Ok, "Summary found")
		return summary, nil
	}

	if lang == defaultDetailsLang {
		summary, err = s.wiki.GetPageSummary(ctx, title, fallbackDetailsLang)
		if err != nil {
			s.logger.ErrorContext(ctx, "Fallback page summary lookup failed",
				slog.String("title", title), slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to get place details: %w", err)
		}
		if summary != nil {
			summary.Lang = fallbackDetailsLang
			span.SetStatus(codes.Ok, "Summary found in fallback language")
			return summary, nil
		}
	}

	span.SetStatus(codes.Ok, "Summary not found")
	return nil, nil
}
