package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/matheusqueiroz92/trekmind/app/observability/metrics"
	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

// Ensure implementation satisfies the geocoding port
var _ api.GeocodingService = (*NominatimClient)(nil)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "TrekMind/1.0"
)

// NominatimClient geocodes free-text addresses against the OpenStreetMap
// Nominatim API. Nominatim requires a descriptive User-Agent on every request.
type NominatimClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewNominatimClient(baseURL, userAgent string, logger *slog.Logger) *NominatimClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &NominatimClient{
		logger:     logger,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

// nominatimResult mirrors the wire format: coordinates arrive as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// GetCoordinatesFromAddress resolves an address to coordinates. A nil result
// with a nil error means the address matched nothing.
func (c *NominatimClient) GetCoordinatesFromAddress(ctx context.Context, address string) (*types.GeocodingResult, error) {
	ctx, span := otel.Tracer("NominatimClient").Start(ctx, "GetCoordinatesFromAddress", trace.WithAttributes(
		attribute.String("geocoding.address", address),
	))
	defer span.End()

	providerAttr := metric.WithAttributes(attribute.String("provider", "nominatim"))
	metrics.Get().ProviderCallsTotal.Add(ctx, 1, providerAttr)

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Nominatim request failed", slog.Any("error", err))
		metrics.Get().ProviderErrorsTotal.Add(ctx, 1, providerAttr)
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
		metrics.Get().ProviderErrorsTotal.Add(ctx, 1, providerAttr)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		span.SetAttributes(attribute.Bool("geocoding.found", false))
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	span.SetAttributes(attribute.Bool("geocoding.found", true))
	return &types.GeocodingResult{
		Latitude:         lat,
		Longitude:        lng,
		FormattedAddress: results[0].DisplayName,
	}, nil
}
