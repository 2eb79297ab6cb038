package googleplaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/matheusqueiroz92/trekmind/app/observability/metrics"
	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

// Ensure implementation satisfies the category-search port
var _ api.PlacesByCategoryProvider = (*Client)(nil)

const (
	defaultSearchURL = "https://places.googleapis.com/v1/places:searchText"
	photoBaseURL     = "https://places.googleapis.com/v1"

	fieldMask = "places.id,places.displayName,places.formattedAddress,places.location,places.rating,places.photos"

	pageSize      = 15
	biasRadiusM   = 50000
	photoHeightPx = 400
)

// Client searches the Google Places text-search API scoped to one category.
// It never fails an aggregation: a missing key, a non-OK response, or a
// transport error all come back as an empty list.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	apiKey     string
	searchURL  string
}

func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     strings.TrimSpace(apiKey),
		searchURL:  defaultSearchURL,
	}
}

// NewClientWithSearchURL is used by tests to point the client at a local
// server.
func NewClientWithSearchURL(apiKey, searchURL string, logger *slog.Logger) *Client {
	c := NewClient(apiKey, logger)
	c.searchURL = searchURL
	return c
}

type searchTextBody struct {
	TextQuery    string        `json:"textQuery"`
	IncludedType string        `json:"includedType"`
	PageSize     int           `json:"pageSize"`
	LanguageCode string        `json:"languageCode,omitempty"`
	LocationBias *locationBias `json:"locationBias,omitempty"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center center  `json:"center"`
	Radius float64 `json:"radius"`
}

type center struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type searchTextResponse struct {
	Places []placeResponse `json:"places"`
}

type placeResponse struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
	Location         struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Rating float64 `json:"rating"`
	Photos []struct {
		Name string `json:"name"`
	} `json:"photos"`
}

// SearchByCategory runs a text search restricted to the request's category.
// The query falls back to "lat,lng" when only coordinates are given; location
// bias applies only when both a query and coordinates are present.
func (c *Client) SearchByCategory(ctx context.Context, req types.SearchByCategoryRequest) ([]types.PlaceDTO, error) {
	ctx, span := otel.Tracer("GooglePlacesClient").Start(ctx, "SearchByCategory", trace.WithAttributes(
		attribute.String("places.category", req.Category),
	))
	defer span.End()

	if c.apiKey == "" {
		c.logger.DebugContext(ctx, "Google Places key missing, returning empty list")
		return []types.PlaceDTO{}, nil
	}

	providerAttr := metric.WithAttributes(attribute.String("provider", "google_places"))
	metrics.Get().ProviderCallsTotal.Add(ctx, 1, providerAttr)

	query := strings.TrimSpace(req.Query)
	if query == "" && req.Latitude != nil && req.Longitude != nil {
		query = fmt.Sprintf("%s,%s",
			strconv.FormatFloat(*req.Latitude, 'f', -1, 64),
			strconv.FormatFloat(*req.Longitude, 'f', -1, 64))
	}
	if query == "" {
		return []types.PlaceDTO{}, nil
	}

	body := searchTextBody{
		TextQuery:    query,
		IncludedType: req.Category,
		PageSize:     pageSize,
		LanguageCode: req.Lang,
	}
	if req.Latitude != nil && req.Longitude != nil && strings.TrimSpace(req.Query) != "" {
		body.LocationBias = &locationBias{
			Circle: circle{
				Center: center{Latitude: *req.Latitude, Longitude: *req.Longitude},
				Radius: biasRadiusM,
			},
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return []types.PlaceDTO{}, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(payload))
	if err != nil {
		return []types.PlaceDTO{}, nil
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "Google Places request failed", slog.Any("error", err))
		metrics.Get().ProviderErrorsTotal.Add(ctx, 1, providerAttr)
		span.RecordError(err)
		return []types.PlaceDTO{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.Get().ProviderErrorsTotal.Add(ctx, 1, providerAttr)
		c.logger.WarnContext(ctx, "Google Places returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("category", req.Category))
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		return []types.PlaceDTO{}, nil
	}

	var result searchTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.WarnContext(ctx, "Google Places response decode failed", slog.Any("error", err))
		span.RecordError(err)
		return []types.PlaceDTO{}, nil
	}

	places := make([]types.PlaceDTO, 0, len(result.Places))
	for i, p := range result.Places {
		places = append(places, c.toPlaceDTO(p, req.Category, i))
	}
	span.SetAttributes(attribute.Int("places.results", len(places)))
	return places, nil
}

func (c *Client) toPlaceDTO(p placeResponse, category string, index int) types.PlaceDTO {
	id := p.ID
	if id == "" {
		id = fmt.Sprintf("google-%d-%d", index, time.Now().UnixMilli())
	}
	name := p.DisplayName.Text
	if name == "" {
		name = "Sem nome"
	}
	var imageURL string
	if len(p.Photos) > 0 && p.Photos[0].Name != "" {
		imageURL = fmt.Sprintf("%s/%s/media?key=%s&maxHeightPx=%d",
			photoBaseURL, p.Photos[0].Name, url.QueryEscape(c.apiKey), photoHeightPx)
	}
	return types.PlaceDTO{
		ID:        id,
		Name:      name,
		Category:  category,
		Latitude:  p.Location.Latitude,
		Longitude: p.Location.Longitude,
		Address:   p.FormattedAddress,
		Source:    "google",
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}
}
