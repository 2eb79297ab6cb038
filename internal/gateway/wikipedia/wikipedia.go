package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

// Ensure implementation satisfies the encyclopedia port
var _ api.WikiProvider = (*Client)(nil)

const (
	// DefaultLang is used whenever a caller passes an empty language.
	DefaultLang = "pt"

	searchLimit    = 10
	nearbyFetch    = 15
	nearbyReturn   = 10
	maxGeoRadiusM  = 10000
	requestTimeout = 10 * time.Second
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Client talks to the Wikipedia action API for search and geosearch and to the
// REST API for page summaries. The host is language-scoped, so every call
// picks its base URL from the requested language.
type Client struct {
	logger      *slog.Logger
	httpClient  *http.Client
	defaultLang string
	// baseURLOverride replaces the per-language host when set. Tests point it
	// at a local server.
	baseURLOverride string
}

func NewClient(defaultLang string, logger *slog.Logger) *Client {
	if strings.TrimSpace(defaultLang) == "" {
		defaultLang = DefaultLang
	}
	return &Client{
		logger:      logger,
		httpClient:  &http.Client{Timeout: requestTimeout},
		defaultLang: defaultLang,
	}
}

// NewClientWithBaseURL builds a client pinned to a single host regardless of
// language.
func NewClientWithBaseURL(baseURL string, logger *slog.Logger) *Client {
	c := NewClient(DefaultLang, logger)
	c.baseURLOverride = baseURL
	return c
}

func (c *Client) baseURL(lang string) string {
	if c.baseURLOverride != "" {
		return c.baseURLOverride
	}
	safe := strings.TrimSpace(lang)
	if safe == "" {
		safe = c.defaultLang
	}
	return fmt.Sprintf("https://%s.wikipedia.org", safe)
}

func articleURL(base, title string) string {
	return fmt.Sprintf("%s/wiki/%s", base, url.PathEscape(strings.ReplaceAll(title, " ", "_")))
}

func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

type actionSearchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			PageID  int64  `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

// Search runs a full-text search and returns up to ten hits. A blank term
// returns an empty list without hitting the network.
func (c *Client) Search(ctx context.Context, term, lang string) ([]types.WikiSearchResult, error) {
	ctx, span := otel.Tracer("WikipediaClient").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("wiki.term", term),
		attribute.String("wiki.lang", lang),
	))
	defer span.End()

	if strings.TrimSpace(term) == "" {
		return []types.WikiSearchResult{}, nil
	}

	base := c.baseURL(lang)
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("format", "json")
	params.Set("srlimit", strconv.Itoa(searchLimit))

	var payload actionSearchResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/w/api.php?%s", base, params.Encode()), &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, fmt.Errorf("wikipedia search failed: %w", err)
	}

	results := make([]types.WikiSearchResult, 0, len(payload.Query.Search))
	for _, item := range payload.Query.Search {
		results = append(results, types.WikiSearchResult{
			Title:   item.Title,
			Extract: stripHTML(item.Snippet),
			URL:     articleURL(base, item.Title),
			PageID:  item.PageID,
		})
	}
	span.SetAttributes(attribute.Int("wiki.results", len(results)))
	return results, nil
}

type geoSearchResponse struct {
	Query struct {
		GeoSearch []struct {
			Title  string  `json:"title"`
			Lat    float64 `json:"lat"`
			Lon    float64 `json:"lon"`
			Dist   float64 `json:"dist"`
			PageID int64   `json:"pageid"`
		} `json:"geosearch"`
	} `json:"query"`
}

// SearchNearby runs a geosearch around the given point. The radius is clamped
// to the API's 10km ceiling and at most ten hits are returned.
func (c *Client) SearchNearby(ctx context.Context, latitude, longitude, radiusKm float64, lang string) ([]types.WikiSearchResult, error) {
	ctx, span := otel.Tracer("WikipediaClient").Start(ctx, "SearchNearby", trace.WithAttributes(
		attribute.Float64("wiki.latitude", latitude),
		attribute.Float64("wiki.longitude", longitude),
		attribute.Float64("wiki.radius_km", radiusKm),
	))
	defer span.End()

	base := c.baseURL(lang)
	radiusM := radiusKm * 1000
	if radiusM > maxGeoRadiusM {
		radiusM = maxGeoRadiusM
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "geosearch")
	params.Set("gscoord", fmt.Sprintf("%s|%s",
		strconv.FormatFloat(latitude, 'f', -1, 64),
		strconv.FormatFloat(longitude, 'f', -1, 64)))
	params.Set("gsradius", strconv.Itoa(int(radiusM)))
	params.Set("format", "json")
	params.Set("gslimit", strconv.Itoa(nearbyFetch))

	var payload geoSearchResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/w/api.php?%s", base, params.Encode()), &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geosearch failed")
		return nil, fmt.Errorf("wikipedia geosearch failed: %w", err)
	}

	hits := payload.Query.GeoSearch
	if len(hits) > nearbyReturn {
		hits = hits[:nearbyReturn]
	}
	results := make([]types.WikiSearchResult, 0, len(hits))
	for _, item := range hits {
		lat, lon := item.Lat, item.Lon
		results = append(results, types.WikiSearchResult{
			Title:       item.Title,
			Description: fmt.Sprintf("%s (%.1f km away)", item.Title, item.Dist/1000),
			URL:         articleURL(base, item.Title),
			Latitude:    &lat,
			Longitude:   &lon,
			PageID:      item.PageID,
		})
	}
	span.SetAttributes(attribute.Int("wiki.results", len(results)))
	return results, nil
}

type restSummaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	Coordinates *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
	PageID int64 `json:"pageid"`
}

// GetPageSummary fetches the REST summary for a page title. A blank title,
// a non-OK response, or a payload with no title all yield nil without error so
// callers can treat "no article" as an ordinary miss.
func (c *Client) GetPageSummary(ctx context.Context, title, lang string) (*types.WikiPageSummary, error) {
	ctx, span := otel.Tracer("WikipediaClient").Start(ctx, "GetPageSummary", trace.WithAttributes(
		attribute.String("wiki.title", title),
		attribute.String("wiki.lang", lang),
	))
	defer span.End()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	base := c.baseURL(lang)
	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", base,
		url.PathEscape(strings.ReplaceAll(title, " ", "_")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build summary request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Wikipedia summary request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("wikipedia summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		return nil, nil
	}

	var payload restSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode summary response: %w", err)
	}
	if payload.Title == "" {
		return nil, nil
	}

	summary := &types.WikiPageSummary{
		Title:        payload.Title,
		Extract:      payload.Extract,
		Description:  payload.Description,
		URL:          payload.ContentURLs.Desktop.Page,
		ThumbnailURL: payload.Thumbnail.Source,
		PageID:       payload.PageID,
		Lang:         lang,
	}
	if summary.URL == "" {
		summary.URL = articleURL(base, payload.Title)
	}
	if payload.Coordinates != nil {
		lat, lon := payload.Coordinates.Lat, payload.Coordinates.Lon
		summary.Latitude = &lat
		summary.Longitude = &lon
	}
	if summary.Lang == "" {
		summary.Lang = c.defaultLang
	}
	return summary, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
