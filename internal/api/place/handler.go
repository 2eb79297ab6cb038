package place

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/matheusqueiroz92/trekmind/app/observability/metrics"
	"github.com/matheusqueiroz92/trekmind/internal/api"
	"github.com/matheusqueiroz92/trekmind/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// ResolvePlace handles GET /places/resolve?q=
func (h *Handler) ResolvePlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "ResolvePlace")
	defer span.End()
	metrics.Get().PlaceRequestsTotal.Add(ctx, 1)

	l := h.logger.With(slog.String("handler", "ResolvePlace"))

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		span.SetStatus(codes.Error, "Missing query")
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	result, err := h.service.ResolvePlace(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to resolve place", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to resolve place")
		return
	}
	if result == nil {
		span.SetStatus(codes.Ok, "No match")
		api.ErrorResponse(w, r, http.StatusNotFound, types.ErrNotFound.Error())
		return
	}

	span.SetStatus(codes.Ok, "Place resolved")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// SearchPlaces handles GET /places/search?q=&lat=&lng=&address=&city=&country=&lang=
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "SearchPlaces")
	defer span.End()
	metrics.Get().PlaceRequestsTotal.Add(ctx, 1)

	l := h.logger.With(slog.String("handler", "SearchPlaces"))

	q := r.URL.Query()
	query := q.Get("q")
	if strings.TrimSpace(query) == "" {
		span.SetStatus(codes.Error, "Missing query")
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	lat, ok := parseOptionalFloat(w, r, "lat")
	if !ok {
		return
	}
	lng, ok := parseOptionalFloat(w, r, "lng")
	if !ok {
		return
	}

	places, err := h.service.SearchPlaces(ctx, types.SearchPlacesRequest{
		Query:     query,
		Latitude:  lat,
		Longitude: lng,
		Address:   q.Get("address"),
		City:      q.Get("city"),
		Country:   q.Get("country"),
		Lang:      q.Get("lang"),
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to search places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to search places")
		return
	}

	span.SetStatus(codes.Ok, "Places returned")
	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// GetNearbyPlaces handles GET /places/nearby?lat=&lng=&radius=&category=&lang=
func (h *Handler) GetNearbyPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "GetNearbyPlaces")
	defer span.End()
	metrics.Get().PlaceRequestsTotal.Add(ctx, 1)

	l := h.logger.With(slog.String("handler", "GetNearbyPlaces"))

	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid coordinates")
		api.ErrorResponse(w, r, http.StatusBadRequest, "valid 'lat' and 'lng' parameters are required")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid coordinates")
		api.ErrorResponse(w, r, http.StatusBadRequest, "valid 'lat' and 'lng' parameters are required")
		return
	}

	radiusKm := 10.0
	if raw := q.Get("radius"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			span.SetStatus(codes.Error, "Invalid radius")
			api.ErrorResponse(w, r, http.StatusBadRequest, "'radius' must be a number")
			return
		}
	}

	places, err := h.service.GetNearbyPlaces(ctx, types.NearbyPlacesRequest{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radiusKm,
		Category:  q.Get("category"),
		Lang:      q.Get("lang"),
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to get nearby places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to get nearby places")
		return
	}

	span.SetStatus(codes.Ok, "Nearby places returned")
	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// GetPlaceDetails handles GET /places/details?title=&lang=
func (h *Handler) GetPlaceDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "GetPlaceDetails")
	defer span.End()
	metrics.Get().PlaceRequestsTotal.Add(ctx, 1)

	l := h.logger.With(slog.String("handler", "GetPlaceDetails"))

	q := r.URL.Query()
	title := q.Get("title")
	if strings.TrimSpace(title) == "" {
		span.SetStatus(codes.Error, "Missing title")
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter 'title' is required")
		return
	}

	details, err := h.service.GetPlaceDetails(ctx, title, q.Get("lang"))
	if err != nil {
		l.ErrorContext(ctx, "Failed to get place details", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to get place details")
		return
	}
	if details == nil {
		span.SetStatus(codes.Ok, "Not found")
		api.ErrorResponse(w, r, http.StatusNotFound, types.ErrNotFound.Error())
		return
	}

	span.SetStatus(codes.Ok, "Details returned")
	api.WriteJSONResponse(w, r, http.StatusOK, details)
}

// SearchPlacesByCategory handles GET /places/by-category?q=&lat=&lng=&categories=&lang=
func (h *Handler) SearchPlacesByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "SearchPlacesByCategory")
	defer span.End()
	metrics.Get().PlaceRequestsTotal.Add(ctx, 1)

	l := h.logger.With(slog.String("handler", "SearchPlacesByCategory"))

	q := r.URL.Query()
	lat, ok := parseOptionalFloat(w, r, "lat")
	if !ok {
		return
	}
	lng, ok := parseOptionalFloat(w, r, "lng")
	if !ok {
		return
	}

	var categories []string
	if raw := q.Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	result, err := h.service.SearchPlacesByCategory(ctx, types.SearchPlacesByCategoryRequest{
		Query:      q.Get("q"),
		Latitude:   lat,
		Longitude:  lng,
		Categories: categories,
		Lang:       q.Get("lang"),
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to search places by category", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to search places by category")
		return
	}

	span.SetStatus(codes.Ok, "Category results returned")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// parseOptionalFloat reads an optional float query parameter. A present but
// malformed value answers 400 and returns ok=false.
func parseOptionalFloat(w http.ResponseWriter, r *http.Request, name string) (*float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "'"+name+"' must be a number")
		return nil, false
	}
	return &v, true
}
