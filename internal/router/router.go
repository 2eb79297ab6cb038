package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/matheusqueiroz92/trekmind/internal/api/auth"
	"github.com/matheusqueiroz92/trekmind/internal/api/chat"
	"github.com/matheusqueiroz92/trekmind/internal/api/place"
)

// Config contains the handlers and middleware the router wires together.
type Config struct {
	AuthHandler            *auth.Handler
	PlaceHandler           *place.Handler
	ChatHandler            *chat.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes the application router. Server-wide middleware
// (request ID, logger, recoverer) is applied before mounting this router in
// main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)

			r.Get("/places/resolve", cfg.PlaceHandler.ResolvePlace)
			r.Get("/places/search", cfg.PlaceHandler.SearchPlaces)
			r.Get("/places/nearby", cfg.PlaceHandler.GetNearbyPlaces)
			r.Get("/places/details", cfg.PlaceHandler.GetPlaceDetails)
			r.Get("/places/by-category", cfg.PlaceHandler.SearchPlacesByCategory)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/chat", cfg.ChatHandler.AnswerTravelQuestion)
		})
	})

	return r
}
