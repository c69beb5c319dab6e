// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"showscout/internal/adapter/cache"
	"showscout/internal/adapter/geocode"
	"showscout/internal/analytics"
	"showscout/internal/config"
	"showscout/internal/domain/favorite"
	"showscout/internal/server/handlers"
	"showscout/internal/service/aggregator"
	"showscout/internal/service/ai"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// Deps carries the collaborators the routes need. Favorites and cache
// may be absent; their routes degrade rather than the whole server.
type Deps struct {
	Aggregator *aggregator.Aggregator
	Searcher   *ai.Searcher
	Geocoder   *geocode.Client
	Favorites  favorite.Store
	Cache      *cache.RedisCache
	Publisher  *analytics.Publisher
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, deps Deps) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	eventHandler := handlers.NewEventHandler(deps.Aggregator, deps.Cache, deps.Publisher, cfg.Search)
	aiHandler := handlers.NewAIHandler(deps.Searcher, deps.Publisher, cfg.Search)
	geocodeHandler := handlers.NewGeocodeHandler(deps.Geocoder)
	favoriteHandler := handlers.NewFavoriteHandler(deps.Favorites)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Events API
			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.SearchEvents)
				r.Get("/{id}", eventHandler.GetEvent)
			})

			// AI search API
			r.Post("/ai/search", aiHandler.Search)

			// Geocoding API
			r.Get("/geocode", geocodeHandler.GeocodeZip)

			// Favorites API
			r.Route("/users/me/favorites", func(r chi.Router) {
				r.Get("/", favoriteHandler.ListFavorites)
				r.Post("/", favoriteHandler.SaveFavorite)
				r.Delete("/{eventID}", favoriteHandler.DeleteFavorite)
			})
		})
	})

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
