package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	core_port "discovery-service/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	searchHandlers *SearchHandler,
	nearbyHandlers *NearbyHandler,
	suggestHandlers *SuggestHandler,
	compareHandlers *CompareHandler,
	statsHandlers *StatsHandler,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", searchHandlers.Search)
		r.Post("/nearby", nearbyHandlers.Nearby)
		r.Get("/suggestions", suggestHandlers.GetSuggestions)

		r.Get("/compare/{sessionID}", compareHandlers.GetGroup)
		r.Post("/compare/{sessionID}/toggle", compareHandlers.Toggle)
		r.Delete("/compare/{sessionID}", compareHandlers.ClearGroup)

		r.Get("/catalog/stats", statsHandlers.GetCatalogStats)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
