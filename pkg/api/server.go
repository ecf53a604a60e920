// Package api Rowbin REST API
//
// @title           Rowbin REST API
// @version         1.0.0
// @description     REST API for the rowbin row packer and compression envelope.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router with all routes configured.
func NewRouter(server *Server, metrics *Metrics, apiKey string) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(apiKey, metrics))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Row codec
		r.Post("/pack", metrics.InstrumentHandler("POST", "/api/v1/pack", server.handlePack))
		r.Post("/unpack", metrics.InstrumentHandler("POST", "/api/v1/unpack", server.handleUnpack))

		// Compression envelope
		r.Post("/wrap", metrics.InstrumentHandler("POST", "/api/v1/wrap", server.handleWrap))
		r.Post("/unwrap", metrics.InstrumentHandler("POST", "/api/v1/unwrap", server.handleUnwrap))
		r.Post("/inspect", metrics.InstrumentHandler("POST", "/api/v1/inspect", server.handleInspect))
		r.Get("/algorithms", metrics.InstrumentHandler("GET", "/api/v1/algorithms", server.handleAlgorithms))

		// Archive
		r.Post("/archive", metrics.InstrumentHandler("POST", "/api/v1/archive", server.handleArchiveCreate))
		r.Get("/archive", metrics.InstrumentHandler("GET", "/api/v1/archive", server.handleArchiveList))
		r.Get("/archive/{id}", metrics.InstrumentHandler("GET", "/api/v1/archive/{id}", server.handleArchiveRead))
		r.Put("/archive/{id}", metrics.InstrumentHandler("PUT", "/api/v1/archive/{id}", server.handleArchiveUpdate))
		r.Delete("/archive/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/archive/{id}", server.handleArchiveDelete))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(archive Archiver, config ServerConfig) error {
	// Initialize metrics
	metrics := NewMetrics()

	server := NewServer(archive, config, metrics)
	r := NewRouter(server, metrics, config.APIKey)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting rowbin REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}
