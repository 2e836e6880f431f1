// Package server wires the module handlers into one chi router.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// RouteRegistrar is implemented by every module handler.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Options configure the router.
type Options struct {
	RateLimit rate.Limit
	Burst     int
	// AccessLog enables chi's request logger.
	AccessLog bool
}

// NewRouter builds the HTTP surface: shared middleware, a health check and
// the routes of each module.
func NewRouter(opts Options, modules ...RouteRegistrar) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	if opts.AccessLog {
		router.Use(middleware.Logger)
	}
	router.Use(middleware.Recoverer)
	if opts.RateLimit > 0 {
		router.Use(NewClientLimiter(opts.RateLimit, opts.Burst, 3*time.Minute).Middleware)
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": "stylist",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	for _, m := range modules {
		m.RegisterRoutes(router)
	}
	return router
}
