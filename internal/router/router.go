// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// FlowBotz gallery API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flowbotz/internal/handlers"
	"flowbotz/internal/middleware"
	"flowbotz/internal/session"
)

// generateLimit caps generation requests per client IP. Image generation
// burns provider credits, so the window is much tighter than for reads.
const (
	generateLimit  = 10
	generateWindow = time.Hour
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. sessionStore may be nil when Valkey is not
// available; visitors then browse without per-session like state.
func New(sessionStore *session.Store, gallery *handlers.Gallery) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if sessionStore != nil {
		r.Use(middleware.LoadSession(sessionStore))
	}

	// Health check — no session, no rate limit.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Gallery reads.
		r.Get("/designs", gallery.List)
		r.Get("/designs/{id}", gallery.Detail)
		r.Get("/styles", gallery.Styles)

		// Engagement writes.
		r.Post("/designs/{id}/like", gallery.Like)
		r.Post("/designs/{id}/download", gallery.Download)
		r.Post("/designs/{id}/cart", gallery.AddToCart)

		// Generation — rate limited per client.
		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(generateLimit, generateWindow)
			r.Use(limiter.Middleware)
			r.Post("/designs/generate", gallery.Generate)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
