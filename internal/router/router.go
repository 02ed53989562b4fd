// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for Templar.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"templar/internal/handlers"
	"templar/internal/middleware"
)

// Deps are the handlers and middleware collaborators the routes need.
type Deps struct {
	Sessions      middleware.SessionStore
	DefaultUserID string
	SecureCookies bool
	// PublishLimiter guards template submission. Nil disables it.
	PublishLimiter *middleware.RateLimiter
	Static         fs.FS

	Apps      *handlers.Apps
	Templates *handlers.Templates
}

// New creates the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	// Health check and assets: no session, no CSRF.
	r.Get("/health", healthHandler)
	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(d.Sessions, d.DefaultUserID))
		r.Use(middleware.NewCSRF(d.SecureCookies))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/apps", http.StatusFound)
		})
		r.Get("/apps", d.Apps.List)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/new", d.Templates.New)
			r.Get("/{id}/details", d.Templates.Details)

			r.Group(func(r chi.Router) {
				if d.PublishLimiter != nil {
					r.Use(d.PublishLimiter.Middleware)
				}
				r.Post("/", d.Templates.Create)
			})
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
