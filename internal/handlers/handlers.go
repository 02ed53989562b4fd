// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for Templar. Handlers are
// grouped by concern and receive their collaborators through the handler
// struct as small interfaces.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"templar/internal/middleware"
	"templar/internal/models"
	"templar/internal/render"
	"templar/internal/session"
)

var errNoSession = errors.New("no session")

// Flash types understood by the layout.
const (
	flashSuccess = "success"
	flashAlert   = "alert"
)

// Pages renders HTML templates.
type Pages interface {
	Page(w http.ResponseWriter, r *http.Request, name string, data *render.PageData)
	Partial(w http.ResponseWriter, r *http.Request, name string, data *render.PageData)
}

// Flasher queues flashes on a session for the next rendered page.
type Flasher interface {
	AddFlash(ctx context.Context, data *session.Data, typ, message string) error
}

// UserFinder resolves the user behind a session.
type UserFinder interface {
	FindUser(ctx context.Context, id string) (*models.User, error)
}

// redirectWithFlash stores a flash on the session and redirects with 303.
// A flash that cannot be stored is logged and the redirect still happens.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, flasher Flasher, typ, message, target string) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		if err := flasher.AddFlash(r.Context(), sess, typ, message); err != nil {
			slog.Warn("store flash", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// currentUser looks up the user bound to the request's session.
func currentUser(r *http.Request, users UserFinder) (*models.User, error) {
	var id string
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		id = sess.UserID
	}
	if id == "" {
		return nil, errNoSession
	}
	return users.FindUser(r.Context(), id)
}
