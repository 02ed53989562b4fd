// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"templar/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
	// FlashesKey is the context key for the session's pending flashes.
	FlashesKey contextKey = "flashes"
)

// SessionStore is the part of session.Store the middleware needs.
type SessionStore interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	PopFlashes(ctx context.Context, data *session.Data) ([]session.Flash, error)
}

// LoadSession retrieves the session and stores it in the request context.
// Visitors without a session get a new one bound to defaultUserID. Pending
// flashes stay queued until PopFlashesFromCtx is called, so redirects and
// fragments leave them for the next full page.
func LoadSession(store SessionStore, defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			data, err := store.Get(ctx, r)
			if err != nil {
				slog.Warn("load session", "error", err, "request_id", RequestIDFromCtx(ctx))
				next.ServeHTTP(w, r)
				return
			}

			if data == nil {
				data = &session.Data{UserID: defaultUserID}
				if _, err := store.Create(ctx, w, data); err != nil {
					slog.Warn("create session", "error", err, "request_id", RequestIDFromCtx(ctx))
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx = context.WithValue(ctx, SessionKey, data)
			ctx = context.WithValue(ctx, FlashesKey, &pendingFlashes{store: store, data: data})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// pendingFlashes pops the session's flashes at most once per request.
type pendingFlashes struct {
	once    sync.Once
	store   SessionStore
	data    *session.Data
	flashes []session.Flash
}

// PopFlashesFromCtx removes the pending flashes from the session and
// returns them. Later calls in the same request return the same flashes.
func PopFlashesFromCtx(ctx context.Context) []session.Flash {
	p, _ := ctx.Value(FlashesKey).(*pendingFlashes)
	if p == nil {
		return nil
	}
	p.once.Do(func() {
		flashes, err := p.store.PopFlashes(ctx, p.data)
		if err != nil {
			slog.Warn("pop flashes", "error", err, "request_id", RequestIDFromCtx(ctx))
		}
		p.flashes = flashes
	})
	return p.flashes
}
