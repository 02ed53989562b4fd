// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"templar/internal/session"
)

type fakeSessionStore struct {
	existing *session.Data
	getErr   error
	created  []*session.Data
	popped   int
}

func (f *fakeSessionStore) Get(context.Context, *http.Request) (*session.Data, error) {
	return f.existing, f.getErr
}

func (f *fakeSessionStore) Create(_ context.Context, _ http.ResponseWriter, data *session.Data) (string, error) {
	data.ID = "new-session"
	f.created = append(f.created, data)
	return data.ID, nil
}

func (f *fakeSessionStore) PopFlashes(_ context.Context, data *session.Data) ([]session.Flash, error) {
	f.popped++
	flashes := data.Flashes
	data.Flashes = nil
	return flashes, nil
}

// serveWithSession runs LoadSession and returns the session it loaded.
// When pop is set the handler pops pending flashes twice, like a page that
// renders them.
func serveWithSession(store SessionStore, req *http.Request, pop bool) (*session.Data, []session.Flash) {
	var sess *session.Data
	var flashes []session.Flash
	handler := LoadSession(store, "1")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess = SessionFromCtx(r.Context())
		if pop {
			PopFlashesFromCtx(r.Context())
			flashes = PopFlashesFromCtx(r.Context())
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return sess, flashes
}

func TestLoadSession_CreatesForFirstVisit(t *testing.T) {
	store := &fakeSessionStore{}
	sess, _ := serveWithSession(store, httptest.NewRequest(http.MethodGet, "/apps", nil), false)

	if len(store.created) != 1 {
		t.Fatalf("created %d sessions, want 1", len(store.created))
	}
	if sess == nil || sess.UserID != "1" || sess.ID != "new-session" {
		t.Errorf("session = %+v, want default user bound to new session", sess)
	}
}

func TestLoadSession_PopsFlashesOnceWhenRendered(t *testing.T) {
	store := &fakeSessionStore{existing: &session.Data{
		ID:      "s",
		UserID:  "7",
		Flashes: []session.Flash{{Type: "success", Message: "Template successfully created."}},
	}}

	sess, flashes := serveWithSession(store, httptest.NewRequest(http.MethodGet, "/apps", nil), true)

	if sess.UserID != "7" {
		t.Errorf("UserID = %q, want 7", sess.UserID)
	}
	if len(flashes) != 1 || flashes[0].Message != "Template successfully created." {
		t.Errorf("flashes = %+v", flashes)
	}
	if store.popped != 1 {
		t.Errorf("popped %d times, want 1", store.popped)
	}
	if len(store.created) != 0 {
		t.Error("existing session should be reused")
	}
}

func TestLoadSession_KeepsFlashesUntilRendered(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
	}{
		{"post", httptest.NewRequest(http.MethodPost, "/templates", nil)},
		{"get", httptest.NewRequest(http.MethodGet, "/templates/1/details", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &session.Data{ID: "s", Flashes: []session.Flash{{Type: "alert", Message: "pending"}}}
			store := &fakeSessionStore{existing: data}

			serveWithSession(store, tt.req, false)

			if store.popped != 0 || len(data.Flashes) != 1 {
				t.Errorf("flashes consumed without rendering (popped=%d, left=%v)", store.popped, data.Flashes)
			}
		})
	}
}

func TestPopFlashesFromCtx_WithoutSession(t *testing.T) {
	if got := PopFlashesFromCtx(context.Background()); got != nil {
		t.Errorf("flashes = %v, want nil", got)
	}
}

func TestLoadSession_StoreErrorContinues(t *testing.T) {
	store := &fakeSessionStore{getErr: errors.New("valkey down")}
	sess, _ := serveWithSession(store, httptest.NewRequest(http.MethodGet, "/apps", nil), false)

	if sess != nil {
		t.Errorf("session = %+v, want nil when the store fails", sess)
	}
}
