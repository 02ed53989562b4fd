// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package githubx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// contentsServer fakes the contents API for a single file. When sha is
// empty the file does not exist yet. The decoded PUT body is stored in put.
func contentsServer(t *testing.T, sha string, put *map[string]any) *httptest.Server {
	t.Helper()
	const path = "/repos/foo/bar/contents/my-template.pmx"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			if sha == "" {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message":"Not Found"}`))
				return
			}
			w.Write([]byte(`{"type":"file","name":"my-template.pmx","path":"my-template.pmx","sha":"` + sha + `"}`))

		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(put); err != nil {
				t.Errorf("decode PUT body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"content":{"name":"my-template.pmx","path":"my-template.pmx"}}`))

		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPublish_CreatesNewFile(t *testing.T) {
	var put map[string]any
	srv := contentsServer(t, "", &put)

	p := NewPublisher(srv.URL, nil)
	err := p.Publish(context.Background(), "tok", "foo/bar", "my-template.pmx", []byte("name: My template\n"), "Add My template")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if put["message"] != "Add My template" {
		t.Errorf("message: got %v", put["message"])
	}
	if _, ok := put["sha"]; ok {
		t.Error("create must not send a sha")
	}
	content, _ := put["content"].(string)
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		t.Fatalf("content is not base64: %v", err)
	}
	if string(decoded) != "name: My template\n" {
		t.Errorf("content: got %q", decoded)
	}
}

func TestPublish_UpdatesExistingFile(t *testing.T) {
	var put map[string]any
	srv := contentsServer(t, "abc123", &put)

	p := NewPublisher(srv.URL, nil)
	if err := p.Publish(context.Background(), "tok", "foo/bar", "my-template.pmx", []byte("x"), "Update"); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if put["sha"] != "abc123" {
		t.Errorf("sha: got %v, want abc123", put["sha"])
	}
}

func TestPublish_InvalidRepo(t *testing.T) {
	p := NewPublisher("http://127.0.0.1:1", nil)
	if err := p.Publish(context.Background(), "tok", "not-a-repo", "a.pmx", nil, "m"); err == nil {
		t.Error("expected error for invalid repo")
	}
}

func TestPublish_GetFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("no write expected after a failed lookup, got %s", r.Method)
		}
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Resource not accessible"}`))
	}))
	t.Cleanup(srv.Close)

	err := NewPublisher(srv.URL, nil).Publish(context.Background(), "tok", "foo/bar", "my-template.pmx", []byte("x"), "m")
	if err == nil {
		t.Error("expected error when the contents lookup is forbidden")
	}
}

type forgetRecorder struct {
	tokens []string
}

func (f *forgetRecorder) Forget(_ context.Context, token string) {
	f.tokens = append(f.tokens, token)
}

func TestPublish_RejectedTokenIsForgotten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	t.Cleanup(srv.Close)

	creds := &forgetRecorder{}
	err := NewPublisher(srv.URL, creds).Publish(context.Background(), "stale", "foo/bar", "my-template.pmx", []byte("x"), "m")
	if !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("err = %v, want ErrTokenRejected", err)
	}
	if len(creds.tokens) != 1 || creds.tokens[0] != "stale" {
		t.Errorf("forgotten tokens = %v, want [stale]", creds.tokens)
	}
}

func TestPublish_OtherFailuresKeepCachedState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Resource not accessible"}`))
	}))
	t.Cleanup(srv.Close)

	creds := &forgetRecorder{}
	err := NewPublisher(srv.URL, creds).Publish(context.Background(), "tok", "foo/bar", "my-template.pmx", []byte("x"), "m")
	if err == nil || errors.Is(err, ErrTokenRejected) {
		t.Fatalf("err = %v, want a non-rejection failure", err)
	}
	if len(creds.tokens) != 0 {
		t.Errorf("forgotten tokens = %v, want none", creds.tokens)
	}
}
