// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package resource is a client for the resource API that owns apps and
// users. Records are fetched and saved as JSON; a missing record is reported
// as an *Error matching ErrNotFound.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"templar/internal/models"
)

// ErrNotFound is matched by errors.Is for any 404 from the API.
var ErrNotFound = errors.New("resource not found")

// Error is a non-2xx response from the resource API.
type Error struct {
	Code     string // HTTP status code, e.g. "404"
	Resource string // "app", "user"
	ID       string
	Body     string
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: resource API error (status %s)", e.Resource, e.ID, e.Code)
	}
	return fmt.Sprintf("%s: resource API error (status %s)", e.Resource, e.Code)
}

// Is reports 404 errors as ErrNotFound.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Code == strconv.Itoa(http.StatusNotFound)
}

// IsNotFound reports whether err is a not-found response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Client talks to the resource API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ListApps returns every app.
func (c *Client) ListApps(ctx context.Context) ([]models.App, error) {
	var apps []models.App
	if err := c.do(ctx, http.MethodGet, "/apps", nil, &apps, "app", ""); err != nil {
		return nil, err
	}
	return apps, nil
}

// FindApp fetches a single app.
func (c *Client) FindApp(ctx context.Context, id string) (*models.App, error) {
	if id == "" {
		return nil, &Error{Code: strconv.Itoa(http.StatusNotFound), Resource: "app"}
	}

	var app models.App
	if err := c.do(ctx, http.MethodGet, "/apps/"+url.PathEscape(id), nil, &app, "app", id); err != nil {
		return nil, err
	}
	return &app, nil
}

// appUpdate is the writable subset of an app.
type appUpdate struct {
	App struct {
		Documentation string `json:"documentation"`
	} `json:"app"`
}

// SaveApp writes the app's mutable attributes back to the API.
func (c *Client) SaveApp(ctx context.Context, app *models.App) error {
	var body appUpdate
	body.App.Documentation = app.Documentation

	id := strconv.Itoa(app.ID)
	return c.do(ctx, http.MethodPut, "/apps/"+id, body, nil, "app", id)
}

// FindUser fetches a single user.
func (c *Client) FindUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &u, "user", id); err != nil {
		return nil, err
	}
	return &u, nil
}

// do performs one JSON round trip. in is marshalled as the request body when
// non-nil; out receives the decoded response when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any, kind, id string) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s marshal: %w", kind, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s request: %w", kind, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s http: %w", kind, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s read body: %w", kind, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Code:     strconv.Itoa(resp.StatusCode),
			Resource: kind,
			ID:       id,
			Body:     string(respBody),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s unmarshal: %w", kind, err)
	}
	return nil
}
