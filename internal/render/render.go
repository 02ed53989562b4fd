// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering. Pages render inside the
// base layout; partials and HTMX requests get only the page's "content"
// block.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"templar/internal/forms"
	"templar/internal/markdown"
	"templar/internal/middleware"
	"templar/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active navigation section ("apps", "templates")
	Session   *session.Data  // Current session (nil if none could be loaded)
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "alert"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template from the embedded filesystem, each paired
// with the base layout.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"activeClass": func(current, target string) string {
			if current == target {
				return "nav-active"
			}
			return ""
		},
		"markdown": markdown.Render,
		// field names a template_form[...] parameter.
		"field": forms.FieldName,
		"flashClass": func(typ string) string {
			switch typ {
			case "success":
				return "flash flash-success"
			case "alert", "error":
				return "flash flash-alert"
			default:
				return "flash"
			}
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders a full page inside the layout, or only the "content" block
// for HTMX requests. The layout pops the session's flashes and shows them
// ahead of the page's own.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.prepare(r, data)

	if isHTMX(r) {
		rn.execute(w, name, "content", data)
		return
	}
	data.Flashes = withSessionFlashes(middleware.PopFlashesFromCtx(r.Context()), data.Flashes)
	rn.execute(w, name, "base.html", data)
}

// Partial renders only the "content" block of a template, without the
// layout. Session flashes stay queued.
func (rn *Renderer) Partial(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.prepare(r, data)
	rn.execute(w, name, "content", data)
}

func (rn *Renderer) prepare(r *http.Request, data *PageData) {
	ctx := r.Context()
	data.CSRFToken = middleware.CSRFTokenFromCtx(ctx)
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(ctx)
	}
}

func withSessionFlashes(pending []session.Flash, own []Flash) []Flash {
	if len(pending) == 0 {
		return own
	}
	flashes := make([]Flash, 0, len(pending)+len(own))
	for _, f := range pending {
		flashes = append(flashes, Flash{Type: f.Type, Message: f.Message})
	}
	return append(flashes, own...)
}

// execute renders into a buffer first so a template error still yields a
// clean 500 instead of a half-written page.
func (rn *Renderer) execute(w http.ResponseWriter, name, block string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
		slog.Error("render template", "template", name, "block", block, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
