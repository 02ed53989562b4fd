// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"templar/internal/forms"
	"templar/internal/middleware"
	"templar/internal/models"
	"templar/internal/render"
	"templar/internal/resource"
)

// Messages shown to the user.
const (
	msgAppNotFound     = "could not find application"
	msgInvalidCreds    = "Your token may be malformed, expired or is not scoped correctly."
	msgUpdateToken     = " Please update your GitHub access token."
	msgTemplateCreated = "Template successfully created."
)

// AppService reads and writes applications on the resource API.
type AppService interface {
	FindApp(ctx context.Context, id string) (*models.App, error)
	SaveApp(ctx context.Context, app *models.App) error
}

// TypeCatalog lists the template types.
type TypeCatalog interface {
	All(ctx context.Context) ([]models.Type, error)
}

// RepoRegistry remembers the repositories templates were published to.
type RepoRegistry interface {
	FindOrCreateByName(ctx context.Context, name string) (*models.TemplateRepo, error)
}

// TemplateFinder loads a saved template.
type TemplateFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Template, error)
}

// Templates serves the template pages: the new-template form, its
// submission and the details fragment.
type Templates struct {
	pages     Pages
	flasher   Flasher
	users     UserFinder
	apps      AppService
	types     TypeCatalog
	repos     RepoRegistry
	templates TemplateFinder
	dest      forms.Destination
}

// NewTemplates creates the Templates handler group.
func NewTemplates(pages Pages, flasher Flasher, users UserFinder, apps AppService, types TypeCatalog, repos RepoRegistry, templates TemplateFinder, dest forms.Destination) *Templates {
	return &Templates{
		pages:     pages,
		flasher:   flasher,
		users:     users,
		apps:      apps,
		types:     types,
		repos:     repos,
		templates: templates,
		dest:      dest,
	}
}

// New renders the form for a new template, pre-filled from the app named
// by the app_id query parameter.
func (h *Templates) New(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := currentUser(r, h.users)
	if err != nil {
		h.serverError(w, r, "find user", err)
		return
	}

	var app *models.App
	if appID := r.URL.Query().Get("app_id"); appID != "" {
		app, err = h.apps.FindApp(ctx, appID)
		if resource.IsNotFound(err) {
			redirectWithFlash(w, r, h.flasher, flashAlert, msgAppNotFound, "/apps")
			return
		}
		if err != nil {
			h.serverError(w, r, "find app", err)
			return
		}
	}

	types, err := h.types.All(ctx)
	if err != nil {
		h.serverError(w, r, "list types", err)
		return
	}

	form := forms.NewTemplateForm(types, user, app)

	data := &render.PageData{
		Title:   "New template",
		Section: "apps",
		Data:    map[string]any{"Form": form},
	}
	if user.CredsInvalid() {
		data.Flashes = append(data.Flashes, render.Flash{Type: flashAlert, Message: msgInvalidCreds + msgUpdateToken})
	}

	h.pages.Page(w, r, "template_form", data)
}

// Create handles the form submission. The app's documentation is written
// back to the resource API before the form is saved; the repository is
// registered only when the save succeeds.
func (h *Templates) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := currentUser(r, h.users)
	if err != nil {
		h.serverError(w, r, "find user", err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.TemplateFormFromValues(r.PostForm)

	app, err := h.apps.FindApp(ctx, form.AppID)
	if err != nil {
		h.serverError(w, r, "find app", err)
		return
	}
	app.Documentation = form.Documentation
	if err := h.apps.SaveApp(ctx, app); err != nil {
		h.serverError(w, r, "save app", err)
		return
	}
	form.App = app

	if !form.Save(ctx, h.dest, user) {
		types, err := h.types.All(ctx)
		if err != nil {
			h.serverError(w, r, "list types", err)
			return
		}
		form.User = user
		form.Types = types

		h.pages.Page(w, r, "template_form", &render.PageData{
			Title:   "New template",
			Section: "apps",
			Data:    map[string]any{"Form": form},
		})
		return
	}

	if _, err := h.repos.FindOrCreateByName(ctx, form.Repo); err != nil {
		slog.Error("register template repo", "repo", form.Repo, "error", err,
			"request_id", middleware.RequestIDFromCtx(ctx))
	}

	slog.Info("template created",
		"template_id", form.Saved().ID,
		"name", form.Name,
		"repo", form.Repo,
		"app_id", form.AppID,
		"request_id", middleware.RequestIDFromCtx(ctx),
	)
	redirectWithFlash(w, r, h.flasher, flashSuccess, msgTemplateCreated, "/apps")
}

// Details renders a template's details as a fragment, without the layout.
func (h *Templates) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	tmpl, err := h.templates.FindByID(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "find template", err)
		return
	}
	if tmpl == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	h.pages.Partial(w, r, "template_details", &render.PageData{
		Title: tmpl.Name,
		Data:  map[string]any{"Template": tmpl},
	})
}

func (h *Templates) serverError(w http.ResponseWriter, r *http.Request, what string, err error) {
	slog.Error(what, "error", err, "path", r.URL.Path, "request_id", middleware.RequestIDFromCtx(r.Context()))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
