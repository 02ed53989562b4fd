// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"templar/internal/middleware"
	"templar/internal/models"
	"templar/internal/render"
)

// AppLister lists the applications on the resource API.
type AppLister interface {
	ListApps(ctx context.Context) ([]models.App, error)
}

// RepoLister lists the registered template repositories.
type RepoLister interface {
	List(ctx context.Context) ([]models.TemplateRepo, error)
}

// TemplateLister lists the templates published to a repository.
type TemplateLister interface {
	ListByRepo(ctx context.Context, repo string) ([]models.Template, error)
}

// RepoSummary is a registered repository with the templates published to it.
type RepoSummary struct {
	Name      string
	Templates []models.Template
}

// Apps serves the application listing, which is where the templates flow
// redirects to.
type Apps struct {
	pages     Pages
	apps      AppLister
	repos     RepoLister
	templates TemplateLister
}

// NewApps creates the Apps handler group.
func NewApps(pages Pages, apps AppLister, repos RepoLister, templates TemplateLister) *Apps {
	return &Apps{pages: pages, apps: apps, repos: repos, templates: templates}
}

// List renders every application with a link to create a template for it,
// next to the repositories templates have been published to and the
// templates in each.
func (h *Apps) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := h.apps.ListApps(ctx)
	if err != nil {
		slog.Error("list apps", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pages.Page(w, r, "apps_list", &render.PageData{
		Title:   "Applications",
		Section: "apps",
		Data:    map[string]any{"Apps": apps, "Repos": h.repoSummaries(ctx)},
	})
}

// repoSummaries never fails the page; listing errors are logged and the
// affected part is left empty.
func (h *Apps) repoSummaries(ctx context.Context) []RepoSummary {
	repos, err := h.repos.List(ctx)
	if err != nil {
		slog.Warn("list template repos", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
		return nil
	}

	summaries := make([]RepoSummary, 0, len(repos))
	for _, repo := range repos {
		templates, err := h.templates.ListByRepo(ctx, repo.Name)
		if err != nil {
			slog.Warn("list templates by repo", "repo", repo.Name, "error", err,
				"request_id", middleware.RequestIDFromCtx(ctx))
		}
		summaries = append(summaries, RepoSummary{Name: repo.Name, Templates: templates})
	}
	return summaries
}
