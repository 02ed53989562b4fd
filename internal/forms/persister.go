// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forms

import (
	"context"
	"errors"
	"fmt"

	"templar/internal/githubx"
	"templar/internal/models"
)

// ErrCredentialsRequired is returned when the user has no usable GitHub
// token to publish with.
var ErrCredentialsRequired = errors.New("valid GitHub credentials required")

// TemplateCreator inserts template rows.
type TemplateCreator interface {
	Create(ctx context.Context, t *models.Template) (*models.Template, error)
}

// FilePublisher commits a file to a GitHub repository.
type FilePublisher interface {
	Publish(ctx context.Context, token, repo, path string, content []byte, message string) error
}

// Persister is the Destination used in production: it publishes the
// template file to the user's repository and then stores the record.
type Persister struct {
	templates TemplateCreator
	publisher FilePublisher
}

// NewPersister creates a Persister.
func NewPersister(templates TemplateCreator, publisher FilePublisher) *Persister {
	return &Persister{templates: templates, publisher: publisher}
}

// SaveTemplate publishes and stores t.
func (p *Persister) SaveTemplate(ctx context.Context, t *models.Template, user *models.User) (*models.Template, error) {
	if user == nil || !user.CredsValid() {
		return nil, ErrCredentialsRequired
	}

	msg := fmt.Sprintf("Add template %s", t.Name)
	if err := p.publisher.Publish(ctx, user.GitHubAccessToken, t.Repo, t.FileName, []byte(t.Source), msg); err != nil {
		return nil, fmt.Errorf("publish template: %w", err)
	}

	created, err := p.templates.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("store template: %w", err)
	}
	return created, nil
}

// saveErrorMessage turns a destination error into text for the form.
func saveErrorMessage(err error) string {
	if errors.Is(err, ErrCredentialsRequired) {
		return "A valid GitHub access token is required to publish templates."
	}
	if errors.Is(err, githubx.ErrTokenRejected) {
		return "GitHub rejected your access token. Please update it and try again."
	}
	return "Template could not be saved. Please try again."
}
