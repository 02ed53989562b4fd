// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"templar/internal/models"
)

// TemplateRepoStore is the registry of repositories templates are
// published to.
type TemplateRepoStore struct {
	db *sql.DB
}

// NewTemplateRepoStore creates a new TemplateRepoStore with the given
// database connection.
func NewTemplateRepoStore(db *sql.DB) *TemplateRepoStore {
	return &TemplateRepoStore{db: db}
}

// FindOrCreateByName returns the repo registered under name, registering it
// first when it is unknown. Concurrent calls for the same name converge on
// one row through the unique constraint.
func (s *TemplateRepoStore) FindOrCreateByName(ctx context.Context, name string) (*models.TemplateRepo, error) {
	if name == "" {
		return nil, fmt.Errorf("find or create template repo: empty name")
	}

	// The no-op update makes RETURNING yield the existing row on conflict.
	r := &models.TemplateRepo{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO template_repos (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`, name).Scan(&r.ID, &r.Name, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("find or create template repo: %w", err)
	}
	return r, nil
}

// List returns all registered repos ordered by name.
func (s *TemplateRepoStore) List(ctx context.Context) ([]models.TemplateRepo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM template_repos ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list template repos: %w", err)
	}
	defer rows.Close()

	var repos []models.TemplateRepo
	for rows.Next() {
		var r models.TemplateRepo
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template repo: %w", err)
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}
