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

const templateColumns = `id, name, description, keywords, type, documentation, icon,
	repo, file_name, app_id, source, created_at`

// TemplateStore handles all template-related database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// FindByID retrieves a template by its ID. Returns nil if not found.
func (s *TemplateStore) FindByID(ctx context.Context, id int64) (*models.Template, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// Create inserts a new template and returns the stored row.
func (s *TemplateStore) Create(ctx context.Context, t *models.Template) (*models.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO templates (name, description, keywords, type, documentation, icon,
			repo, file_name, app_id, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+templateColumns,
		t.Name, t.Description, t.Keywords, t.Type, t.Documentation, t.Icon,
		t.Repo, t.FileName, t.AppID, t.Source,
	)
	created, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// ListByRepo returns the templates published to a repo, newest first.
func (s *TemplateStore) ListByRepo(ctx context.Context, repo string) ([]models.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+templateColumns+` FROM templates WHERE repo = $1 ORDER BY created_at DESC, id DESC
	`, repo)
	if err != nil {
		return nil, fmt.Errorf("list templates by repo: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*models.Template, error) {
	t := &models.Template{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Keywords, &t.Type, &t.Documentation, &t.Icon,
		&t.Repo, &t.FileName, &t.AppID, &t.Source, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
