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

// TypeStore reads the catalog of template types.
type TypeStore struct {
	db *sql.DB
}

// NewTypeStore creates a new TypeStore with the given database connection.
func NewTypeStore(db *sql.DB) *TypeStore {
	return &TypeStore{db: db}
}

// All returns every type ordered by name.
func (s *TypeStore) All(ctx context.Context) ([]models.Type, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM template_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	defer rows.Close()

	var types []models.Type
	for rows.Next() {
		var t models.Type
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
