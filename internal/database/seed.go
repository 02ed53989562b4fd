// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// DefaultTypes is the catalog of template types inserted on first start.
var DefaultTypes = []string{
	"Blog",
	"CMS",
	"Database",
	"Development Tools",
	"E-commerce",
	"Monitoring",
	"Web Server",
	"Other",
}

// Seed populates the type catalog when it is empty. Existing catalogs are
// left untouched so operators can curate them.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM template_types").Scan(&count); err != nil {
		return fmt.Errorf("seed check types: %w", err)
	}

	if count > 0 {
		slog.Info("type catalog already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, name := range DefaultTypes {
		if _, err := tx.Exec(
			`INSERT INTO template_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name,
		); err != nil {
			return fmt.Errorf("seed insert type %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("type catalog seeded", "types", len(DefaultTypes))
	return nil
}
