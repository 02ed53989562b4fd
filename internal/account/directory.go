// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package account resolves the current user and evaluates their GitHub
// credentials.
package account

import (
	"context"
	"log/slog"

	"templar/internal/models"
)

// UserSource fetches user records. *resource.Client implements it.
type UserSource interface {
	FindUser(ctx context.Context, id string) (*models.User, error)
}

// CredentialChecker classifies a GitHub token.
// *githubx.CredentialChecker implements it.
type CredentialChecker interface {
	Check(ctx context.Context, token string) (models.CredState, error)
}

// Directory looks up users and fills in their credential state.
type Directory struct {
	users   UserSource
	checker CredentialChecker
}

// NewDirectory creates a Directory. checker may be nil, in which case
// stored tokens stay in the unknown state.
func NewDirectory(users UserSource, checker CredentialChecker) *Directory {
	return &Directory{users: users, checker: checker}
}

// FindUser fetches the user and evaluates their credentials. A failed
// credential check is logged and never fails the lookup.
func (d *Directory) FindUser(ctx context.Context, id string) (*models.User, error) {
	u, err := d.users.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if !u.CredsPresent() {
		u.Creds = models.CredStateMissing
		return u, nil
	}
	if d.checker == nil {
		return u, nil
	}

	state, err := d.checker.Check(ctx, u.GitHubAccessToken)
	if err != nil {
		slog.Warn("github credential check failed", "user_id", id, "error", err)
		state = models.CredStateUnknown
	}
	u.Creds = state
	return u, nil
}
