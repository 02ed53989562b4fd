// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package githubx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"templar/internal/models"
)

// StateCache stores definitive credential states keyed by token.
// *cache.CredentialCache implements it.
type StateCache interface {
	Get(ctx context.Context, token string) (models.CredState, bool)
	Set(ctx context.Context, token string, state models.CredState)
}

// CredentialChecker decides whether a GitHub token is usable for
// publishing templates.
type CredentialChecker struct {
	baseURL       string
	requiredScope string
	cache         StateCache // may be nil
}

// NewCredentialChecker creates a checker. requiredScope is the OAuth scope
// the token must carry, e.g. "repo"; empty disables the scope check.
func NewCredentialChecker(baseURL, requiredScope string, cache StateCache) *CredentialChecker {
	return &CredentialChecker{
		baseURL:       baseURL,
		requiredScope: requiredScope,
		cache:         cache,
	}
}

// Check returns CredStateValid or CredStateInvalid for token. Transport or
// server failures return CredStateUnknown together with the error.
func (c *CredentialChecker) Check(ctx context.Context, token string) (models.CredState, error) {
	if token == "" {
		return models.CredStateMissing, nil
	}

	if c.cache != nil {
		if state, ok := c.cache.Get(ctx, token); ok {
			return state, nil
		}
	}

	client, err := newClient(ctx, c.baseURL, token)
	if err != nil {
		return models.CredStateUnknown, err
	}

	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			c.remember(ctx, token, models.CredStateInvalid)
			return models.CredStateInvalid, nil
		}
		return models.CredStateUnknown, fmt.Errorf("github check token: %w", err)
	}

	state := models.CredStateValid
	if !hasScope(resp.Header.Get("X-OAuth-Scopes"), c.requiredScope) {
		slog.Info("github token lacks required scope",
			"login", user.GetLogin(),
			"scopes", resp.Header.Get("X-OAuth-Scopes"),
			"required", c.requiredScope,
		)
		state = models.CredStateInvalid
	}

	c.remember(ctx, token, state)
	return state, nil
}

func (c *CredentialChecker) remember(ctx context.Context, token string, state models.CredState) {
	if c.cache != nil {
		c.cache.Set(ctx, token, state)
	}
}

// hasScope reports whether the X-OAuth-Scopes header grants required.
// Fine-grained tokens send no header at all and are accepted; their
// permissions are enforced by GitHub when publishing.
func hasScope(header, required string) bool {
	if required == "" || header == "" {
		return true
	}
	for _, s := range strings.Split(header, ",") {
		s = strings.TrimSpace(s)
		if s == required {
			return true
		}
		// "repo" is a superset of "public_repo".
		if s == "repo" && required == "public_repo" {
			return true
		}
	}
	return false
}
