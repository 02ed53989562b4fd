// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package githubx wraps the GitHub API calls Templar needs: checking a
// user's access token and publishing template files to a repository.
package githubx

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// newClient returns a GitHub client authenticated with token. An empty
// baseURL targets api.github.com; anything else is treated as the root of
// a GitHub Enterprise (or test) API.
func newClient(ctx context.Context, baseURL, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := github.NewClient(oauth2.NewClient(ctx, ts))

	if baseURL == "" {
		return c, nil
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("github base url: %w", err)
	}
	c.BaseURL = u
	c.UploadURL = u
	return c, nil
}

// splitRepo splits "owner/name".
func splitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q, want owner/name", repo)
	}
	return owner, name, nil
}
