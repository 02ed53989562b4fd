// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package githubx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v82/github"
)

// ErrTokenRejected is returned when GitHub answers 401 while publishing.
var ErrTokenRejected = errors.New("github rejected the access token")

// TokenForgetter drops whatever is cached about a token.
// *cache.CredentialCache implements it.
type TokenForgetter interface {
	Forget(ctx context.Context, token string)
}

// Publisher commits template files to GitHub repositories on behalf of a
// user.
type Publisher struct {
	baseURL string
	creds   TokenForgetter // may be nil
}

// NewPublisher creates a publisher for the API at baseURL (empty for
// api.github.com). A token GitHub rejects is dropped from creds so the
// next check asks GitHub again.
func NewPublisher(baseURL string, creds TokenForgetter) *Publisher {
	return &Publisher{baseURL: baseURL, creds: creds}
}

// Publish writes content to path in repo ("owner/name") using token. An
// existing file is replaced; otherwise it is created.
func (p *Publisher) Publish(ctx context.Context, token, repo, path string, content []byte, message string) error {
	err := p.publish(ctx, token, repo, path, content, message)
	if err != nil && isUnauthorized(err) {
		if p.creds != nil {
			p.creds.Forget(ctx, token)
		}
		return fmt.Errorf("%w: %w", ErrTokenRejected, err)
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, token, repo, path string, content []byte, message string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, p.baseURL, token)
	if err != nil {
		return err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
	}

	existing, _, resp, err := client.Repositories.GetContents(ctx, owner, name, path, nil)
	switch {
	case err == nil && existing != nil:
		opts.SHA = github.Ptr(existing.GetSHA())
		if _, _, err := client.Repositories.UpdateFile(ctx, owner, name, path, opts); err != nil {
			return fmt.Errorf("github update %s/%s: %w", repo, path, err)
		}
		slog.Info("template file updated", "repo", repo, "path", path)
		return nil

	case err != nil && (resp == nil || resp.StatusCode != http.StatusNotFound):
		return fmt.Errorf("github get %s/%s: %w", repo, path, err)
	}

	if _, _, err := client.Repositories.CreateFile(ctx, owner, name, path, opts); err != nil {
		return fmt.Errorf("github create %s/%s: %w", repo, path, err)
	}
	slog.Info("template file created", "repo", repo, "path", path)
	return nil
}

func isUnauthorized(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusUnauthorized
}
