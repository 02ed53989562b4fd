// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"templar/internal/models"
)

const (
	// credsKeyPrefix is the Valkey key prefix for cached credential checks.
	credsKeyPrefix = "creds:"

	// DefaultCredsTTL is how long a check result is trusted.
	DefaultCredsTTL = 10 * time.Minute
)

// CredentialCache remembers the outcome of GitHub token checks so pages do
// not hit the GitHub API on every render. Tokens are never stored; keys are
// derived from a BLAKE2b digest of the token.
type CredentialCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCredentialCache creates a cache backed by the given Valkey client.
func NewCredentialCache(client *redis.Client, ttl time.Duration) *CredentialCache {
	if ttl == 0 {
		ttl = DefaultCredsTTL
	}
	return &CredentialCache{client: client, ttl: ttl}
}

// Get returns the cached state for token. Only definitive states (valid or
// invalid) are ever stored.
func (c *CredentialCache) Get(ctx context.Context, token string) (models.CredState, bool) {
	val, err := c.client.Get(ctx, credsKey(token)).Result()
	if err == redis.Nil {
		return models.CredStateUnknown, false
	}
	if err != nil {
		slog.Warn("credential cache get error", "error", err)
		return models.CredStateUnknown, false
	}

	state := models.CredState(val)
	if state != models.CredStateValid && state != models.CredStateInvalid {
		return models.CredStateUnknown, false
	}
	slog.Debug("credential cache hit", "state", state)
	return state, true
}

// Set stores the state for token with the configured TTL.
func (c *CredentialCache) Set(ctx context.Context, token string, state models.CredState) {
	if state != models.CredStateValid && state != models.CredStateInvalid {
		return
	}
	if err := c.client.Set(ctx, credsKey(token), string(state), c.ttl).Err(); err != nil {
		slog.Warn("credential cache set error", "error", err)
	}
}

// Forget drops the cached state for token. The publisher calls it when
// GitHub rejects a token the cache still considers valid.
func (c *CredentialCache) Forget(ctx context.Context, token string) {
	if err := c.client.Del(ctx, credsKey(token)).Err(); err != nil {
		slog.Warn("credential cache delete error", "error", err)
	}
}

func credsKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return credsKeyPrefix + hex.EncodeToString(sum[:])
}
