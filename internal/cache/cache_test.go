// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"templar/internal/models"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, credsKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestCredsKeyDoesNotContainToken(t *testing.T) {
	token := "ghp_supersecret"
	key := credsKey(token)

	if !strings.HasPrefix(key, credsKeyPrefix) {
		t.Errorf("key %q missing prefix %q", key, credsKeyPrefix)
	}
	if strings.Contains(key, token) {
		t.Errorf("key %q leaks the token", key)
	}
	if credsKey(token) != key {
		t.Error("key derivation is not deterministic")
	}
	if credsKey("other") == key {
		t.Error("different tokens produced the same key")
	}
}

func TestCredentialCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCredentialCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := cc.Get(ctx, "tok-valid"); ok {
		t.Fatal("expected miss before Set")
	}

	cc.Set(ctx, "tok-valid", models.CredStateValid)
	state, ok := cc.Get(ctx, "tok-valid")
	if !ok || state != models.CredStateValid {
		t.Errorf("Get: got (%q, %v), want (valid, true)", state, ok)
	}

	cc.Forget(ctx, "tok-valid")
	if _, ok := cc.Get(ctx, "tok-valid"); ok {
		t.Error("expected miss after Forget")
	}
}

func TestCredentialCacheIgnoresIndefiniteStates(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCredentialCache(client, time.Minute)
	ctx := context.Background()

	cc.Set(ctx, "tok-unknown", models.CredStateUnknown)
	cc.Set(ctx, "tok-missing", models.CredStateMissing)

	if _, ok := cc.Get(ctx, "tok-unknown"); ok {
		t.Error("unknown state should not be cached")
	}
	if _, ok := cc.Get(ctx, "tok-missing"); ok {
		t.Error("missing state should not be cached")
	}
}

func TestCredentialCacheExpires(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCredentialCache(client, time.Second)
	ctx := context.Background()

	cc.Set(ctx, "tok-expiring", models.CredStateInvalid)
	ttl, err := client.TTL(ctx, credsKey("tok-expiring")).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Second {
		t.Errorf("TTL: got %s, want (0, 1s]", ttl)
	}
}

func TestNewCredentialCacheDefaultTTL(t *testing.T) {
	cc := NewCredentialCache(nil, 0)
	if cc.ttl != DefaultCredsTTL {
		t.Errorf("ttl: got %s, want %s", cc.ttl, DefaultCredsTTL)
	}
}
