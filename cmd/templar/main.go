// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Templar server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"templar/internal/account"
	"templar/internal/cache"
	"templar/internal/config"
	"templar/internal/database"
	"templar/internal/forms"
	"templar/internal/githubx"
	"templar/internal/handlers"
	"templar/internal/middleware"
	"templar/internal/render"
	"templar/internal/resource"
	"templar/internal/router"
	"templar/internal/session"
	"templar/internal/store"
	"templar/web"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("APP_ENV") == "development" || os.Getenv("APP_ENV") == "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"resource_api", cfg.ResourceAPIURL,
	)

	db, err := database.Connect(context.Background(), cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Template types are reference data; seeding is a no-op once present.
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Outside development, cookies are HTTPS-only.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to load static assets", "error", err)
		os.Exit(1)
	}

	// Remote services.
	resources := resource.NewClient(cfg.ResourceAPIURL, cfg.ResourceAPITimeout)
	credsCache := cache.NewCredentialCache(valkeyClient, cfg.CredsCacheTTL)
	checker := githubx.NewCredentialChecker(cfg.GitHubAPIURL, cfg.GitHubRequiredScope, credsCache)
	directory := account.NewDirectory(resources, checker)
	publisher := githubx.NewPublisher(cfg.GitHubAPIURL, credsCache)

	// Data stores.
	typeStore := store.NewTypeStore(db)
	repoStore := store.NewTemplateRepoStore(db)
	templateStore := store.NewTemplateStore(db)

	persister := forms.NewPersister(templateStore, publisher)

	limiter := middleware.NewRateLimiter(cfg.PublishRateLimit, time.Minute)
	defer limiter.Stop()

	r := router.New(router.Deps{
		Sessions:       sessionStore,
		DefaultUserID:  cfg.DefaultUserID,
		SecureCookies:  secureCookies,
		PublishLimiter: limiter,
		Static:         static,
		Apps:           handlers.NewApps(renderer, resources, repoStore, templateStore),
		Templates: handlers.NewTemplates(
			renderer, sessionStore, directory, resources,
			typeStore, repoStore, templateStore, persister,
		),
	})

	// WriteTimeout covers a submission that waits on both the resource API
	// and the GitHub contents API.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
