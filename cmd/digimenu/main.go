// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the digimenu API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digimenu/internal/cache"
	"digimenu/internal/config"
	"digimenu/internal/database"
	"digimenu/internal/handlers"
	"digimenu/internal/middleware"
	"digimenu/internal/router"
	"digimenu/internal/storage"
	"digimenu/internal/store"
	"digimenu/internal/theme"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	if cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Seed(seedCtx, db)
		cancel()
		if err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Valkey backs the resolved-theme cache, visit counters, and change
	// notifications.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	themeStore := store.NewThemeStore(db)
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	companyStore := store.NewCompanyStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	themeCache := cache.NewThemeCache(valkeyClient, cfg.ThemeCacheTTL, cacheLogStore)
	notifier := cache.NewNotifier(valkeyClient)
	visits := cache.NewVisitorCounter(valkeyClient)

	themeService := theme.NewService(themeStore, themeCache, notifier)
	resolver := theme.NewResolver(themeStore, themeCache)

	// S3-compatible object storage is optional; uploads answer 503 without it.
	var objects handlers.ObjectStorage
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		objects = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	adminHandlers := handlers.NewAdmin(themeService, categoryStore, productStore, companyStore, visits, objects, cacheLogStore)
	publicHandlers := handlers.NewPublic(resolver, notifier, categoryStore, productStore, companyStore, visits, cfg.PublicURL)

	var limiter *middleware.RateLimiter
	if cfg.PublicRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.PublicRateLimit, time.Minute)
		defer limiter.Stop()
	}

	r := router.New(adminHandlers, publicHandlers, router.Options{
		JWTSecret:      cfg.JWTSecret,
		JWTIssuer:      cfg.JWTIssuer,
		RequestTimeout: cfg.RequestTimeout,
		PublicLimiter:  limiter,
	})

	// The theme event stream clears its own write deadline, so WriteTimeout
	// only bounds ordinary responses.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
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
