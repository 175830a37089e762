// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the FlowBotz gallery server.
// It loads configuration, connects to services, builds the in-memory
// catalog, sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowbotz/internal/ai"
	"flowbotz/internal/cache"
	"flowbotz/internal/config"
	"flowbotz/internal/database"
	"flowbotz/internal/fulfillment"
	"flowbotz/internal/gallery"
	"flowbotz/internal/handlers"
	"flowbotz/internal/models"
	"flowbotz/internal/router"
	"flowbotz/internal/session"
	"flowbotz/internal/storage"
	"flowbotz/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if designs already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Sessions carry anonymous visitor state (liked designs). In
	// non-development environments, cookies are HTTPS-only.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize data stores.
	designStore := store.NewDesignStore(db)
	orderStore := store.NewOrderStore(db)

	// Connect to S3-compatible object storage (optional — the gallery
	// works without it, but generation needs a place to put images).
	var storageClient *storage.Client
	if cfg.HasStorage() {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured — image generation disabled")
	}

	// Print-on-demand fulfillment (optional).
	pod, err := fulfillment.New(fulfillment.Config{
		Provider:       cfg.PODProvider,
		PrintfulKey:    cfg.PrintfulKey,
		PrintfulBase:   cfg.PrintfulBase,
		PrintifyKey:    cfg.PrintifyKey,
		PrintifyBase:   cfg.PrintifyBase,
		PrintifyShopID: cfg.PrintifyShopID,
	})
	if err != nil {
		slog.Error("failed to configure fulfillment", "error", err)
		os.Exit(1)
	}
	if pod == nil {
		slog.Warn("fulfillment not configured — cart drafts stay local")
	}

	// Load the in-memory catalog from Postgres. Hooks notify external
	// collaborators; for now they just log the engagement.
	catalog := gallery.New(designStore, gallery.Hooks{
		OnDownload: func(d models.Design) {
			slog.Info("design downloaded", "id", d.ID, "slug", d.Slug, "downloads", d.Downloads)
		},
		OnAddToCart: func(d models.Design) {
			slog.Info("design added to cart", "id", d.ID, "slug", d.Slug)
		},
	})
	if err := catalog.Load(context.Background()); err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	// Gallery query cache (serialized responses in Valkey). Entries from
	// a previous process carry version numbers this process will reuse,
	// so clear them before serving.
	galleryCache := cache.NewGalleryCache(valkeyClient, cache.DefaultGalleryTTL)
	galleryCache.InvalidateAll(context.Background())

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":    {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"stability": {APIKey: cfg.StabilityKey, Model: cfg.StabilityModel, BaseURL: cfg.StabilityBaseURL},
		"together":  {APIKey: cfg.TogetherKey, Model: cfg.TogetherModel, BaseURL: cfg.TogetherBaseURL},
		"claude":    {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	galleryHandlers := handlers.NewGallery(
		catalog, designStore, orderStore, galleryCache,
		sessionStore, aiRegistry, storageClient, pod,
	)

	r := router.New(sessionStore, galleryHandlers)

	// WriteTimeout must accommodate the generation endpoint, which waits
	// on the image provider (typically 10-30s, up to 60s under load).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "designs", catalog.Len())
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
