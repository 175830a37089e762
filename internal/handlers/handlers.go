// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the FlowBotz gallery
// API. Handlers receive their dependencies through the Gallery struct;
// optional backends (database, storage, fulfillment) may be nil and the
// handlers degrade accordingly.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"flowbotz/internal/ai"
	"flowbotz/internal/cache"
	"flowbotz/internal/fulfillment"
	"flowbotz/internal/gallery"
	"flowbotz/internal/session"
	"flowbotz/internal/storage"
	"flowbotz/internal/store"
)

// Gallery groups the gallery API handlers and their dependencies.
type Gallery struct {
	catalog       *gallery.Catalog
	designStore   *store.DesignStore
	orderStore    *store.OrderStore
	galleryCache  *cache.GalleryCache
	sessions      *session.Store
	aiRegistry    *ai.Registry
	storageClient *storage.Client
	fulfillment   fulfillment.Provider
}

// NewGallery creates the gallery handler group. designStore, orderStore,
// galleryCache, storageClient, and fulfillment may be nil; the catalog,
// sessions, and aiRegistry are required.
func NewGallery(catalog *gallery.Catalog, designStore *store.DesignStore, orderStore *store.OrderStore, galleryCache *cache.GalleryCache, sessions *session.Store, aiRegistry *ai.Registry, storageClient *storage.Client, pod fulfillment.Provider) *Gallery {
	return &Gallery{
		catalog:       catalog,
		designStore:   designStore,
		orderStore:    orderStore,
		galleryCache:  galleryCache,
		sessions:      sessions,
		aiRegistry:    aiRegistry,
		storageClient: storageClient,
		fulfillment:   pod,
	}
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// jsonBody encodes v to a byte slice with a trailing newline, matching
// what json.Encoder writes.
func jsonBody(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}
