// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"flowbotz/internal/imaging"
	"flowbotz/internal/models"
	"flowbotz/internal/slug"
)

// generateRequest is the body of POST /api/designs/generate.
type generateRequest struct {
	Prompt string   `json:"prompt"`
	Style  string   `json:"style"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
}

// Generate runs the full generation pipeline: moderate the prompt,
// enhance it with the text provider, generate the image with the active
// image provider, build a thumbnail, upload both to storage, persist the
// design, and publish it to the catalog.
func (g *Gallery) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	style := models.Style(req.Style)
	if req.Style == "" {
		style = models.StylePhotorealistic
	}
	if !style.Valid() {
		respondError(w, http.StatusBadRequest, "unknown style")
		return
	}

	if !g.aiRegistry.SupportsImageGeneration() {
		respondError(w, http.StatusServiceUnavailable, "no image provider configured")
		return
	}
	if g.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	mod, err := g.aiRegistry.CheckPrompt(r.Context(), req.Prompt)
	if err != nil {
		slog.Error("prompt moderation failed", "error", err)
		respondError(w, http.StatusBadGateway, "moderation unavailable")
		return
	}
	if !mod.Safe {
		respondError(w, http.StatusUnprocessableEntity, mod.Reason())
		return
	}

	prompt, err := g.aiRegistry.EnhancePrompt(r.Context(), req.Prompt, string(style))
	if err != nil {
		slog.Warn("prompt enhancement failed, using original", "error", err)
		prompt = req.Prompt
	}

	imgBytes, contentType, err := g.aiRegistry.GenerateImage(r.Context(), prompt)
	if err != nil {
		slog.Error("image generation failed", "provider", g.aiRegistry.ActiveName(), "error", err)
		respondError(w, http.StatusBadGateway, "image generation failed")
		return
	}

	thumb, err := imaging.Thumbnail(imgBytes)
	if err != nil {
		slog.Error("thumbnail generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "image processing failed")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = titleFromPrompt(req.Prompt)
	}

	designSlug, err := slug.Unique(r.Context(), title, g.slugTaken)
	if err != nil {
		slog.Error("slug generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "slug generation failed")
		return
	}

	id := uuid.New()
	imageURL, thumbURL, err := g.storageClient.UploadDesignImage(r.Context(), id, imgBytes, thumb, contentType)
	if err != nil {
		slog.Error("design upload failed", "id", id, "error", err)
		respondError(w, http.StatusBadGateway, "image upload failed")
		return
	}

	design := models.Design{
		ID:       id,
		Title:    title,
		Slug:     designSlug,
		Prompt:   req.Prompt,
		ImageURL: imageURL,
		ThumbURL: &thumbURL,
		Model:    g.aiRegistry.ActiveName(),
		Style:    style,
		Tags:     req.Tags,
	}

	if g.designStore != nil {
		created, err := g.designStore.Create(&design)
		if err != nil {
			slog.Error("persist design failed", "error", err)
			respondError(w, http.StatusInternalServerError, "persist design failed")
			return
		}
		design = *created
	} else {
		now := time.Now()
		design.CreatedAt = now
		design.UpdatedAt = now
	}

	if err := g.catalog.Add(design); err != nil {
		slog.Error("catalog add failed", "id", design.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "catalog update failed")
		return
	}

	slog.Info("design generated",
		"id", design.ID,
		"slug", design.Slug,
		"style", design.Style,
		"provider", design.Model,
	)
	respondJSON(w, http.StatusCreated, design)
}

// slugTaken reports whether a slug is already in use, against Postgres
// when configured and the in-memory catalog otherwise.
func (g *Gallery) slugTaken(ctx context.Context, s string) (bool, error) {
	if g.designStore != nil {
		existing, err := g.designStore.FindBySlug(s)
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	}
	_, found := g.findBySlug(s)
	return found, nil
}

// titleFromPrompt derives a display title from the first words of the
// prompt when the caller did not supply one.
func titleFromPrompt(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 6 {
		words = words[:6]
	}
	title := strings.Join(words, " ")
	if title == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(first)) + title[size:]
}
