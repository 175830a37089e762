// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flowbotz/internal/cache"
	"flowbotz/internal/gallery"
	"flowbotz/internal/middleware"
	"flowbotz/internal/models"
	"flowbotz/internal/session"
)

// listResponse is the body of GET /api/designs.
type listResponse struct {
	Designs []models.Design `json:"designs"`
	Total   int             `json:"total"`
}

// List serves the gallery view. Query parameters:
//
//	q      free-text search over title, prompt, and tags
//	style  one of the style filters, or "all"
//	sort   recent (default), popular, liked, or downloads
//
// Results for visitors without likes are cached in Valkey keyed by the
// catalog version; visitors with liked designs get a personalised
// is_liked flag and bypass the cache.
func (g *Gallery) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	style, err := models.ParseStyle(r.URL.Query().Get("style"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sortKey, err := models.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	cacheable := g.galleryCache != nil && (sess == nil || len(sess.Liked) == 0)

	var cacheKey string
	if cacheable {
		cacheKey = cache.QueryKey(g.catalog.Version(), q, string(style), string(sortKey))
		if body, hit := g.galleryCache.Get(r.Context(), cacheKey); hit {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	designs := gallery.Query(g.catalog.Designs(), gallery.Options{
		Search: q,
		Style:  style,
		Sort:   sortKey,
	})
	markLiked(designs, sess)

	if cacheable {
		g.respondCached(w, r, cacheKey, listResponse{Designs: designs, Total: len(designs)})
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Designs: designs, Total: len(designs)})
}

// Detail serves one design by id or slug.
func (g *Gallery) Detail(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")

	var design models.Design
	var found bool
	if id, err := uuid.Parse(ref); err == nil {
		design, found = g.catalog.Get(id)
	} else {
		design, found = g.findBySlug(ref)
	}
	if !found {
		respondError(w, http.StatusNotFound, "design not found")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	design.IsLiked = sess != nil && sess.HasLiked(design.ID)
	respondJSON(w, http.StatusOK, design)
}

// styleCount is one entry in the styles filter response.
type styleCount struct {
	Style models.Style `json:"style"`
	Count int          `json:"count"`
}

// Styles serves the filter chips: every style with its design count,
// plus the "all" pseudo-style covering the whole catalog.
func (g *Gallery) Styles(w http.ResponseWriter, r *http.Request) {
	counts := make(map[models.Style]int)
	for _, d := range g.catalog.Designs() {
		counts[d.Style]++
	}

	out := []styleCount{{Style: models.StyleAll, Count: g.catalog.Len()}}
	for style, n := range counts {
		out = append(out, styleCount{Style: style, Count: n})
	}
	sort.Slice(out[1:], func(i, j int) bool {
		return out[i+1].Style < out[j+1].Style
	})

	respondJSON(w, http.StatusOK, map[string]any{"styles": out})
}

// findBySlug scans the catalog for a design with the given share slug.
func (g *Gallery) findBySlug(slug string) (models.Design, bool) {
	for _, d := range g.catalog.Designs() {
		if d.Slug == slug {
			return d, true
		}
	}
	return models.Design{}, false
}

// markLiked sets the per-visitor is_liked flag on the result copies.
func markLiked(designs []models.Design, sess *session.Data) {
	if sess == nil || len(sess.Liked) == 0 {
		return
	}
	for i := range designs {
		designs[i].IsLiked = sess.HasLiked(designs[i].ID)
	}
}

// respondCached writes the response and stores the encoded body for the
// next visitor with the same query.
func (g *Gallery) respondCached(w http.ResponseWriter, r *http.Request, key string, resp listResponse) {
	body, err := jsonBody(resp)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "encode response failed")
		return
	}
	g.galleryCache.Set(r.Context(), key, body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
