// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flowbotz/internal/middleware"
	"flowbotz/internal/models"
	"flowbotz/internal/session"
)

// likeResponse is the body of POST /api/designs/{id}/like.
type likeResponse struct {
	ID      uuid.UUID `json:"id"`
	IsLiked bool      `json:"is_liked"`
	Likes   int       `json:"likes"`
}

// Like toggles the visitor's like on a design. The direction comes from
// the visitor's session: liked designs are unliked and vice versa, with
// the counter moving by exactly one either way.
func (g *Gallery) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := g.designID(w, r)
	if !ok {
		return
	}

	sess := g.ensureSession(w, r)
	if sess == nil {
		return
	}

	var design models.Design
	var found bool
	liked := !sess.HasLiked(id)
	if liked {
		design, found = g.catalog.Like(id)
	} else {
		design, found = g.catalog.Unlike(id)
	}
	if !found {
		respondError(w, http.StatusNotFound, "design not found")
		return
	}

	if liked {
		sess.AddLike(id)
	} else {
		sess.RemoveLike(id)
	}
	if g.sessions != nil {
		if err := g.sessions.Update(r.Context(), r, sess); err != nil {
			slog.Error("session update failed", "error", err)
		}
	}

	g.persistLikes(id, liked)

	respondJSON(w, http.StatusOK, likeResponse{ID: design.ID, IsLiked: liked, Likes: design.Likes})
}

// downloadResponse is the body of POST /api/designs/{id}/download.
type downloadResponse struct {
	ID          uuid.UUID `json:"id"`
	DownloadURL string    `json:"download_url"`
	Downloads   int       `json:"downloads"`
}

// Download counts a download and returns the full-size image URL. The
// catalog fires the download hook for external collaborators.
func (g *Gallery) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := g.designID(w, r)
	if !ok {
		return
	}

	design, found := g.catalog.Download(id)
	if !found {
		respondError(w, http.StatusNotFound, "design not found")
		return
	}

	if g.designStore != nil {
		if _, _, err := g.designStore.IncrementDownloads(id); err != nil {
			slog.Error("persist download count failed", "id", id, "error", err)
		}
	}

	respondJSON(w, http.StatusOK, downloadResponse{
		ID:          design.ID,
		DownloadURL: design.ImageURL,
		Downloads:   design.Downloads,
	})
}

// cartRequest is the body of POST /api/designs/{id}/cart.
type cartRequest struct {
	ProductType string `json:"product_type"`
}

// AddToCart records an add-to-cart action and creates a draft order with
// the print-on-demand provider when one is configured. The catalog record
// itself does not change; cart contents live with the external checkout.
func (g *Gallery) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := g.designID(w, r)
	if !ok {
		return
	}

	// An empty body means defaults; anything else must be valid JSON.
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductType == "" {
		req.ProductType = "t-shirt"
	}

	design, found := g.catalog.AddToCart(id)
	if !found {
		respondError(w, http.StatusNotFound, "design not found")
		return
	}

	draft := &models.OrderDraft{
		DesignID:    design.ID,
		ProductType: req.ProductType,
		Status:      models.OrderDraftPending,
	}

	if g.fulfillment != nil {
		draft.Provider = g.fulfillment.Name()
		externalID, err := g.fulfillment.CreateOrderDraft(r.Context(), design, req.ProductType)
		if err != nil {
			slog.Error("fulfillment draft failed", "id", id, "provider", draft.Provider, "error", err)
			draft.Status = models.OrderDraftFailed
		} else {
			draft.ExternalID = &externalID
			draft.Status = models.OrderDraftSubmitted
		}
	}

	if g.orderStore != nil {
		created, err := g.orderStore.Create(draft)
		if err != nil {
			slog.Error("persist order draft failed", "id", id, "error", err)
		} else {
			draft = created
		}
	}

	respondJSON(w, http.StatusCreated, draft)
}

// designID parses the {id} route parameter, writing a 404 for anything
// that is not a UUID. Slugs are accepted on the detail route only.
func (g *Gallery) designID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "design not found")
		return uuid.Nil, false
	}
	return id, true
}

// ensureSession returns the visitor's session, creating one on first
// engagement. Without a session backend the like state lives only for
// this request. Returns nil after writing an error response.
func (g *Gallery) ensureSession(w http.ResponseWriter, r *http.Request) *session.Data {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		return sess
	}
	if g.sessions == nil {
		return &session.Data{VisitorID: uuid.New(), CreatedAt: time.Now()}
	}
	sess, err := g.sessions.Create(r.Context(), w)
	if err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "session unavailable")
		return nil
	}
	// Make the fresh session visible to Update via the request cookie.
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionCookieValue(w)})
	return sess
}

// sessionCookieValue extracts the just-set session cookie from the
// response headers.
func sessionCookieValue(w http.ResponseWriter) string {
	resp := http.Response{Header: w.Header()}
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	return ""
}

// persistLikes writes the like delta through to Postgres when a database
// is configured. The catalog is authoritative for the running process;
// the write-through keeps restarts from losing engagement.
func (g *Gallery) persistLikes(id uuid.UUID, liked bool) {
	if g.designStore == nil {
		return
	}
	delta := 1
	if !liked {
		delta = -1
	}
	if _, _, err := g.designStore.AdjustLikes(id, delta); err != nil {
		slog.Error("persist like failed", "id", id, "error", err)
	}
}
