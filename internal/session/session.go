// Package session provides Valkey-backed HTTP session management for
// anonymous gallery visitors. Sessions are identified by a secure cookie
// and stored as JSON in Valkey with automatic TTL expiry. Accounts and
// authentication live with an external identity provider; the session
// here only carries visitor-local state such as which designs are liked.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "fb_session"

	// DefaultTTL is how long a session lives in Valkey before automatic expiry.
	DefaultTTL = 30 * 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload stored in Valkey: the visitor's identity
// and the set of design ids they have liked.
type Data struct {
	VisitorID uuid.UUID   `json:"visitor_id"`
	Liked     []uuid.UUID `json:"liked,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// HasLiked reports whether the visitor has liked the design.
func (d *Data) HasLiked(id uuid.UUID) bool {
	for _, liked := range d.Liked {
		if liked == id {
			return true
		}
	}
	return false
}

// AddLike records a liked design id. Idempotent.
func (d *Data) AddLike(id uuid.UUID) {
	if !d.HasLiked(id) {
		d.Liked = append(d.Liked, id)
	}
}

// RemoveLike forgets a liked design id.
func (d *Data) RemoveLike(id uuid.UUID) {
	for i, liked := range d.Liked {
		if liked == id {
			d.Liked = append(d.Liked[:i], d.Liked[i+1:]...)
			return
		}
	}
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// secure marks cookies HTTPS-only; disable it only in development.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
		secure: secure,
	}
}

// Create generates a new session, stores it in Valkey, and sets the
// session cookie on the response. Returns the session data.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter) (*Data, error) {
	id, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}

	data := &Data{
		VisitorID: uuid.New(),
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return data, nil
}

// Get retrieves session data from Valkey using the session ID from the
// request cookie. Returns nil if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil // No cookie = no session (not an error)
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err == redis.Nil {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	return &data, nil
}

// Update replaces the session data in Valkey without changing the session
// ID or cookie. Resets the TTL.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return fmt.Errorf("session update: no cookie")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+cookie.Value, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session update: %w", err)
	}

	return nil
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	s.client.Del(ctx, keyPrefix+cookie.Value)

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
