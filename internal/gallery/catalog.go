// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"flowbotz/internal/models"
)

// Provider supplies the design collection the catalog loads from. The
// production provider is the Postgres design store; tests inject fixtures
// through StaticProvider.
type Provider interface {
	Designs(ctx context.Context) ([]models.Design, error)
}

// StaticProvider serves a fixed design slice. Used for tests and for
// running the service without a database.
type StaticProvider []models.Design

// Designs returns the fixed slice.
func (p StaticProvider) Designs(_ context.Context) ([]models.Design, error) {
	return p, nil
}

// Hooks are the integration points for external collaborators. OnDownload
// is fired after a download is counted; OnAddToCart when a design enters
// the cart. Either may be nil. Hooks run synchronously under no lock, so
// they may call back into the catalog.
type Hooks struct {
	OnDownload  func(models.Design)
	OnAddToCart func(models.Design)
}

// Catalog holds the in-memory design collection for the life of the
// process. All reads return copies; all mutations happen under one lock
// so is_liked and the likes counter can never be observed out of step.
type Catalog struct {
	mu       sync.RWMutex
	designs  []models.Design
	index    map[uuid.UUID]int
	version  uint64 // bumped on every mutation; cache keys include it
	provider Provider
	hooks    Hooks
}

// New creates an empty catalog that loads from provider.
func New(provider Provider, hooks Hooks) *Catalog {
	return &Catalog{
		index:    make(map[uuid.UUID]int),
		provider: provider,
		hooks:    hooks,
	}
}

// Load replaces the catalog contents from the provider. Malformed records
// and duplicate ids are dropped with a warning rather than failing the
// load — a bad row should never take the gallery down.
func (c *Catalog) Load(ctx context.Context) error {
	designs, err := c.provider.Designs(ctx)
	if err != nil {
		return fmt.Errorf("catalog load: %w", err)
	}

	kept := make([]models.Design, 0, len(designs))
	index := make(map[uuid.UUID]int, len(designs))
	for _, d := range designs {
		if err := d.Validate(); err != nil {
			slog.Warn("dropping malformed design", "id", d.ID, "error", err)
			continue
		}
		if _, dup := index[d.ID]; dup {
			slog.Warn("dropping duplicate design id", "id", d.ID)
			continue
		}
		index[d.ID] = len(kept)
		kept = append(kept, d)
	}

	c.mu.Lock()
	c.designs = kept
	c.index = index
	c.version++
	c.mu.Unlock()

	slog.Info("catalog loaded", "designs", len(kept), "dropped", len(designs)-len(kept))
	return nil
}

// Designs returns a copy of the catalog in insertion order.
func (c *Catalog) Designs() []models.Design {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Design, len(c.designs))
	copy(out, c.designs)
	return out
}

// Len returns the number of designs in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.designs)
}

// Version returns a counter that changes on every catalog mutation.
// Query caches embed it in their keys so stale views expire immediately.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Get returns a copy of the design with the given id.
func (c *Catalog) Get(id uuid.UUID) (models.Design, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return models.Design{}, false
	}
	return c.designs[i], true
}

// Add appends a freshly generated design to the catalog. Rejects
// malformed records and duplicate ids.
func (c *Catalog) Add(d models.Design) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("catalog add: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.index[d.ID]; dup {
		return fmt.Errorf("catalog add: duplicate id %s", d.ID)
	}
	c.index[d.ID] = len(c.designs)
	c.designs = append(c.designs, d)
	c.version++
	return nil
}

// ToggleLike flips the like state of the design, moving the likes counter
// by exactly one in the same critical section. Unknown ids are a no-op;
// the second return value tells the caller whether the design existed.
func (c *Catalog) ToggleLike(id uuid.UUID) (models.Design, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return models.Design{}, false
	}
	c.designs[i].ToggleLike()
	c.version++
	return c.designs[i], true
}

// Like increments the likes counter without touching the is_liked flag.
// The HTTP layer uses it when like direction comes from the visitor
// session rather than the record itself.
func (c *Catalog) Like(id uuid.UUID) (models.Design, bool) {
	return c.adjustLikes(id, 1)
}

// Unlike decrements the likes counter, clamped at zero.
func (c *Catalog) Unlike(id uuid.UUID) (models.Design, bool) {
	return c.adjustLikes(id, -1)
}

func (c *Catalog) adjustLikes(id uuid.UUID, delta int) (models.Design, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return models.Design{}, false
	}
	c.designs[i].Likes += delta
	if c.designs[i].Likes < 0 {
		c.designs[i].Likes = 0
	}
	c.version++
	return c.designs[i], true
}

// Download increments the downloads counter and fires the OnDownload
// hook with the updated record. Unknown ids are a no-op.
func (c *Catalog) Download(id uuid.UUID) (models.Design, bool) {
	c.mu.Lock()
	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return models.Design{}, false
	}
	c.designs[i].Downloads++
	c.version++
	d := c.designs[i]
	c.mu.Unlock()

	if c.hooks.OnDownload != nil {
		c.hooks.OnDownload(d)
	}
	return d, true
}

// AddToCart fires the OnAddToCart hook with the current record state.
// Cart contents live with the external checkout collaborator, so the
// catalog itself does not change.
func (c *Catalog) AddToCart(id uuid.UUID) (models.Design, bool) {
	d, ok := c.Get(id)
	if !ok {
		return models.Design{}, false
	}
	if c.hooks.OnAddToCart != nil {
		c.hooks.OnAddToCart(d)
	}
	return d, true
}
