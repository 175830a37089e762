package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"flowbotz/internal/models"
)

// errProvider always fails, for exercising the load error path.
type errProvider struct{}

func (errProvider) Designs(context.Context) ([]models.Design, error) {
	return nil, errors.New("boom")
}

func loadedCatalog(t *testing.T, hooks Hooks) (*Catalog, []models.Design) {
	t.Helper()
	designs := sampleDesigns()
	c := New(StaticProvider(designs), hooks)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return c, designs
}

func TestCatalogLoad(t *testing.T) {
	c, designs := loadedCatalog(t, Hooks{})
	if c.Len() != len(designs) {
		t.Fatalf("Len() = %d, want %d", c.Len(), len(designs))
	}

	// Insertion order survives the load.
	got := c.Designs()
	for i := range designs {
		if got[i].ID != designs[i].ID {
			t.Errorf("design %d out of order", i)
		}
	}
}

// TestCatalogLoadDropsMalformed: bad rows are skipped with a warning, not
// fatal — a broken record must never take the gallery down.
func TestCatalogLoadDropsMalformed(t *testing.T) {
	designs := sampleDesigns()
	designs[2].Style = "cubist"    // unknown style
	designs[4].ImageURL = ""       // missing required field
	designs[5].ID = designs[0].ID  // duplicate id

	c := New(StaticProvider(designs), Hooks{})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3 after dropping malformed records", c.Len())
	}
}

func TestCatalogLoadProviderError(t *testing.T) {
	c := New(errProvider{}, Hooks{})
	if err := c.Load(context.Background()); err == nil {
		t.Fatal("Load() = nil, want provider error")
	}
}

// TestCatalogToggleLike: the like round trip. 5 likes, toggle on gives 6
// and liked, toggle off gives 5 and not liked.
func TestCatalogToggleLike(t *testing.T) {
	c, designs := loadedCatalog(t, Hooks{})
	id := designs[0].ID
	before := designs[0].Likes

	d, ok := c.ToggleLike(id)
	if !ok {
		t.Fatal("ToggleLike returned ok=false for existing id")
	}
	if !d.IsLiked || d.Likes != before+1 {
		t.Fatalf("after toggle on: IsLiked=%v Likes=%d, want true %d", d.IsLiked, d.Likes, before+1)
	}

	d, _ = c.ToggleLike(id)
	if d.IsLiked || d.Likes != before {
		t.Fatalf("after toggle off: IsLiked=%v Likes=%d, want false %d", d.IsLiked, d.Likes, before)
	}
}

// TestCatalogToggleLikeUnknownID: unknown ids are a silent no-op at the
// library level; the boolean lets callers fail loudly if they choose.
func TestCatalogToggleLikeUnknownID(t *testing.T) {
	c, _ := loadedCatalog(t, Hooks{})
	before := c.Version()

	if _, ok := c.ToggleLike(uuid.New()); ok {
		t.Fatal("ToggleLike returned ok=true for unknown id")
	}
	if c.Version() != before {
		t.Error("unknown-id toggle bumped the catalog version")
	}
}

func TestCatalogLikeUnlike(t *testing.T) {
	c, designs := loadedCatalog(t, Hooks{})
	id := designs[1].ID
	before := designs[1].Likes

	if d, _ := c.Like(id); d.Likes != before+1 {
		t.Errorf("Like: Likes = %d, want %d", d.Likes, before+1)
	}
	if d, _ := c.Unlike(id); d.Likes != before {
		t.Errorf("Unlike: Likes = %d, want %d", d.Likes, before)
	}
}

// TestCatalogUnlikeClampsAtZero: the likes counter never goes negative.
func TestCatalogUnlikeClampsAtZero(t *testing.T) {
	designs := []models.Design{{
		ID: uuid.New(), Title: "zero", ImageURL: "x", Style: models.StyleArtistic,
	}}
	c := New(StaticProvider(designs), Hooks{})
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	d, _ := c.Unlike(designs[0].ID)
	if d.Likes != 0 {
		t.Errorf("Likes = %d, want 0", d.Likes)
	}
}

// TestCatalogDownload: counter increments and the hook fires with the
// updated record.
func TestCatalogDownload(t *testing.T) {
	var hooked *models.Design
	c, designs := loadedCatalog(t, Hooks{
		OnDownload: func(d models.Design) { hooked = &d },
	})
	id := designs[0].ID
	before := designs[0].Downloads

	d, ok := c.Download(id)
	if !ok {
		t.Fatal("Download returned ok=false for existing id")
	}
	if d.Downloads != before+1 {
		t.Errorf("Downloads = %d, want %d", d.Downloads, before+1)
	}
	if hooked == nil {
		t.Fatal("OnDownload hook did not fire")
	}
	if hooked.Downloads != before+1 {
		t.Errorf("hook saw Downloads = %d, want %d", hooked.Downloads, before+1)
	}
}

// TestCatalogAddToCart: the hook fires but catalog state is untouched —
// cart contents belong to the external checkout collaborator.
func TestCatalogAddToCart(t *testing.T) {
	var hooked bool
	c, designs := loadedCatalog(t, Hooks{
		OnAddToCart: func(models.Design) { hooked = true },
	})
	before := c.Version()

	if _, ok := c.AddToCart(designs[0].ID); !ok {
		t.Fatal("AddToCart returned ok=false for existing id")
	}
	if !hooked {
		t.Error("OnAddToCart hook did not fire")
	}
	if c.Version() != before {
		t.Error("AddToCart mutated the catalog")
	}

	if _, ok := c.AddToCart(uuid.New()); ok {
		t.Error("AddToCart returned ok=true for unknown id")
	}
}

func TestCatalogAdd(t *testing.T) {
	c, _ := loadedCatalog(t, Hooks{})
	n := c.Len()

	d := models.Design{
		ID: uuid.New(), Title: "Fresh Generation", ImageURL: "https://cdn.flowbotz.test/fresh.png",
		Style: models.StyleVintage,
	}
	if err := c.Add(d); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if c.Len() != n+1 {
		t.Errorf("Len() = %d, want %d", c.Len(), n+1)
	}
	if _, ok := c.Get(d.ID); !ok {
		t.Error("added design not retrievable by id")
	}

	// Duplicate and malformed adds are rejected.
	if err := c.Add(d); err == nil {
		t.Error("Add() accepted a duplicate id")
	}
	if err := c.Add(models.Design{ID: uuid.New()}); err == nil {
		t.Error("Add() accepted a malformed design")
	}
}

// TestCatalogVersionChangesOnMutation: caches key on the version, so every
// engagement mutation must bump it.
func TestCatalogVersionChangesOnMutation(t *testing.T) {
	c, designs := loadedCatalog(t, Hooks{})
	id := designs[0].ID

	v := c.Version()
	c.ToggleLike(id)
	if c.Version() == v {
		t.Error("ToggleLike did not bump version")
	}

	v = c.Version()
	c.Download(id)
	if c.Version() == v {
		t.Error("Download did not bump version")
	}

	v = c.Version()
	c.Designs()
	c.Get(id)
	if c.Version() != v {
		t.Error("reads bumped the version")
	}
}
