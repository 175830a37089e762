package database

import (
	"testing"

	"github.com/pressly/goose/v3"
)

// TestSeed verifies the sample catalog loads once and the second call is
// a no-op.
func TestSeed(t *testing.T) {
	db := testDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	goose.SetBaseFS(nil)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM designs").Scan(&count); err != nil {
		t.Fatalf("count designs: %v", err)
	}
	if count < len(sampleCatalog) {
		t.Errorf("designs count = %d, want at least %d", count, len(sampleCatalog))
	}

	// Second run must not duplicate.
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed() failed: %v", err)
	}
	var after int
	if err := db.QueryRow("SELECT COUNT(*) FROM designs").Scan(&after); err != nil {
		t.Fatalf("count designs: %v", err)
	}
	if after != count {
		t.Errorf("second seed changed design count: %d -> %d", count, after)
	}
}

// TestSampleCatalogShape sanity-checks the fixtures the gallery tests
// depend on: unique slugs, valid styles, JSON tag arrays.
func TestSampleCatalogShape(t *testing.T) {
	styles := map[string]bool{
		"photorealistic": true, "artistic": true, "minimalist": true,
		"vintage": true, "abstract": true,
	}

	seen := make(map[string]bool)
	for _, d := range sampleCatalog {
		if seen[d.slug] {
			t.Errorf("duplicate slug %q", d.slug)
		}
		seen[d.slug] = true

		if !styles[d.style] {
			t.Errorf("design %q has unknown style %q", d.slug, d.style)
		}
		if d.likes < 0 || d.downloads < 0 {
			t.Errorf("design %q has negative counters", d.slug)
		}
	}

	if len(sampleCatalog) != 6 {
		t.Errorf("sample catalog has %d designs, want 6", len(sampleCatalog))
	}
}
