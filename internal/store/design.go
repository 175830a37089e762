// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"flowbotz/internal/models"
)

// DesignStore handles all design-related database operations. It also
// implements gallery.Provider, so the in-memory catalog loads straight
// from Postgres.
type DesignStore struct {
	db *sql.DB
}

// NewDesignStore creates a new DesignStore with the given database connection.
func NewDesignStore(db *sql.DB) *DesignStore {
	return &DesignStore{db: db}
}

// designColumns lists the columns selected in design queries.
const designColumns = `id, title, slug, prompt, image_url, thumb_url, model,
	style, tags, likes, downloads, created_at, updated_at`

// scanDesign scans a design row from the result set. Tags are stored as a
// JSONB array and decoded here.
func scanDesign(scanner interface{ Scan(...any) error }) (*models.Design, error) {
	var d models.Design
	var tags []byte
	err := scanner.Scan(
		&d.ID, &d.Title, &d.Slug, &d.Prompt, &d.ImageURL, &d.ThumbURL, &d.Model,
		&d.Style, &tags, &d.Likes, &d.Downloads, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &d.Tags); err != nil {
			return nil, fmt.Errorf("decode design tags: %w", err)
		}
	}
	return &d, nil
}

// Designs returns the full catalog in insertion order (oldest first).
// This satisfies gallery.Provider.
func (s *DesignStore) Designs(ctx context.Context) ([]models.Design, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+designColumns+`
		FROM designs
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	var items []models.Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// FindByID retrieves a single design by its UUID. Returns nil if not found.
func (s *DesignStore) FindByID(id uuid.UUID) (*models.Design, error) {
	row := s.db.QueryRow(`SELECT `+designColumns+` FROM designs WHERE id = $1`, id)
	d, err := scanDesign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find design by id: %w", err)
	}
	return d, nil
}

// FindBySlug retrieves a design by its share slug. Returns nil if not found.
func (s *DesignStore) FindBySlug(slug string) (*models.Design, error) {
	row := s.db.QueryRow(`SELECT `+designColumns+` FROM designs WHERE slug = $1`, slug)
	d, err := scanDesign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find design by slug: %w", err)
	}
	return d, nil
}

// Create inserts a new design and returns it with the generated ID and
// timestamps.
func (s *DesignStore) Create(d *models.Design) (*models.Design, error) {
	tags, err := json.Marshal(d.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode design tags: %w", err)
	}
	if d.Tags == nil {
		tags = []byte(`[]`)
	}

	row := s.db.QueryRow(`
		INSERT INTO designs (title, slug, prompt, image_url, thumb_url, model, style, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+designColumns,
		d.Title, d.Slug, d.Prompt, d.ImageURL, d.ThumbURL, d.Model, d.Style, tags,
	)
	created, err := scanDesign(row)
	if err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}
	return created, nil
}

// AdjustLikes moves the likes counter by delta, clamped at zero so a
// concurrent unlike can never drive it negative. Returns the new count,
// or sql's no-rows sentinel mapped to (0, nil, false) via ok.
func (s *DesignStore) AdjustLikes(id uuid.UUID, delta int) (int, bool, error) {
	var likes int
	err := s.db.QueryRow(`
		UPDATE designs
		SET likes = GREATEST(likes + $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING likes
	`, delta, id).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("adjust likes: %w", err)
	}
	return likes, true, nil
}

// IncrementDownloads bumps the downloads counter. Returns the new count.
func (s *DesignStore) IncrementDownloads(id uuid.UUID) (int, bool, error) {
	var downloads int
	err := s.db.QueryRow(`
		UPDATE designs
		SET downloads = downloads + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING downloads
	`, id).Scan(&downloads)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("increment downloads: %w", err)
	}
	return downloads, true, nil
}

// Delete removes a design by ID. Order drafts cascade.
func (s *DesignStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM designs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	return nil
}

// Count returns the total number of designs.
func (s *DesignStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM designs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count designs: %w", err)
	}
	return count, nil
}

// CountByStyle returns design counts per style, for the gallery's filter
// chips.
func (s *DesignStore) CountByStyle() (map[models.Style]int, error) {
	rows, err := s.db.Query(`SELECT style, COUNT(*) FROM designs GROUP BY style`)
	if err != nil {
		return nil, fmt.Errorf("count designs by style: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Style]int)
	for rows.Next() {
		var style models.Style
		var n int
		if err := rows.Scan(&style, &n); err != nil {
			return nil, fmt.Errorf("scan style count: %w", err)
		}
		counts[style] = n
	}
	return counts, rows.Err()
}
