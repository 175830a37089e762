// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Style is the closed classification tag used for gallery filtering.
// Records carry exactly one style; StyleAll exists only as a filter
// sentinel and is never a valid record style.
type Style string

const (
	StyleAll            Style = "all"
	StylePhotorealistic Style = "photorealistic"
	StyleArtistic       Style = "artistic"
	StyleMinimalist     Style = "minimalist"
	StyleVintage        Style = "vintage"
	StyleAbstract       Style = "abstract"
)

// Styles lists every record style, in display order. Excludes StyleAll.
var Styles = []Style{
	StylePhotorealistic,
	StyleArtistic,
	StyleMinimalist,
	StyleVintage,
	StyleAbstract,
}

// Valid reports whether s is a known record style.
func (s Style) Valid() bool {
	switch s {
	case StylePhotorealistic, StyleArtistic, StyleMinimalist, StyleVintage, StyleAbstract:
		return true
	}
	return false
}

// ParseStyle normalizes a user-supplied style string. Empty input and the
// "all" sentinel both mean no filter. Unknown values are an error so the
// handler can reject them instead of silently returning an empty gallery.
func ParseStyle(raw string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" || s == StyleAll {
		return StyleAll, nil
	}
	if !s.Valid() {
		return "", errors.New("unknown style: " + string(s))
	}
	return s, nil
}

// SortKey selects the gallery ordering. All keys sort descending.
type SortKey string

const (
	SortRecent    SortKey = "recent"    // createdAt, newest first (default)
	SortPopular   SortKey = "popular"   // likes + downloads
	SortLiked     SortKey = "liked"     // likes
	SortDownloads SortKey = "downloads" // downloads
)

// ParseSortKey normalizes a user-supplied sort string, defaulting to
// SortRecent for empty input.
func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case "":
		return SortRecent, nil
	case SortRecent, SortPopular, SortLiked, SortDownloads:
		return k, nil
	}
	return "", errors.New("unknown sort key: " + string(k))
}

// Design represents one AI-generated image: its metadata and engagement
// counters. Rows live in the designs table; the image itself lives in
// object storage and is referenced by URL.
type Design struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Prompt    string    `json:"prompt"`
	ImageURL  string    `json:"image_url"`
	ThumbURL  *string   `json:"thumb_url,omitempty"`
	Model     string    `json:"model"`
	Style     Style     `json:"style"`
	Tags      []string  `json:"tags"`
	IsLiked   bool      `json:"is_liked"`
	Likes     int       `json:"likes"`
	Downloads int       `json:"downloads"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate reports whether the design is well-formed enough to enter the
// catalog: required fields present, a known style, and non-negative
// counters. Malformed records are dropped at catalog load, not fatal.
func (d *Design) Validate() error {
	if d.ID == uuid.Nil {
		return errors.New("design: missing id")
	}
	if d.Title == "" {
		return errors.New("design: missing title")
	}
	if d.ImageURL == "" {
		return errors.New("design: missing image url")
	}
	if !d.Style.Valid() {
		return errors.New("design: unknown style " + string(d.Style))
	}
	if d.Likes < 0 || d.Downloads < 0 {
		return errors.New("design: negative engagement counter")
	}
	return nil
}

// EngagementScore is the popularity metric: likes plus downloads.
func (d *Design) EngagementScore() int {
	return d.Likes + d.Downloads
}

// ToggleLike flips the like state and moves the likes counter by exactly
// one in the same step, so is_liked and likes never diverge. Unliking
// never takes the counter below zero.
func (d *Design) ToggleLike() {
	if d.IsLiked {
		d.IsLiked = false
		if d.Likes > 0 {
			d.Likes--
		}
		return
	}
	d.IsLiked = true
	d.Likes++
}

// MatchesSearch reports whether q is a case-insensitive substring of the
// title, the prompt, or any tag. An empty query matches everything.
func (d *Design) MatchesSearch(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(d.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Prompt), q) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// MatchesStyle reports whether the design passes the style filter.
// StyleAll matches every record.
func (d *Design) MatchesStyle(filter Style) bool {
	return filter == StyleAll || d.Style == filter
}
