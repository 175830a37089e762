// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gallery implements the FlowBotz gallery core: the pure
// filter/sort/search query over a design collection, and an in-memory
// catalog with like tracking and download/cart extension hooks. The
// package has no I/O of its own; catalogs are loaded through an injected
// Provider and the HTTP layer decides how results are served.
package gallery

import (
	"sort"

	"flowbotz/internal/models"
)

// Options selects the visible, ordered view of the catalog. The zero
// value returns every design, newest first.
type Options struct {
	Search string         // case-insensitive substring over title, prompt, tags
	Style  models.Style   // StyleAll or a specific style; empty treated as StyleAll
	Sort   models.SortKey // empty treated as SortRecent
}

// Query filters and orders designs according to opts. It is a pure
// function of its inputs: the input slice is never mutated and the result
// is freshly allocated, so it is safe to call on every request. Sorting
// is stable — designs with equal keys keep their input order.
func Query(designs []models.Design, opts Options) []models.Design {
	style := opts.Style
	if style == "" {
		style = models.StyleAll
	}
	key := opts.Sort
	if key == "" {
		key = models.SortRecent
	}

	out := make([]models.Design, 0, len(designs))
	for _, d := range designs {
		if d.MatchesSearch(opts.Search) && d.MatchesStyle(style) {
			out = append(out, d)
		}
	}

	// All keys order descending; SliceStable preserves input order on ties.
	switch key {
	case models.SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EngagementScore() > out[j].EngagementScore()
		})
	case models.SortLiked:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Likes > out[j].Likes
		})
	case models.SortDownloads:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Downloads > out[j].Downloads
		})
	default: // models.SortRecent
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}
