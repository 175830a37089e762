package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestParseStyle verifies normalization of user-supplied style filters:
// case folding, the "all" sentinel, empty input, and rejection of values
// outside the closed style set.
func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Style
		wantErr bool
	}{
		{name: "empty means all", raw: "", want: StyleAll},
		{name: "all sentinel", raw: "all", want: StyleAll},
		{name: "all uppercase", raw: "ALL", want: StyleAll},
		{name: "photorealistic", raw: "photorealistic", want: StylePhotorealistic},
		{name: "artistic", raw: "artistic", want: StyleArtistic},
		{name: "minimalist", raw: "minimalist", want: StyleMinimalist},
		{name: "vintage", raw: "vintage", want: StyleVintage},
		{name: "abstract", raw: "abstract", want: StyleAbstract},
		{name: "mixed case", raw: "Vintage", want: StyleVintage},
		{name: "surrounding whitespace", raw: "  abstract  ", want: StyleAbstract},
		{name: "unknown style", raw: "cubist", wantErr: true},
		{name: "typo", raw: "minimal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStyle(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStyle(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseStyle(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestParseSortKey verifies sort key normalization and the recent default.
func TestParseSortKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    SortKey
		wantErr bool
	}{
		{name: "empty defaults to recent", raw: "", want: SortRecent},
		{name: "recent", raw: "recent", want: SortRecent},
		{name: "popular", raw: "popular", want: SortPopular},
		{name: "liked", raw: "liked", want: SortLiked},
		{name: "downloads", raw: "downloads", want: SortDownloads},
		{name: "uppercase", raw: "POPULAR", want: SortPopular},
		{name: "unknown key", raw: "trending", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSortKey(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSortKey(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSortKey(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseSortKey(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestDesignValidate covers the malformed-record checks that guard
// catalog loading.
func TestDesignValidate(t *testing.T) {
	valid := func() Design {
		return Design{
			ID:       uuid.New(),
			Title:    "Space Galaxy Swirl",
			ImageURL: "https://cdn.example.com/galaxy.png",
			Style:    StyleAbstract,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Design)
		wantErr bool
	}{
		{name: "valid design", mutate: func(*Design) {}},
		{name: "nil id", mutate: func(d *Design) { d.ID = uuid.Nil }, wantErr: true},
		{name: "missing title", mutate: func(d *Design) { d.Title = "" }, wantErr: true},
		{name: "missing image url", mutate: func(d *Design) { d.ImageURL = "" }, wantErr: true},
		{name: "unknown style", mutate: func(d *Design) { d.Style = "cubist" }, wantErr: true},
		{name: "all sentinel as record style", mutate: func(d *Design) { d.Style = StyleAll }, wantErr: true},
		{name: "negative likes", mutate: func(d *Design) { d.Likes = -1 }, wantErr: true},
		{name: "negative downloads", mutate: func(d *Design) { d.Downloads = -3 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

// TestDesignToggleLike verifies the ±1 lockstep between is_liked and the
// likes counter, including the idempotent round trip over two calls.
func TestDesignToggleLike(t *testing.T) {
	d := Design{Likes: 5}

	d.ToggleLike()
	if !d.IsLiked || d.Likes != 6 {
		t.Fatalf("after first toggle: IsLiked=%v Likes=%d, want true 6", d.IsLiked, d.Likes)
	}

	d.ToggleLike()
	if d.IsLiked || d.Likes != 5 {
		t.Fatalf("after second toggle: IsLiked=%v Likes=%d, want false 5", d.IsLiked, d.Likes)
	}
}

// TestDesignToggleLikeClampsAtZero ensures unliking a zero-count record
// never drives the counter negative.
func TestDesignToggleLikeClampsAtZero(t *testing.T) {
	d := Design{IsLiked: true, Likes: 0}
	d.ToggleLike()
	if d.Likes != 0 {
		t.Errorf("Likes = %d, want 0", d.Likes)
	}
	if d.IsLiked {
		t.Error("IsLiked = true, want false")
	}
}

// TestDesignMatchesSearch covers the case-insensitive substring match over
// title, prompt, and tags.
func TestDesignMatchesSearch(t *testing.T) {
	d := Design{
		Title:  "Space Galaxy Swirl",
		Prompt: "A swirling galaxy of purple and blue cosmic dust",
		Tags:   []string{"space", "galaxy", "cosmic"},
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query matches", query: "", want: true},
		{name: "title substring", query: "swirl", want: true},
		{name: "title case-insensitive", query: "GALAXY", want: true},
		{name: "prompt substring", query: "purple", want: true},
		{name: "tag substring", query: "cosmic", want: true},
		{name: "partial tag", query: "cosm", want: true},
		{name: "no match", query: "mountain", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.MatchesSearch(tt.query); got != tt.want {
				t.Errorf("MatchesSearch(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// TestDesignMatchesStyle verifies the all sentinel and exact style match.
func TestDesignMatchesStyle(t *testing.T) {
	d := Design{Style: StyleMinimalist}

	if !d.MatchesStyle(StyleAll) {
		t.Error("MatchesStyle(all) = false, want true")
	}
	if !d.MatchesStyle(StyleMinimalist) {
		t.Error("MatchesStyle(minimalist) = false, want true")
	}
	if d.MatchesStyle(StyleVintage) {
		t.Error("MatchesStyle(vintage) = true, want false")
	}
}

// TestEngagementScore checks the popularity metric used by the popular sort.
func TestEngagementScore(t *testing.T) {
	d := Design{Likes: 8, Downloads: 9, CreatedAt: time.Now()}
	if got := d.EngagementScore(); got != 17 {
		t.Errorf("EngagementScore() = %d, want 17", got)
	}
}
