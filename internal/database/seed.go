package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedDesign is one row of the development sample catalog.
type seedDesign struct {
	title     string
	slug      string
	prompt    string
	imageURL  string
	model     string
	style     string
	tags      string // JSON array literal
	likes     int
	downloads int
	createdAt string
}

// sampleCatalog is the six-design development gallery. The gallery package
// tests mirror these records.
var sampleCatalog = []seedDesign{
	{
		title:    "Space Galaxy Swirl",
		slug:     "space-galaxy-swirl",
		prompt:   "A swirling galaxy of purple and blue cosmic dust",
		imageURL: "https://cdn.flowbotz.app/samples/space-galaxy-swirl.png",
		model:    "dall-e-3", style: "abstract",
		tags: `["space","galaxy","cosmic"]`, likes: 42, downloads: 18,
		createdAt: "2024-01-03T12:00:00Z",
	},
	{
		title:    "Minimalist Mountain Range",
		slug:     "minimalist-mountain-range",
		prompt:   "Clean geometric mountain silhouette at dawn",
		imageURL: "https://cdn.flowbotz.app/samples/minimalist-mountain-range.png",
		model:    "sd3.5-large", style: "minimalist",
		tags: `["mountains","geometric","clean"]`, likes: 31, downloads: 27,
		createdAt: "2024-01-07T12:00:00Z",
	},
	{
		title:    "Neon Cyber City",
		slug:     "neon-cyber-city",
		prompt:   "Rain-soaked neon streets of a future metropolis",
		imageURL: "https://cdn.flowbotz.app/samples/neon-cyber-city.png",
		model:    "dall-e-3", style: "photorealistic",
		tags: `["cyberpunk","neon","city"]`, likes: 56, downloads: 12,
		createdAt: "2024-01-11T12:00:00Z",
	},
	{
		title:    "Vintage Sunset Palms",
		slug:     "vintage-sunset-palms",
		prompt:   "Retro sunset with palm silhouettes in faded orange",
		imageURL: "https://cdn.flowbotz.app/samples/vintage-sunset-palms.png",
		model:    "black-forest-labs/FLUX.1-schnell", style: "vintage",
		tags: `["retro","sunset","palms"]`, likes: 24, downloads: 33,
		createdAt: "2024-01-15T12:00:00Z",
	},
	{
		title:    "Watercolor Fox Portrait",
		slug:     "watercolor-fox-portrait",
		prompt:   "A curious fox painted in loose watercolor washes",
		imageURL: "https://cdn.flowbotz.app/samples/watercolor-fox-portrait.png",
		model:    "dall-e-3", style: "artistic",
		tags: `["watercolor","fox","portrait"]`, likes: 47, downloads: 21,
		createdAt: "2024-01-19T12:00:00Z",
	},
	{
		title:    "Abstract Flow Fields",
		slug:     "abstract-flow-fields",
		prompt:   "Layered flowing lines in teal and coral gradients",
		imageURL: "https://cdn.flowbotz.app/samples/abstract-flow-fields.png",
		model:    "sd3.5-large", style: "abstract",
		tags: `["flow","lines","gradient"]`, likes: 19, downloads: 8,
		createdAt: "2024-01-23T12:00:00Z",
	},
}

// Seed populates the database with the sample design catalog for
// development. It is a no-op when designs already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM designs").Scan(&count); err != nil {
		return fmt.Errorf("seed check designs: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, d := range sampleCatalog {
		_, err := db.Exec(`
			INSERT INTO designs (title, slug, prompt, image_url, model, style,
				tags, likes, downloads, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		`, d.title, d.slug, d.prompt, d.imageURL, d.model, d.style,
			d.tags, d.likes, d.downloads, d.createdAt)
		if err != nil {
			return fmt.Errorf("seed insert design %q: %w", d.slug, err)
		}
	}

	slog.Info("database seeded with sample designs", "designs", len(sampleCatalog))
	return nil
}
