// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging generates gallery thumbnails for AI-generated design
// images. Providers return 1024px squares; the gallery grid serves a
// 320px thumbnail to keep page weight down.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg" // providers occasionally return JPEG

	"github.com/nfnt/resize"
)

// ThumbWidth is the target width for gallery grid thumbnails.
const ThumbWidth = 320

// Thumbnail scales the source image down to ThumbWidth, preserving
// aspect ratio, and encodes it as PNG. Images already at or below the
// target width are re-encoded without scaling.
func Thumbnail(original []byte) ([]byte, error) {
	return ThumbnailWidth(original, ThumbWidth)
}

// ThumbnailWidth scales to an explicit target width. Upscaling is never
// performed.
func ThumbnailWidth(original []byte, width int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	if img.Bounds().Dx() > width {
		img = resize.Resize(uint(width), 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}
