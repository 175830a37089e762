// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// ImageGenerator is implemented by providers that can generate images
// from text prompts. Image generation is optional; use
// SupportsImageGeneration to check before calling.
type ImageGenerator interface {
	// GenerateImage creates an image from the prompt and returns the raw
	// image bytes along with the content type (e.g., "image/png").
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// GenerateImage creates an image using the active provider. Returns an
// error if the active provider does not support image generation.
func (r *Registry) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	p, err := r.Active()
	if err != nil {
		return nil, "", err
	}

	gen, ok := p.(ImageGenerator)
	if !ok {
		return nil, "", fmt.Errorf("ai: provider %q does not support image generation", p.Name())
	}

	return gen.GenerateImage(ctx, prompt)
}

// SupportsImageGeneration reports whether the active provider can
// generate images.
func (r *Registry) SupportsImageGeneration() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(ImageGenerator)
	return ok
}
