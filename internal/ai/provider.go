// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the image generation
// providers behind the FlowBotz gallery (OpenAI DALL-E, Stability,
// Together) plus the Claude text provider used for prompt enhancement.
// Each provider handles its own HTTP communication; the Registry selects
// the active image provider by name.
package ai

import (
	"context"
	"fmt"
	"sync"
)

// Provider is the base interface every AI provider implements. Capability
// interfaces (ImageGenerator, TextGenerator) are discovered by type
// assertion, since not every provider supports both.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "stability").
	Name() string
}

// TextGenerator is implemented by providers that can generate text.
// Used for prompt enhancement before image generation.
type TextGenerator interface {
	// Generate sends a prompt to the model and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Registry manages available AI providers and selects the active image
// provider. It supports runtime switching by name. All methods are safe
// for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
	moderator Moderator // may be nil if no moderation API is available
}

// NewRegistry creates a registry and initialises providers for every
// config that has a non-empty API key. Providers without keys are
// silently skipped. OpenAI's free moderation API guards prompts when an
// OpenAI key is present.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "stability":
			r.providers[name] = newStability(cfg)
		case "together":
			r.providers[name] = newTogether(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		}
	}

	if cfg, ok := configs["openai"]; ok && cfg.APIKey != "" {
		r.moderator = newOpenAIModerator(cfg.APIKey, cfg.BaseURL)
	}

	return r
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active image provider at runtime. Returns an
// error if the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider in the registry. This allows
// injecting custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}

// CheckPrompt runs the user prompt through the moderation API before
// generation. Returns a safe result if no moderator is configured
// (graceful degradation — providers still have their own built-in safety
// filters). Returns Safe=false with flagged Categories if the prompt
// violates policies.
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	if r.moderator == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return r.moderator.CheckSafety(ctx, prompt)
}

// EnhancePrompt rewrites a raw user prompt into a richer image prompt
// using a text-capable provider. Claude is preferred; any TextGenerator
// serves as fallback. Returns the original prompt unchanged when no text
// provider is available.
func (r *Registry) EnhancePrompt(ctx context.Context, prompt, style string) (string, error) {
	r.mu.RLock()
	tg, _ := r.providers["claude"].(TextGenerator)
	if tg == nil {
		for _, p := range r.providers {
			if cand, ok := p.(TextGenerator); ok {
				tg = cand
				break
			}
		}
	}
	r.mu.RUnlock()

	if tg == nil {
		return prompt, nil
	}

	systemPrompt := fmt.Sprintf(`You rewrite user prompts for AI image generation.

Rules:
- Output ONLY the rewritten prompt, one paragraph, no preamble.
- Preserve the user's subject and intent exactly.
- Add concrete visual details: composition, lighting, palette, mood.
- Match the %q art style.
- Keep it under 120 words.`, style)

	enhanced, err := tg.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("enhance prompt: %w", err)
	}
	return enhanced, nil
}
