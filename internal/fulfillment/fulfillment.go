// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fulfillment creates order drafts with print-on-demand
// providers (Printful, Printify) when a design is added to the cart.
// Checkout and payment live with external collaborators; this package
// stops at the draft.
package fulfillment

import (
	"context"
	"fmt"

	"flowbotz/internal/models"
)

// Provider creates an order draft with a print-on-demand service and
// returns the provider's reference for it.
type Provider interface {
	// Name returns the provider identifier ("printful" or "printify").
	Name() string
	// CreateOrderDraft registers a draft order for the design printed on
	// the given product type and returns the provider's external id.
	CreateOrderDraft(ctx context.Context, design models.Design, productType string) (string, error)
}

// Config selects and configures the active provider.
type Config struct {
	Provider       string // "printful" or "printify"
	PrintfulKey    string
	PrintfulBase   string
	PrintifyKey    string
	PrintifyBase   string
	PrintifyShopID string
}

// New returns the configured provider. Returns (nil, nil) when the
// selected provider has no API key, so add-to-cart still works locally
// without a fulfillment backend.
func New(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "printful":
		if cfg.PrintfulKey == "" {
			return nil, nil
		}
		return newPrintful(cfg.PrintfulKey, cfg.PrintfulBase), nil
	case "printify":
		if cfg.PrintifyKey == "" {
			return nil, nil
		}
		return newPrintify(cfg.PrintifyKey, cfg.PrintifyBase, cfg.PrintifyShopID), nil
	default:
		return nil, fmt.Errorf("fulfillment: unknown provider %q", cfg.Provider)
	}
}
