// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderDraftStatus tracks how far an add-to-cart request got with the
// print-on-demand provider.
type OrderDraftStatus string

const (
	OrderDraftPending   OrderDraftStatus = "pending"   // recorded locally, provider not reached
	OrderDraftSubmitted OrderDraftStatus = "submitted" // draft created with the provider
	OrderDraftFailed    OrderDraftStatus = "failed"    // provider rejected the draft
)

// OrderDraft records one add-to-cart action. Checkout and payment happen
// with external collaborators (Stripe); this service only creates the
// fulfillment draft and remembers the provider's reference.
type OrderDraft struct {
	ID          uuid.UUID        `json:"id"`
	DesignID    uuid.UUID        `json:"design_id"`
	Provider    string           `json:"provider"` // "printful" or "printify"
	ExternalID  *string          `json:"external_id,omitempty"`
	ProductType string           `json:"product_type"` // e.g. "t-shirt", "poster", "mug"
	Status      OrderDraftStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}
