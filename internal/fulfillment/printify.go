// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flowbotz/internal/models"
)

// printifyProduct maps gallery product types to Printify blueprint and
// print provider ids.
var printifyProduct = map[string]struct {
	BlueprintID     int
	PrintProviderID int
}{
	"t-shirt": {BlueprintID: 6, PrintProviderID: 39},   // Unisex Heavy Cotton Tee
	"poster":  {BlueprintID: 282, PrintProviderID: 2},  // Matte Posters
	"mug":     {BlueprintID: 478, PrintProviderID: 28}, // Ceramic Mug 11oz
}

type printifyProvider struct {
	apiKey  string
	baseURL string
	shopID  string
	client  *http.Client
}

func newPrintify(apiKey, baseURL, shopID string) *printifyProvider {
	if baseURL == "" {
		baseURL = "https://api.printify.com/v1"
	}
	return &printifyProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		shopID:  shopID,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *printifyProvider) Name() string {
	return "printify"
}

type printifyProductRequest struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	BlueprintID     int                 `json:"blueprint_id"`
	PrintProviderID int                 `json:"print_provider_id"`
	PrintAreas      []printifyPrintArea `json:"print_areas"`
}

type printifyPrintArea struct {
	Placeholders []printifyPlaceholder `json:"placeholders"`
}

type printifyPlaceholder struct {
	Position string           `json:"position"`
	Images   []printifyImage  `json:"images"`
}

type printifyImage struct {
	Src   string  `json:"src"`
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle int     `json:"angle"`
}

type printifyProductResponse struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// CreateOrderDraft creates an unpublished Printify product for the
// design. Printify has no order-draft endpoint; an unpublished product
// in the shop is the equivalent staging step.
func (p *printifyProvider) CreateOrderDraft(ctx context.Context, design models.Design, productType string) (string, error) {
	product, ok := printifyProduct[productType]
	if !ok {
		return "", fmt.Errorf("printify: unsupported product type %q", productType)
	}

	reqBody := printifyProductRequest{
		Title:           design.Title,
		Description:     design.Prompt,
		BlueprintID:     product.BlueprintID,
		PrintProviderID: product.PrintProviderID,
		PrintAreas: []printifyPrintArea{{
			Placeholders: []printifyPlaceholder{{
				Position: "front",
				Images:   []printifyImage{{Src: design.ImageURL, Scale: 1, X: 0.5, Y: 0.5}},
			}},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/shops/%s/products.json", p.baseURL, p.shopID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("printify request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var productResp printifyProductResponse
	if err := json.Unmarshal(body, &productResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if productResp.Message != "" {
			return "", fmt.Errorf("printify api: %s", productResp.Message)
		}
		return "", fmt.Errorf("printify api: status %d", resp.StatusCode)
	}
	if productResp.ID == "" {
		return "", fmt.Errorf("printify api: no product id in response")
	}

	return productResp.ID, nil
}
