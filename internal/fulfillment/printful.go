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
	"strconv"
	"time"

	"flowbotz/internal/models"
)

// printfulProduct maps gallery product types to Printful sync variant ids.
var printfulProduct = map[string]int{
	"t-shirt": 4012, // Unisex Staple T-Shirt, M
	"poster":  1349, // Enhanced Matte Paper Poster, 18x24
	"mug":     1320, // White Glossy Mug, 11oz
}

type printfulProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newPrintful(apiKey, baseURL string) *printfulProvider {
	if baseURL == "" {
		baseURL = "https://api.printful.com"
	}
	return &printfulProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *printfulProvider) Name() string {
	return "printful"
}

type printfulOrderRequest struct {
	Confirm bool           `json:"confirm"`
	Items   []printfulItem `json:"items"`
}

type printfulItem struct {
	VariantID int            `json:"variant_id"`
	Quantity  int            `json:"quantity"`
	Name      string         `json:"name"`
	Files     []printfulFile `json:"files"`
}

type printfulFile struct {
	URL string `json:"url"`
}

type printfulOrderResponse struct {
	Result struct {
		ID int `json:"id"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateOrderDraft creates an unconfirmed Printful order carrying the
// design's full-size image as the print file.
func (p *printfulProvider) CreateOrderDraft(ctx context.Context, design models.Design, productType string) (string, error) {
	variantID, ok := printfulProduct[productType]
	if !ok {
		return "", fmt.Errorf("printful: unsupported product type %q", productType)
	}

	reqBody := printfulOrderRequest{
		Confirm: false,
		Items: []printfulItem{{
			VariantID: variantID,
			Quantity:  1,
			Name:      design.Title,
			Files:     []printfulFile{{URL: design.ImageURL}},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("printful request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var orderResp printfulOrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if orderResp.Error != nil {
		return "", fmt.Errorf("printful api: %s", orderResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("printful api: status %d", resp.StatusCode)
	}

	return strconv.Itoa(orderResp.Result.ID), nil
}
