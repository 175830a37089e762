// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// togetherProvider generates images via the Together AI images API,
// which follows the OpenAI request shape.
type togetherProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newTogether(cfg ProviderConfig) *togetherProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.together.xyz/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "black-forest-labs/FLUX.1-schnell"
	}
	return &togetherProvider{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *togetherProvider) Name() string {
	return "together"
}

type togetherImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ResponseFormat string `json:"response_format"`
}

type togetherImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *togetherProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	reqBody := togetherImageRequest{
		Model:          p.model,
		Prompt:         prompt,
		N:              1,
		Width:          1024,
		Height:         1024,
		ResponseFormat: "b64_json",
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("together request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	var imgResp togetherImageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, "", fmt.Errorf("decode response: %w", err)
	}

	if imgResp.Error != nil {
		return nil, "", fmt.Errorf("together api: %s", imgResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("together api: status %d", resp.StatusCode)
	}
	if len(imgResp.Data) == 0 {
		return nil, "", fmt.Errorf("together api: no image in response")
	}

	img, err := base64.StdEncoding.DecodeString(imgResp.Data[0].B64JSON)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	return img, "image/png", nil
}
