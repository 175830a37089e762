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

// stabilityProvider generates images via the Stability AI text-to-image
// API. Text generation is not supported.
type stabilityProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newStability(cfg ProviderConfig) *stabilityProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.stability.ai/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "stable-diffusion-xl-1024-v1-0"
	}
	return &stabilityProvider{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *stabilityProvider) Name() string {
	return "stability"
}

type stabilityRequest struct {
	TextPrompts []stabilityPrompt `json:"text_prompts"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Samples     int               `json:"samples"`
}

type stabilityPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
	Message string `json:"message,omitempty"`
}

func (p *stabilityProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	reqBody := stabilityRequest{
		TextPrompts: []stabilityPrompt{{Text: prompt, Weight: 1}},
		Width:       1024,
		Height:      1024,
		Samples:     1,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/generation/%s/text-to-image", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("stability request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	var stabilityResp stabilityResponse
	if err := json.Unmarshal(body, &stabilityResp); err != nil {
		return nil, "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if stabilityResp.Message != "" {
			return nil, "", fmt.Errorf("stability api: %s", stabilityResp.Message)
		}
		return nil, "", fmt.Errorf("stability api: status %d", resp.StatusCode)
	}
	if len(stabilityResp.Artifacts) == 0 {
		return nil, "", fmt.Errorf("stability api: no image in response")
	}

	artifact := stabilityResp.Artifacts[0]
	if artifact.FinishReason == "CONTENT_FILTERED" {
		return nil, "", fmt.Errorf("stability api: prompt rejected by content filter")
	}

	img, err := base64.StdEncoding.DecodeString(artifact.Base64)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	return img, "image/png", nil
}
