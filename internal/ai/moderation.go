// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Moderator checks prompts against content policies before they reach
// an image provider.
type Moderator interface {
	CheckSafety(ctx context.Context, prompt string) (*ModerationResult, error)
}

// ModerationResult reports whether a prompt passed moderation and, if
// not, which categories were flagged.
type ModerationResult struct {
	Safe       bool
	Categories []string
}

// Reason returns a human-readable explanation for a rejected prompt.
func (r *ModerationResult) Reason() string {
	if r.Safe {
		return ""
	}
	if len(r.Categories) == 0 {
		return "prompt violates content policies"
	}
	return fmt.Sprintf("prompt flagged for: %s", strings.Join(r.Categories, ", "))
}

// openAIModerator uses OpenAI's moderation endpoint, which is free and
// does not consume model tokens.
type openAIModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &openAIModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (m *openAIModerator) CheckSafety(ctx context.Context, prompt string) (*ModerationResult, error) {
	reqBody := moderationRequest{
		Model: "omni-moderation-latest",
		Input: prompt,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var modResp moderationResponse
	if err := json.Unmarshal(body, &modResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if modResp.Error != nil {
		return nil, fmt.Errorf("moderation api: %s", modResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moderation api: status %d", resp.StatusCode)
	}
	if len(modResp.Results) == 0 {
		return nil, fmt.Errorf("moderation api: empty response")
	}

	result := modResp.Results[0]
	if !result.Flagged {
		return &ModerationResult{Safe: true}, nil
	}

	var flagged []string
	for category, hit := range result.Categories {
		if hit {
			flagged = append(flagged, category)
		}
	}
	return &ModerationResult{Safe: false, Categories: flagged}, nil
}
