package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"central/config"
	"central/models"
	"central/utils"
)

// CohereClient talks to the Cohere chat endpoint over plain HTTP.
type CohereClient struct {
	apiKey   string
	endpoint string
	model    string
	http     *http.Client
	logger   *zap.Logger
}

func NewCohereClient(cfg *config.Config) *CohereClient {
	return &CohereClient{
		apiKey:   cfg.CohereAPIKey,
		endpoint: cfg.CohereEndpoint,
		model:    cfg.CohereModel,
		http:     &http.Client{Timeout: 60 * time.Second},
		logger:   utils.GetLogger().Named("cohere"),
	}
}

type cohereRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

func (c *CohereClient) Converse(ctx context.Context, promptContext, userText string) (*models.NLUResult, error) {
	payload := cohereRequest{
		Model:       c.model,
		Message:     buildPrompt(promptContext, userText),
		MaxTokens:   400,
		Temperature: 0.4,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cohere request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build cohere request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cohere request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cohere response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Providers sometimes return usable text alongside an error
		// status, so log and keep parsing instead of bailing out.
		c.logger.Warn("cohere returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.Int("bodyBytes", len(raw)))
	}

	full := extractResponseText(raw)
	return parseModelOutput(full, string(raw)), nil
}
