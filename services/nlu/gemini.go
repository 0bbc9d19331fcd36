package nlu

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"central/config"
	"central/models"
)

// GeminiClient is the alternative provider behind the same Converse
// contract, wired through the official genai SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Converse(ctx context.Context, promptContext, userText string) (*models.NLUResult, error) {
	gm := g.client.GenerativeModel(g.model)
	gm.SetTemperature(0.4)
	gm.SetMaxOutputTokens(400)

	resp, err := gm.GenerateContent(ctx, genai.Text(buildPrompt(promptContext, userText)))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	full := b.String()
	return parseModelOutput(full, full), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}
