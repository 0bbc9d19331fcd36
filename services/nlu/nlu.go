// Package nlu provides the language-model clients the chat service talks
// to. Both providers share the same prompt contract and payload parsing;
// only the transport differs.
package nlu

import (
	"context"
	"fmt"

	"central/config"
	"central/services/chat"
)

// NewClient selects the provider from configuration.
func NewClient(ctx context.Context, cfg *config.Config) (chat.NLUClient, error) {
	switch cfg.NLUProvider {
	case "gemini":
		return NewGeminiClient(ctx, cfg)
	case "cohere", "":
		return NewCohereClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown NLU provider %q", cfg.NLUProvider)
	}
}
