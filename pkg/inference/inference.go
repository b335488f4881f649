package inference

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"

	"oracle/pkg/config"
)

// ErrNoResponse is returned when the model answered without anything usable.
var ErrNoResponse = errors.New("no response from model")

// Inferencer sends one system/user exchange to a chat model and returns the
// text of the first choice. An empty system prompt sends only the user message.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.3
	defaultTopP        = 1.0
)

// New builds the inferencer selected by cfg.Provider.
func New(ctx context.Context, cfg config.Config) (Inferencer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		inf := NewOpenAIInferencer(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			inf.ChangeBaseURL(cfg.BaseURL)
		}
		return inf, nil
	case config.ProviderGrok:
		return NewGrokInferencer(cfg.APIKey, cfg.Model), nil
	case config.ProviderKimi:
		return NewKimiInferencer(cfg.APIKey, cfg.Model), nil
	case config.ProviderMoonshot:
		return NewMoonshotInferencer(cfg.APIKey, cfg.Model), nil
	case config.ProviderGemini:
		return NewGeminiInferencer(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
