package inference

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"google.golang.org/genai"
)

type GeminiInferencer struct {
	client *genai.Client
	model  string
}

// NewGeminiInferencer creates a new inferencer backed by the Gemini API.
func NewGeminiInferencer(ctx context.Context, apiKey string, model string) (*GeminiInferencer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiInferencer{
		client: client,
		model:  cmp.Or(model, "gemini-2.5-flash"),
	}, nil
}

// Infer maps the OpenAI-style params onto a Gemini GenerateContent call.
func (o *GeminiInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(optOr(params.MaxCompletionTokens, defaultMaxTokens)),
		Temperature:     genai.Ptr(float32(optOr(params.Temperature, defaultTemperature))),
		TopP:            genai.Ptr(float32(optOr(params.TopP, defaultTopP))),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	model := cmp.Or(params.Model, o.model)
	log.Debug("sending generate content", "provider", "gemini", "model", model)

	result, err := o.client.Models.GenerateContent(ctx, model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("gemini inference error: %w", err)
	}
	if result == nil {
		return "", ErrNoResponse
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoResponse
	}
	return text, nil
}

// optOr returns o's value when it was set, including a zero value, and def otherwise.
func optOr[T comparable](o param.Opt[T], def T) T {
	if o.Valid() {
		return o.Value
	}
	return def
}
