package inference

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"oracle/pkg/utils"
)

// OpenAIInferencer implements Inferencer using OpenAI's official Go SDK.
// Any OpenAI-compatible endpoint works through ChangeBaseURL.
type OpenAIInferencer struct {
	client *openai.Client
	name   string
	apiKey string
	model  string
	opts   []option.RequestOption
}

// NewOpenAIInferencer creates a new inferencer instance using OpenAI client.
func NewOpenAIInferencer(apiKey string, model string, opts ...option.RequestOption) *OpenAIInferencer {
	return newCompatible("openai", "", apiKey, model, opts...)
}

// NewGrokInferencer talks to xAI's OpenAI-compatible API.
func NewGrokInferencer(apiKey string, model string, opts ...option.RequestOption) *OpenAIInferencer {
	return newCompatible("grok", "https://api.x.ai/v1", apiKey, cmp.Or(model, "grok-4-fast-reasoning"), opts...)
}

// NewKimiInferencer talks to the Kimi coding endpoint.
func NewKimiInferencer(apiKey string, model string, opts ...option.RequestOption) *OpenAIInferencer {
	return newCompatible("kimi", "https://api.kimi.com/coding/v1", apiKey, cmp.Or(model, "kimi-for-coding"), opts...)
}

// NewMoonshotInferencer talks to Moonshot AI's OpenAI-compatible API.
func NewMoonshotInferencer(apiKey string, model string, opts ...option.RequestOption) *OpenAIInferencer {
	return newCompatible("moonshot", "https://api.moonshot.ai/v1", apiKey, cmp.Or(model, "kimi-k2-5"), opts...)
}

func newCompatible(name, baseURL, apiKey, model string, opts ...option.RequestOption) *OpenAIInferencer {
	o := &OpenAIInferencer{
		name:   name,
		apiKey: apiKey,
		model:  model,
		opts:   opts,
	}
	o.ChangeBaseURL(baseURL)
	return o
}

// ChangeBaseURL points the client at another OpenAI-compatible server.
// An empty baseURL keeps the SDK default.
func (o *OpenAIInferencer) ChangeBaseURL(baseURL string) {
	opts := []option.RequestOption{option.WithAPIKey(o.apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, o.opts...)
	client := openai.NewClient(opts...)
	o.client = &client
}

// Infer sends text to the chat completion endpoint and returns the output.
func (o *OpenAIInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	var p openai.ChatCompletionNewParams
	if params != nil {
		p = *params
	}
	p.Model = cmp.Or(p.Model, o.model)

	p.Messages = make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		p.Messages = append(p.Messages, openai.SystemMessage(system))
	}
	p.Messages = append(p.Messages, openai.UserMessage(user))

	// unset only; an explicit 0 temperature is kept
	if !p.MaxCompletionTokens.Valid() {
		p.MaxCompletionTokens = openai.Int(defaultMaxTokens)
	}
	if !p.Temperature.Valid() {
		p.Temperature = openai.Float(defaultTemperature)
	}
	if !p.TopP.Valid() {
		p.TopP = openai.Float(defaultTopP)
	}

	if log.GetLevel() <= log.DebugLevel {
		tokens, err := utils.NumTokensFromMessages(system + user)
		if err != nil {
			log.Debug("sending chat completion", "provider", o.name, "model", p.Model, "chars", len(system)+len(user))
		} else {
			log.Debug("sending chat completion", "provider", o.name, "model", p.Model, "prompt_tokens", tokens)
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s inference error: %w", o.name, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoResponse
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrNoResponse
	}

	return content, nil
}
