package converter

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"

	"oracle/pkg/inference"
)

// Call sends prompt to inf and converts the answer with c. A Declared
// converter's Format must already be part of prompt; for a Direct converter
// the schema is appended to the system message here.
// The returned Outcome is always set, also on error. A Direct conversion
// failure comes back as Empty together with the *ConversionError.
func Call[T any](ctx context.Context, c Converter[T], inf inference.Inferencer, params *openai.ChatCompletionNewParams, system, prompt string) ([]T, Outcome, error) {
	if c.Strategy() == Direct {
		system = strings.TrimSpace(system + "\n\n" + c.Schema().Format())
	}

	text, err := inf.Infer(ctx, params, system, prompt)
	if err != nil {
		return nil, c.Outcome(err), err
	}

	records, err := c.convert(text)
	if err != nil {
		return nil, c.Outcome(err), err
	}
	return records, OK, nil
}
