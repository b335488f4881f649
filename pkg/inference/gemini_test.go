package inference

import (
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
)

func TestOptOr(t *testing.T) {
	var unset openai.ChatCompletionNewParams
	assert.InDelta(t, defaultTemperature, optOr(unset.Temperature, defaultTemperature), 1e-9)
	assert.EqualValues(t, defaultMaxTokens, optOr(unset.MaxCompletionTokens, defaultMaxTokens))

	assert.Zero(t, optOr(openai.Float(0), defaultTemperature))
	assert.EqualValues(t, 128, optOr(openai.Int(128), defaultMaxTokens))
}
