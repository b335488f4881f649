package converter

import (
	"errors"

	"github.com/charmbracelet/log"

	"oracle/pkg/inference"
	"oracle/pkg/schema"
	"oracle/pkg/utils"
)

// DirectConverter keeps the format hint out of the prompt; Call sends the
// schema as a system message instead. Output that still cannot be converted
// becomes an empty result.
type DirectConverter[T any] struct {
	schema *schema.Schema
}

func NewDirect[T any]() (*DirectConverter[T], error) {
	s, err := schema.For[[]T]()
	if err != nil {
		return nil, err
	}
	return &DirectConverter[T]{schema: s}, nil
}

func (c *DirectConverter[T]) Strategy() Strategy { return Direct }

func (c *DirectConverter[T]) Schema() *schema.Schema { return c.schema }

// Format is empty: there is nothing for the caller to render.
func (c *DirectConverter[T]) Format() string { return "" }

// Convert never reports a conversion failure: it repairs malformed JSON when
// it can and otherwise returns an empty, non-nil slice.
func (c *DirectConverter[T]) Convert(text string) ([]T, error) {
	records, err := c.convert(text)
	if err == nil {
		return records, nil
	}

	var convErr *ConversionError
	if errors.As(err, &convErr) {
		log.Warn("direct conversion failed, returning empty result", "target", convErr.Target, "error", convErr.Cause)
		log.Debug("unconvertible model output", "output", utils.LimitStr(convErr.Content, 512))
		return []T{}, nil
	}
	return nil, err
}

func (c *DirectConverter[T]) convert(text string) ([]T, error) {
	return decode[T](c.schema, text, true)
}

// Outcome: no response and conversion failures are empty, anything else is
// a server error.
func (c *DirectConverter[T]) Outcome(err error) Outcome {
	var convErr *ConversionError
	switch {
	case err == nil:
		return OK
	case errors.Is(err, inference.ErrNoResponse), errors.As(err, &convErr):
		return Empty
	default:
		return ServerError
	}
}
