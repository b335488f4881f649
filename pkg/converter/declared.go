package converter

import (
	"errors"

	"oracle/pkg/inference"
	"oracle/pkg/schema"
)

// DeclaredConverter embeds the JSON Schema of []T in the prompt and parses
// the answer strictly against it.
type DeclaredConverter[T any] struct {
	schema *schema.Schema
}

func NewDeclared[T any]() (*DeclaredConverter[T], error) {
	s, err := schema.For[[]T]()
	if err != nil {
		return nil, err
	}
	return &DeclaredConverter[T]{schema: s}, nil
}

func (c *DeclaredConverter[T]) Strategy() Strategy { return Declared }

func (c *DeclaredConverter[T]) Schema() *schema.Schema { return c.schema }

func (c *DeclaredConverter[T]) Format() string { return c.schema.Format() }

// Convert returns the records in text, or a *ConversionError when text does
// not match the schema. Blank text yields inference.ErrNoResponse.
func (c *DeclaredConverter[T]) Convert(text string) ([]T, error) {
	return c.convert(text)
}

func (c *DeclaredConverter[T]) convert(text string) ([]T, error) {
	return decode[T](c.schema, text, false)
}

// Outcome: no response is empty, anything else is a server error.
func (c *DeclaredConverter[T]) Outcome(err error) Outcome {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, inference.ErrNoResponse):
		return Empty
	default:
		return ServerError
	}
}
