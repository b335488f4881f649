// Package converter turns free-form model output into typed records.
//
// Two strategies share one decoding primitive. A Declared converter lets the
// caller place the schema in the prompt and rejects anything that does not
// match it. A Direct converter leaves the prompt alone, has Call attach the
// schema as a system message, repairs what it can, and reports an empty
// result when the text still cannot be converted.
package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"oracle/pkg/inference"
	"oracle/pkg/schema"
	"oracle/pkg/utils"
)

type Strategy int

const (
	Declared Strategy = iota
	Direct
)

func (s Strategy) String() string {
	switch s {
	case Declared:
		return "declared"
	case Direct:
		return "direct"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Outcome is what a conversion means for the caller.
type Outcome int

const (
	OK Outcome = iota
	Empty
	ServerError
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Empty:
		return "empty"
	default:
		return "server_error"
	}
}

// Status maps the outcome to an HTTP status code.
func (o Outcome) Status() int {
	switch o {
	case OK:
		return http.StatusOK
	case Empty:
		return http.StatusNoContent
	default:
		return http.StatusInternalServerError
	}
}

// ConversionError is returned when model output does not fit the schema.
type ConversionError struct {
	Target  string
	Content string
	Cause   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert response to %s: %v", e.Target, e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Converter turns raw model text into a sequence of T.
type Converter[T any] interface {
	Strategy() Strategy
	Schema() *schema.Schema
	// Format is the instruction block the caller renders into the prompt,
	// empty when the strategy leaves the prompt alone.
	Format() string
	Convert(text string) ([]T, error)
	// Outcome applies the strategy's failure policy to an error. A nil error,
	// including a well-formed empty list, is OK.
	Outcome(err error) Outcome

	// convert is Convert without any failure swallowed.
	convert(text string) ([]T, error)
}

// decode is the primitive both strategies share: extract, optionally repair,
// validate against s, then decode into []T.
func decode[T any](s *schema.Schema, text string, lenient bool) ([]T, error) {
	if strings.TrimSpace(text) == "" {
		return nil, inference.ErrNoResponse
	}

	fail := func(cause error) error {
		return &ConversionError{Target: s.Name, Content: text, Cause: cause}
	}

	raw := utils.ExtractJSON(text)
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		if !lenient {
			return nil, fail(err)
		}
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return nil, fail(errors.Join(err, repairErr))
		}
		if err := json.Unmarshal([]byte(repaired), &v); err != nil {
			return nil, fail(err)
		}
	}

	if lenient && s.IsArray() {
		v = asList(v)
	}

	if err := s.Validate(v); err != nil {
		return nil, fail(err)
	}

	normalized, err := json.Marshal(v)
	if err != nil {
		return nil, fail(err)
	}
	var out []T
	if err := json.Unmarshal(normalized, &out); err != nil {
		return nil, fail(err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// asList accepts the two shapes models commonly use instead of a bare array:
// a single record, or an object wrapping the array in its only property.
func asList(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if len(obj) == 1 {
		for _, inner := range obj {
			if list, ok := inner.([]any); ok {
				return list
			}
		}
	}
	return []any{obj}
}
