// Package schema turns Go record types into JSON Schema documents that are
// shown to the model and used to validate what it sends back.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	validator "github.com/google/jsonschema-go/jsonschema"
	"github.com/invopop/jsonschema"

	"oracle/pkg/flight"
)

// Schema is the compiled shape of a Go type.
type Schema struct {
	Name string

	reflected *jsonschema.Schema
	resolved  *validator.Resolved
	format    string
}

var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
	Anonymous:                 true,
}

var schemas = flight.NewCache(compile)

// For returns the schema of T. Schemas are built once per type.
func For[T any]() (*Schema, error) {
	return schemas.Get(reflect.TypeFor[T]())
}

func compile(t reflect.Type) (*Schema, error) {
	reflected := reflector.ReflectFromType(t)
	doc, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", t, err)
	}

	var v validator.Schema
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("load schema for %s: %w", t, err)
	}
	resolved, err := v.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema for %s: %w", t, err)
	}

	indented, err := json.MarshalIndent(reflected, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", t, err)
	}

	return &Schema{
		Name:      typeName(t),
		reflected: reflected,
		resolved:  resolved,
		format:    fmt.Sprintf(formatInstructions, indented),
	}, nil
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return typeName(t.Elem()) + "_list"
	}
	if t.Name() == "" {
		return "response"
	}
	// ToSnakeCase joins words with hyphens
	return strings.ReplaceAll(jsonschema.ToSnakeCase(t.Name()), "-", "_")
}

// IsArray reports whether the root of the schema is a JSON array.
func (s *Schema) IsArray() bool {
	return s.reflected.Type == "array"
}

// Validate checks a decoded JSON value (maps, slices, float64, ...) against the schema.
func (s *Schema) Validate(instance any) error {
	return s.resolved.Validate(instance)
}

// Format is the instruction block appended to a prompt so the model answers
// in this schema.
func (s *Schema) Format() string {
	return s.format
}

const formatInstructions = "Your response must be JSON and nothing else.\n" +
	"Answer with a single RFC8259 compliant JSON value that follows the schema below exactly, " +
	"without explanations or markdown code fences.\n" +
	"JSON Schema of the expected value:\n```\n%s\n```"
