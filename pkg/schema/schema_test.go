package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oracle/pkg/entities"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestFor_BookList(t *testing.T) {
	s, err := For[[]entities.Book]()
	require.NoError(t, err)

	assert.True(t, s.IsArray())
	assert.Equal(t, "book_list", s.Name)

	raw, err := json.Marshal(s.reflected)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "array", doc["type"])

	items, ok := doc["items"].(map[string]any)
	require.True(t, ok, "array schema should inline its items")
	assert.Equal(t, "object", items["type"])
	assert.Equal(t, false, items["additionalProperties"])
	assert.ElementsMatch(t, []any{"title", "author"}, items["required"])

	props, ok := items["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "reviews")
}

func TestFor_CachedPerType(t *testing.T) {
	a, err := For[[]entities.Player]()
	require.NoError(t, err)
	b, err := For[[]entities.Player]()
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := For[entities.Player]()
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.False(t, c.IsArray())
	assert.Equal(t, "player", c.Name)
}

func TestFor_MultiWordNames(t *testing.T) {
	s, err := For[[]entities.BookRecommendation]()
	require.NoError(t, err)
	assert.Equal(t, "book_recommendation_list", s.Name)

	s, err = For[entities.BookRecommendation]()
	require.NoError(t, err)
	assert.Equal(t, "book_recommendation", s.Name)
}

func TestSchema_Validate(t *testing.T) {
	s, err := For[[]entities.BookRecommendation]()
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "complete records",
			input: `[{"title":"Hyperion","author":"Dan Simmons","similarityReason":"Epic scope","rating":4.5}]`,
		},
		{
			name:  "empty list",
			input: `[]`,
		},
		{
			name:  "rating bounds",
			input: `[{"title":"A","author":"B","similarityReason":"C","rating":0},{"title":"D","author":"E","similarityReason":"F","rating":5}]`,
		},
		{
			name:  "rating out of range is not rejected",
			input: `[{"title":"A","author":"B","similarityReason":"C","rating":7.5}]`,
		},
		{
			name:    "missing rating",
			input:   `[{"title":"Hyperion","author":"Dan Simmons","similarityReason":"Epic scope"}]`,
			wantErr: true,
		},
		{
			name:    "rating has wrong type",
			input:   `[{"title":"Hyperion","author":"Dan Simmons","similarityReason":"Epic scope","rating":"4.5"}]`,
			wantErr: true,
		},
		{
			name:    "unknown field",
			input:   `[{"title":"Hyperion","author":"Dan Simmons","similarityReason":"Epic scope","rating":4,"isbn":"x"}]`,
			wantErr: true,
		},
		{
			name:    "object instead of array",
			input:   `{"title":"Hyperion","author":"Dan Simmons","similarityReason":"Epic scope","rating":4}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(decode(t, tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchema_Format(t *testing.T) {
	s, err := For[[]entities.Book]()
	require.NoError(t, err)
	format := s.Format()

	assert.Contains(t, format, "JSON")
	assert.Contains(t, format, `"title"`)
	assert.Contains(t, format, `"author"`)
	again, err := For[[]entities.Book]()
	require.NoError(t, err)
	assert.Equal(t, format, again.Format())
}
