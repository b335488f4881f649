package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	b := New("")

	out, err := b.Render(Recommendations, map[string]any{"bookTitle": "Dune", "count": 3})
	require.NoError(t, err)
	assert.Contains(t, out, "Recommend 3 books similar to 'Dune'.")
	assert.NotContains(t, out, "{")

	out, err = b.Render(Book, map[string]any{"title": "Dune", "format": `Schema: {"type":"array"}`})
	require.NoError(t, err)
	assert.Contains(t, out, "reviews for the book Dune.")
	assert.Contains(t, out, `Schema: {"type":"array"}`)
}

func TestRender_AllTemplates(t *testing.T) {
	b := New("")
	params := map[string]any{
		"title": "t", "format": "f", "bookTitle": "b", "count": 5,
		"name": "n", "playerName": "p", "cityName": "c", "teamName": "tm",
	}

	for _, name := range []string{Book, Recommendations, Player, Achievements, CityInfo, MovieDetails, MovieSystem, TeamReport} {
		out, err := b.Render(name, params)
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}
}

func TestRender_MissingParam(t *testing.T) {
	b := New("")

	_, err := b.Render(CityInfo, map[string]any{"city": "Paris"})

	var missing *MissingParamError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, CityInfo, missing.Template)
	assert.Equal(t, "cityName", missing.Param)
}

func TestRender_UnknownTemplate(t *testing.T) {
	b := New("")

	_, err := b.Render("nope", nil)
	assert.Error(t, err)

	_, err = b.Render("../secrets", nil)
	assert.Error(t, err)
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CityInfo+".st"), []byte("Tell me about {cityName}, briefly."), 0o644))

	b := New(dir)

	out, err := b.Render(CityInfo, map[string]any{"cityName": "Lisbon"})
	require.NoError(t, err)
	assert.Equal(t, "Tell me about Lisbon, briefly.", out)

	// templates missing from the directory fall back to the embedded ones
	out, err = b.Render(TeamReport, map[string]any{"teamName": "Ajax"})
	require.NoError(t, err)
	assert.Contains(t, out, "Ajax")
}

func TestText(t *testing.T) {
	b := New("")

	system, err := b.Text(MovieSystem)
	require.NoError(t, err)
	assert.Contains(t, system, "film database assistant")
}
