// Package prompt renders the instruction templates sent to the model.
//
// Templates are plain text files with {name} placeholders. The defaults are
// embedded in the binary; a directory can override any of them by file name.
package prompt

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/valyala/fasttemplate"

	"oracle/pkg/flight"
)

// Template names.
const (
	Book            = "book"
	Recommendations = "recommendations"
	Player          = "player"
	Achievements    = "achievements"
	CityInfo        = "cityInfo"
	MovieDetails    = "movieDetails"
	MovieSystem     = "movieSystem"
	TeamReport      = "teamReport"
)

const ext = ".st"

//go:embed templates/*.st
var embedded embed.FS

// MissingParamError is returned when a template references a parameter that
// was not supplied.
type MissingParamError struct {
	Template string
	Param    string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("template %q: missing parameter %q", e.Template, e.Param)
}

type Builder struct {
	dir       string
	templates *flight.Cache[string, *fasttemplate.Template]
}

// New returns a Builder. A non-empty dir is searched before the embedded
// templates.
func New(dir string) *Builder {
	b := &Builder{dir: dir}
	b.templates = flight.NewCache(b.compile)
	return b
}

// Text returns a template's source without rendering it.
func (b *Builder) Text(name string) (string, error) {
	src, err := b.load(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(src), nil
}

// Render fills the template's placeholders from params.
func (b *Builder) Render(name string, params map[string]any) (string, error) {
	t, err := b.templates.Get(name)
	if err != nil {
		return "", err
	}

	out, err := t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		key := strings.TrimSpace(tag)
		v, ok := params[key]
		if !ok {
			return 0, &MissingParamError{Template: name, Param: key}
		}
		return io.WriteString(w, fmt.Sprint(v))
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (b *Builder) compile(name string) (*fasttemplate.Template, error) {
	src, err := b.load(name)
	if err != nil {
		return nil, err
	}
	t, err := fasttemplate.NewTemplate(src, "{", "}")
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}
	return t, nil
}

func (b *Builder) load(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid template name %q", name)
	}

	if b.dir != "" {
		data, err := os.ReadFile(filepath.Join(b.dir, name+ext))
		switch {
		case err == nil:
			log.Debug("using template override", "template", name, "dir", b.dir)
			return string(data), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read template %q: %w", name, err)
		}
	}

	data, err := embedded.ReadFile("templates/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("unknown template %q: %w", name, err)
	}
	return string(data), nil
}
