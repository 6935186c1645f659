// Package view renders the HTML pages of the site.  Templates and static
// assets are embedded in the binary.  Every page is parsed together with the
// shared layout and partials into its own template set, so pages can all
// define a "content" block without clashing.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Flash types understood by the layout.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-shot message shown above the page content.
type Flash struct {
	Type     string
	Messages []string
}

// Page is the value every template is executed with.
type Page struct {
	Title string
	Flash *Flash
	// Token is the signed form token embedded in forms and the page meta.
	Token string
	Data  any
}

// ErrorData is the Data of the error pages.
type ErrorData struct {
	Status  int
	Message string
}

// Renderer implements echo.Renderer over the embedded templates.  Names
// are paths below templates/ without the extension, e.g. "pages/home".
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// Funcs are the functions available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": FormatDateTime,
		"has":      has,
		"choice":   choice,
	}
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	return parse(templateFS)
}

func parse(fsys fs.FS) (*Renderer, error) {
	base, err := template.New("base").Funcs(Funcs()).ParseFS(fsys, "templates/layouts/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(fsys, path.Join("templates", dir, "*.html"))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			t, err := base.Clone()
			if err != nil {
				return nil, err
			}
			if _, err := t.ParseFS(fsys, file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
			r.pages[name] = t
		}
	}
	return r, nil
}

// Render executes the named page inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether the named page exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Static returns the embedded static assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FormatDateTime formats t for display.  "full" gives
// "Wednesday October, 14, 2026 at 8:00PM", "medium" gives
// "Wed 10, 14, 2026 8:00PM"; any other format name is used as a layout.
func FormatDateTime(t time.Time, format string) string {
	switch format {
	case "full":
		return t.Format("Monday January, 2, 2006 at 3:04PM")
	case "medium":
		return t.Format("Mon 01, 02, 2006 3:04PM")
	default:
		return t.Format(format)
	}
}

// choiceSet carries the current value of a select and its options.
type choiceSet struct {
	Value   any
	Choices []string
}

func choice(value any, choices []string) choiceSet {
	return choiceSet{Value: value, Choices: choices}
}

func has(list any, v string) bool {
	items, ok := list.([]string)
	if !ok {
		return false
	}
	return slices.Contains(items, v)
}
