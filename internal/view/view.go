package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"microboard/internal/models"
	"microboard/internal/session"
)

//go:embed templates
var templateFS embed.FS

// pages maps a page name to its template file under templates/.
var pages = map[string]string{
	"index":      "templates/index.html",
	"users/new":  "templates/users/new.html",
	"sign_in":    "templates/sign_in.html",
	"posts/new":  "templates/posts/new.html",
	"posts/edit": "templates/posts/edit.html",
	"error":      "templates/error.html",
}

// Data is what every page receives.
type Data struct {
	CurrentUser *models.User
	Flashes     []session.Flash
	Posts       []*models.FeedPost
	Post        *models.Post
	Form        map[string]string
	Status      int
	Message     string
}

type Renderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"ago": func(t *time.Time) string {
		if t == nil {
			return "unpublished"
		}
		return humanize.Time(*t)
	},
	"timestamp": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(time.RFC3339)
	},
}

func New() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, data Data) error {
	tmpl, ok := v.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
