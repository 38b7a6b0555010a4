package main

import (
	"html/template"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/ui"
)

// templateData is the single view-model handed to every page. Identity
// fields come from the session; the rest is page-specific.
type templateData struct {
	UserName string
	UserIcon string
	IsAdmin  bool
	Cart     []models.Movie

	Error      string
	FormErrors map[string]string
	Form       any

	Movies     []models.Movie
	Movie      *models.Movie
	Genres     []string
	Icons      []string
	Activities []models.Activity

	Sort   string
	Search string
	Genre  string
}

var functions = template.FuncMap{
	"humanDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}
	pages, err := fs.Glob(ui.Files, "html/pages/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		name := filepath.Base(page)
		tmpl, err := template.New(name).Funcs(functions).ParseFS(ui.Files, "html/base.html", page)
		if err != nil {
			return nil, err
		}
		cache[name] = tmpl
	}
	return cache, nil
}
