// Package assets embeds the page template and the static files it loads.
package assets

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html static/*
var FS embed.FS

// Templates parses every embedded page template.
func Templates() (*template.Template, error) {
	return template.ParseFS(FS, "templates/*.html")
}

// Static returns the static directory rooted at its own top level.
func Static() (fs.FS, error) {
	return fs.Sub(FS, "static")
}
