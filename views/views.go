// Package views holds the HTML templates of the shop page.
package views

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Load parses the embedded templates for gin's HTML renderer
func Load() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.tmpl")
}
