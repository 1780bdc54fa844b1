// Package web serves the demo greeting over HTTP.
// Binds 0.0.0.0 by default, like the development server it replaces.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/error.html
var templateFS embed.FS

var errorTemplate = template.Must(template.ParseFS(templateFS, "templates/error.html"))
