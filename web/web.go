// Package web holds the page template and static assets of the form server.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed all:templates all:static
var content embed.FS

// Static returns the static assets rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates parses the page templates
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(content, "templates/*.tmpl")
}
