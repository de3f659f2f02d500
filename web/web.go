// Package web embeds the HTML templates into the binary, so the server runs
// from any working directory without shipping a templates folder.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var files embed.FS

// Templates returns the template files rooted at the templates directory:
// "base.html", "index.html", and so on.
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "templates" is a constant.
		panic(err)
	}
	return sub
}
