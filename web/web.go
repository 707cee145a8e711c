// Package web serves the embedded single-page dashboard.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// Handler serves the dashboard's static assets, with index.html at the root.
func Handler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// The embed is part of the binary; a bad subtree is a build defect.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
