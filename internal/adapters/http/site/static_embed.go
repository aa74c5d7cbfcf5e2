package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// FS returns the dashboard assets: index.html with the trends, ranking,
// game finder and similar games tabs, plus app.js and style.css, rooted
// so index.html is served at /.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
