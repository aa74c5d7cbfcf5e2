// Package site serves the embedded explorer dashboard.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the dashboard routes to r. The dashboard is served at
// / and its assets next to it.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	files := http.FileServer(FS())
	r.Handle("/*", files)
}
