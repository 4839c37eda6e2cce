// AngelaMos | 2026
// static.go

package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// StaticPrefix is where embedded assets are mounted.
const StaticPrefix = "/static/"

func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix(StaticPrefix, http.FileServerFS(sub))
}
