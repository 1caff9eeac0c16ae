package router

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// SPA serves the single-page application built into dir. Paths that are not
// files fall back to index.html so the client-side router can handle them.
// Paths under apiPrefix are never rewritten and answer 404 instead.
func SPA(dir, apiPrefix string) http.Handler {
	fsys := os.DirFS(dir)
	files := http.FileServerFS(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiPrefix != "" && (r.URL.Path == apiPrefix || strings.HasPrefix(r.URL.Path, apiPrefix+"/")) {
			http.NotFound(w, r)
			return
		}
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			files.ServeHTTP(w, r)
			return
		}
		if info, err := fs.Stat(fsys, name); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFileFS(w, r, fsys, "index.html")
	})
}
