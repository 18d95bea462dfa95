package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// pageFiles maps clean URL paths to the HTML files that back them. The
// "/{$}" pattern matches exactly "/" under the Go 1.22 ServeMux rules.
var pageFiles = map[string]string{
	"/{$}":            "index.html",
	"/about":          "about.html",
	"/practice-areas": "practice-areas.html",
	"/attorneys":      "attorneys.html",
	"/contact":        "contact.html",
	"/privacy":        "privacy.html",
	"/terms":          "terms.html",
}

// assetDirs are the static asset directories mounted under matching URL
// prefixes.
var assetDirs = []string{"images", "css", "js", "fonts", "vendor"}

// PageRouter serves the marketing site: clean-URL HTML pages plus static
// asset mounts, all rooted under siteDir.
type PageRouter struct {
	siteDir string
}

// NewPageRouter creates a PageRouter serving files from siteDir.
func NewPageRouter(siteDir string) *PageRouter {
	return &PageRouter{siteDir: siteDir}
}

// Register installs the page routes and asset mounts on the mux.
func (p *PageRouter) Register(mux *http.ServeMux) {
	for pattern, file := range pageFiles {
		mux.HandleFunc("GET "+pattern, p.page(file))
	}
	for _, dir := range assetDirs {
		prefix := "/" + dir + "/"
		fileServer := http.FileServer(http.Dir(filepath.Join(p.siteDir, dir)))
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, fileServer))
	}
}

// page returns a handler serving one fixed HTML file. The file name comes
// from the static table above, never from the request, so there is no path
// traversal surface here.
func (p *PageRouter) page(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := os.ReadFile(filepath.Join(p.siteDir, file))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(content)
	}
}
