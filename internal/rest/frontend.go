package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the built frontend from a local directory.
// Unknown paths fall back to the index file so client-side routing works.
type FrontendHandler struct {
	dir       string
	indexFile string
	fs        http.Handler
}

func NewFrontendHandler(dir string, indexFile string) *FrontendHandler {
	return &FrontendHandler{
		dir:       dir,
		indexFile: indexFile,
		fs:        http.FileServer(http.Dir(dir)),
	}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(h.dir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))
	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		h.fs.ServeHTTP(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, h.indexFile))
}
