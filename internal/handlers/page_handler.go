package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
)

// PageHandler owns the parsed page templates and serves static assets.
type PageHandler struct {
	logger    arbor.ILogger
	templates *template.Template
	pagesDir  string
}

// NewPageHandler parses the page templates and returns the handler.
func NewPageHandler(logger arbor.ILogger) *PageHandler {
	pagesDir := findPagesDir()

	templates := template.Must(template.ParseGlob(filepath.Join(pagesDir, "*.html")))

	return &PageHandler{
		logger:    logger,
		templates: templates,
		pagesDir:  pagesDir,
	}
}

// findPagesDir locates the pages directory
func findPagesDir() string {
	// Check common locations
	dirs := []string{
		"./pages",  // Running from project root
		"../pages", // Running from bin/
		".",        // Current directory (for deployed bin/)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err == nil {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// Render executes the named page template into the response. Rendering
// failures become a plain 500; the template set is parsed at startup so
// failures here mean a data problem, not a missing file.
func (h *PageHandler) Render(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, templateName, data); err != nil {
		h.logger.Error().
			Err(err).
			Str("template", templateName).
			Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// StaticFileHandler serves static files (CSS, JS, images)
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	staticDir := filepath.Join(h.pagesDir, "static")

	path := strings.TrimPrefix(r.URL.Path, "/static/")
	fullPath := filepath.Join(staticDir, filepath.FromSlash(path))

	// Security check - prevent directory traversal
	if !strings.HasPrefix(fullPath, staticDir) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
