package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI Page routes (HTML templates)
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/weekly", s.app.ReportHandler.WeeklyPageHandler)
	mux.HandleFunc("/archive", s.app.ReportHandler.ArchivePageHandler)

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// Raw report documents (the flat-file archive itself)
	reportsFS := http.FileServer(http.Dir(s.app.Config.Reports.Dir))
	mux.Handle("/reports/", http.StripPrefix("/reports/", reportsFS))

	// API routes - Reports
	mux.HandleFunc("/api/reports/daily", s.app.ReportHandler.DailyAPIHandler)
	mux.HandleFunc("/api/reports/weekly", s.app.ReportHandler.WeeklyAPIHandler)
	mux.HandleFunc("/api/archive", s.app.ReportHandler.ArchiveAPIHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	return mux
}

// handleRoot serves the daily page at the site root and 404s everything
// else; ServeMux treats "/" as a catch-all.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.app.ReportHandler.DailyPageHandler(w, r)
}
