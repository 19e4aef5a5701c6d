package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/swingsignal/internal/archive"
	"github.com/ternarybob/swingsignal/internal/render"
	"github.com/ternarybob/swingsignal/internal/report"
)

// ReportHandler serves the report pages and the report JSON API. Each
// request runs the full load/normalize/aggregate/render pipeline and
// owns its state end to end; nothing is cached between requests.
type ReportHandler struct {
	loader   *report.Loader
	renderer *render.Renderer
	archive  *archive.Service
	pages    *PageHandler
	logger   arbor.ILogger
}

// NewReportHandler creates a report handler.
func NewReportHandler(loader *report.Loader, renderer *render.Renderer, archiveSvc *archive.Service, pages *PageHandler, logger arbor.ILogger) *ReportHandler {
	return &ReportHandler{
		loader:   loader,
		renderer: renderer,
		archive:  archiveSvc,
		pages:    pages,
		logger:   logger,
	}
}

// pageData is the data handed to every page template.
type pageData struct {
	Page         string
	Model        *render.DisplayModel
	Error        bool
	EmptyMessage string
	Entries      []archive.Entry
}

// DailyPageHandler serves the daily signals page.
func (h *ReportHandler) DailyPageHandler(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, report.KindDaily, "index.html", "daily")
}

// WeeklyPageHandler serves the weekly report page, rendering either the
// digest sections or the weekly signal cards depending on document shape.
func (h *ReportHandler) WeeklyPageHandler(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, report.KindWeekly, "weekly.html", "weekly")
}

func (h *ReportHandler) servePage(w http.ResponseWriter, r *http.Request, kind report.Kind, templateName, pageName string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	date := r.URL.Query().Get("date")

	raw, err := h.loader.Load(r.Context(), kind, date)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("date", date).
			Msg("Report load failed")

		h.pages.Render(w, templateName, pageData{Page: pageName, Error: true})
		return
	}

	model := h.renderer.RenderReport(kind, report.Normalize(raw))

	h.pages.Render(w, templateName, pageData{
		Page:         pageName,
		Model:        model,
		EmptyMessage: render.EmptyMessage,
	})
}

// ArchivePageHandler serves the archive listing page.
func (h *ReportHandler) ArchivePageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	h.pages.Render(w, "archive.html", pageData{
		Page:    "archive",
		Entries: h.archive.Entries(),
	})
}

// reportResponse is the JSON API shape for one report.
type reportResponse struct {
	Meta    report.Metadata `json:"meta"`
	Summary report.Summary  `json:"summary"`
	Signals []report.Signal `json:"signals,omitempty"`
	Digest  *report.Digest  `json:"digest,omitempty"`
}

// DailyAPIHandler returns the normalized daily report as JSON.
func (h *ReportHandler) DailyAPIHandler(w http.ResponseWriter, r *http.Request) {
	h.serveAPI(w, r, report.KindDaily)
}

// WeeklyAPIHandler returns the normalized weekly report as JSON.
func (h *ReportHandler) WeeklyAPIHandler(w http.ResponseWriter, r *http.Request) {
	h.serveAPI(w, r, report.KindWeekly)
}

func (h *ReportHandler) serveAPI(w http.ResponseWriter, r *http.Request, kind report.Kind) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	date := r.URL.Query().Get("date")

	raw, err := h.loader.Load(r.Context(), kind, date)
	if err != nil {
		if errors.Is(err, report.ErrReportUnavailable) {
			WriteError(w, http.StatusNotFound, "unable to load report")
		} else {
			WriteError(w, http.StatusInternalServerError, "unable to load report")
		}
		return
	}

	rep := report.Normalize(raw)

	WriteJSON(w, http.StatusOK, reportResponse{
		Meta:    rep.Meta,
		Summary: report.Aggregate(rep.Meta, rep.Signals),
		Signals: rep.Signals,
		Digest:  rep.Digest,
	})
}

// ArchiveAPIHandler returns the archive listing as JSON.
func (h *ReportHandler) ArchiveAPIHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": h.archive.Entries(),
	})
}
