package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/swingsignal/internal/archive"
	"github.com/ternarybob/swingsignal/internal/render"
	"github.com/ternarybob/swingsignal/internal/report"
)

// newTestHandler wires a report handler over a temp reports tree. The
// page handler is nil; the API paths never touch templates.
func newTestHandler(t *testing.T) (*ReportHandler, string) {
	t.Helper()

	dir := t.TempDir()
	logger := arbor.NewLogger()

	svc := archive.NewService(dir, "0 */10 * * * *", logger)
	require.NoError(t, svc.Refresh())

	h := NewReportHandler(report.NewLoader(dir), render.NewRenderer(logger), svc, nil, logger)
	return h, dir
}

func TestDailyAPIHandler(t *testing.T) {
	h, dir := newTestHandler(t)

	doc := `{"report_metadata":{"title":"Daily","generated_date":"2025-12-24","total_signals":2},"signals":[{"symbol":"TCS.NS","action":"BUY"},{"symbol":"INFY.NS","action":"SELL"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "latest.json"), []byte(doc), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/daily", nil)
	rec := httptest.NewRecorder()
	h.DailyAPIHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Meta    report.Metadata `json:"meta"`
		Summary report.Summary  `json:"summary"`
		Signals []report.Signal `json:"signals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Daily", resp.Meta.Title)
	assert.Equal(t, report.Summary{Total: 2, BuyCount: 1, SellCount: 1}, resp.Summary)
	require.Len(t, resp.Signals, 2)
	assert.Equal(t, report.ActionSell, resp.Signals[1].Action)
}

func TestDailyAPIHandler_MissingReportIs404(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/daily", nil)
	rec := httptest.NewRecorder()
	h.DailyAPIHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unable to load report")
}

func TestDailyAPIHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reports/daily", nil)
	rec := httptest.NewRecorder()
	h.DailyAPIHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWeeklyAPIHandler_DatedDigest(t *testing.T) {
	h, dir := newTestHandler(t)

	doc := `{"meta":{"week_ending":"2026-01-10"},"outlook":"Steady."}`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "weekly"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekly", "2026-01-10.json"), []byte(doc), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/weekly?date=2026-01-10", nil)
	rec := httptest.NewRecorder()
	h.WeeklyAPIHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Digest *report.Digest `json:"digest"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Digest)
	assert.Equal(t, "Steady.", resp.Digest.Outlook)
}

func TestArchiveAPIHandler(t *testing.T) {
	h, dir := newTestHandler(t)

	doc := `{"report_metadata":{"generated_date":"2025-12-24","total_signals":3},"signals":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025-12-24.json"), []byte(doc), 0644))
	require.NoError(t, h.archive.Refresh())

	req := httptest.NewRequest(http.MethodGet, "/api/archive", nil)
	rec := httptest.NewRecorder()
	h.ArchiveAPIHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []archive.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "2025-12-24", resp.Entries[0].Date)
	assert.Equal(t, 3, resp.Entries[0].SignalCount)
}
