package publish

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/swingsignal/internal/report"
)

func testLogger() arbor.ILogger { return arbor.NewLogger() }

const validDaily = `{
	"report_metadata": {"title": "SwingSignal Report", "generated_date": "2025-12-24", "total_signals": 2},
	"signals": [
		{"symbol": "TCS.NS", "action": "BUY", "score": "91", "trade_setup": {"entry": 3550, "stop": 3490, "target": 3700}},
		{"symbol": "INFY.NS", "action": "SELL", "score": "78", "trade_setup": {"entry": 1460, "stop": 1502, "target": 1400}}
	]
}`

const validWeekly = `{
	"meta": {"week_ending": "2026-01-10"},
	"market_overview": "Consolidation near highs."
}`

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incoming.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPublish_Daily(t *testing.T) {
	reportsDir := t.TempDir()
	src := writeSource(t, validDaily)

	p := NewPublisher(reportsDir, testLogger())
	result, err := p.Publish(src, report.KindDaily)
	require.NoError(t, err)

	assert.Equal(t, "2025-12-24", result.Date)
	assert.Equal(t, 2, result.SignalCount)
	assert.FileExists(t, filepath.Join(reportsDir, "2025-12-24.json"))
	assert.FileExists(t, filepath.Join(reportsDir, "latest.json"))
	assert.NoFileExists(t, src, "source file is removed after archiving")

	// Archived bytes are the original document, untouched.
	archived, err := os.ReadFile(result.DatedPath)
	require.NoError(t, err)
	assert.Equal(t, validDaily, string(archived))
}

func TestPublish_Weekly(t *testing.T) {
	reportsDir := t.TempDir()
	src := writeSource(t, validWeekly)

	p := NewPublisher(reportsDir, testLogger())
	result, err := p.Publish(src, report.KindWeekly)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-10", result.Date)
	assert.FileExists(t, filepath.Join(reportsDir, "weekly", "2026-01-10.json"))
	assert.FileExists(t, filepath.Join(reportsDir, "weekly", "latest.json"))
}

func TestPublish_KeepSource(t *testing.T) {
	src := writeSource(t, validWeekly)

	p := NewPublisher(t.TempDir(), testLogger(), WithKeepSource())
	_, err := p.Publish(src, report.KindWeekly)
	require.NoError(t, err)
	assert.FileExists(t, src)
}

func TestPublish_GeneratedAtTimestamp(t *testing.T) {
	doc := `{
		"meta": {"generated_at": "2025-12-28T06:29:37.692Z", "total_signals": 1},
		"signals": [{"ticker": "TCS.NS", "signal": "buy", "analysis": {"tradeSetup": {"entryZone": "3500-3550"}}}]
	}`
	src := writeSource(t, doc)

	p := NewPublisher(t.TempDir(), testLogger())
	result, err := p.Publish(src, report.KindDaily)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-28", result.Date, "date is the portion before the time separator")
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind report.Kind
		want string
	}{
		{
			"no metadata",
			`{"signals":[]}`,
			report.KindDaily,
			"missing 'report_metadata' or 'meta' field",
		},
		{
			"no date",
			`{"report_metadata":{"title":"x","total_signals":0},"signals":[]}`,
			report.KindDaily,
			"missing date field",
		},
		{
			"no total_signals",
			`{"report_metadata":{"generated_date":"2025-12-24"},"signals":[]}`,
			report.KindDaily,
			"missing 'total_signals'",
		},
		{
			"no signals array",
			`{"report_metadata":{"generated_date":"2025-12-24","total_signals":0}}`,
			report.KindDaily,
			"missing 'signals' array",
		},
		{
			"signals not an array",
			`{"report_metadata":{"generated_date":"2025-12-24","total_signals":0},"signals":"x"}`,
			report.KindDaily,
			"'signals' must be an array",
		},
		{
			"entry missing symbol",
			`{"report_metadata":{"generated_date":"2025-12-24","total_signals":1},"signals":[{"action":"BUY","trade_setup":{}}]}`,
			report.KindDaily,
			"'symbol' or 'ticker'",
		},
		{
			"entry missing trade setup",
			`{"report_metadata":{"generated_date":"2025-12-24","total_signals":1},"signals":[{"symbol":"A","action":"BUY"}]}`,
			report.KindDaily,
			"'trade_setup' or 'analysis.tradeSetup'",
		},
		{
			"bad date format",
			`{"report_metadata":{"generated_date":"24/12/2025","total_signals":0},"signals":[]}`,
			report.KindDaily,
			"not a valid date",
		},
		{
			"weekly without content",
			`{"meta":{"week_ending":"2026-01-10"}}`,
			report.KindWeekly,
			"missing content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &raw))

			err := Validate(raw, tt.kind)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.want)
		})
	}
}

func TestPublish_RejectsInvalidDocument(t *testing.T) {
	reportsDir := t.TempDir()
	src := writeSource(t, `{"signals":[]}`)

	p := NewPublisher(reportsDir, testLogger())
	_, err := p.Publish(src, report.KindDaily)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.FileExists(t, src, "rejected documents are left in place")
	assert.NoFileExists(t, filepath.Join(reportsDir, "latest.json"))
}
