// Package publish archives externally-generated report documents into
// the flat-file tree the site serves from: reports/<date>.json plus a
// rewritten latest.json, with structure validation up front.
package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/swingsignal/internal/report"
)

// Result describes a completed publish.
type Result struct {
	Date        string
	SignalCount int
	DatedPath   string
	LatestPath  string
}

// Publisher validates and archives report documents.
type Publisher struct {
	reportsDir string
	logger     arbor.ILogger
	keepSource bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithKeepSource leaves the source file in place after publishing.
// The default mirrors the publish convention: the source is removed once
// archived so stray report files do not accumulate at the repo root.
func WithKeepSource() Option {
	return func(p *Publisher) {
		p.keepSource = true
	}
}

// NewPublisher creates a publisher writing into the given reports
// directory.
func NewPublisher(reportsDir string, logger arbor.ILogger, opts ...Option) *Publisher {
	p := &Publisher{
		reportsDir: reportsDir,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish validates the document at srcPath and archives it under the
// reports tree for its kind. The original bytes are copied through
// untouched; publishing never rewrites document content.
func (p *Publisher) Publish(srcPath string, kind report.Kind) (*Result, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := Validate(raw, kind); err != nil {
		return nil, err
	}

	rep := report.Normalize(raw)
	date := rep.Meta.Date
	if date == "" {
		return nil, &ValidationError{Problems: []string{"missing date field"}}
	}

	destDir := p.reportsDir
	if kind == report.KindWeekly {
		destDir = filepath.Join(p.reportsDir, "weekly")
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	result := &Result{
		Date:        date,
		SignalCount: report.Aggregate(rep.Meta, rep.Signals).Total,
		DatedPath:   filepath.Join(destDir, date+".json"),
		LatestPath:  filepath.Join(destDir, "latest.json"),
	}

	if err := os.WriteFile(result.DatedPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write dated report: %w", err)
	}
	if err := os.WriteFile(result.LatestPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to update latest report: %w", err)
	}

	p.logger.Info().
		Str("date", date).
		Str("kind", string(kind)).
		Int("signals", result.SignalCount).
		Str("path", result.DatedPath).
		Msg("Report published")

	if !p.keepSource {
		if err := os.Remove(srcPath); err != nil {
			p.logger.Warn().Err(err).Str("path", srcPath).Msg("Failed to remove source file")
		}
	}

	return result, nil
}
