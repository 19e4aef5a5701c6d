// Package archive maintains the in-memory listing of published reports.
// The listing is derived entirely from the flat-file tree the publisher
// owns; there is no other store.
package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/swingsignal/internal/report"
)

// Entry is one published report in the archive listing.
type Entry struct {
	Date        string      `json:"date"`
	Kind        report.Kind `json:"kind"`
	SignalCount int         `json:"signal_count"`
}

var datedFile = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

// Service scans the reports tree and caches the archive listing. The
// cache refreshes on a cron schedule and whenever Refresh is called
// (the publish handler path); readers take a copy under RLock.
type Service struct {
	dir      string
	schedule string
	logger   arbor.ILogger

	mu      sync.RWMutex
	entries []Entry

	cron *cron.Cron
}

// NewService creates an archive service over the reports directory.
func NewService(dir, schedule string, logger arbor.ILogger) *Service {
	return &Service{
		dir:      dir,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start performs an initial scan and begins scheduled refreshes.
func (s *Service) Start() error {
	if err := s.Refresh(); err != nil {
		return err
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Refresh(); err != nil {
			s.logger.Warn().Err(err).Msg("Archive refresh failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	s.logger.Info().
		Str("dir", s.dir).
		Str("schedule", s.schedule).
		Msg("Archive index started")

	return nil
}

// Stop halts scheduled refreshes.
func (s *Service) Stop() {
	s.cron.Stop()
}

// Entries returns the cached listing, newest first.
func (s *Service) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Refresh rescans the reports tree. A missing directory yields an empty
// listing, not an error; the publisher creates directories lazily.
func (s *Service) Refresh() error {
	var entries []Entry

	entries = append(entries, s.scanDir(s.dir, report.KindDaily)...)
	entries = append(entries, s.scanDir(filepath.Join(s.dir, "weekly"), report.KindWeekly)...)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Kind < entries[j].Kind
	})

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return nil
}

func (s *Service) scanDir(dir string, kind report.Kind) []Entry {
	items, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("dir", dir).Msg("Archive scan failed")
		}
		return nil
	}

	var entries []Entry
	for _, item := range items {
		if item.IsDir() || !datedFile.MatchString(item.Name()) {
			continue
		}

		date := strings.TrimSuffix(item.Name(), ".json")
		entries = append(entries, Entry{
			Date:        date,
			Kind:        kind,
			SignalCount: s.signalCount(filepath.Join(dir, item.Name())),
		})
	}
	return entries
}

// signalCount reads a report file and derives its signal total. An
// unreadable or malformed file still lists in the archive, with zero.
func (s *Service) signalCount(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0
	}

	rep := report.Normalize(raw)
	return report.Aggregate(rep.Meta, rep.Signals).Total
}
