package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP timeout for remote retrieval.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is the default remote request rate (per second).
	DefaultRateLimit = 10
)

// ErrReportUnavailable indicates the report document could not be
// retrieved or decoded. Shape problems inside a valid JSON document are
// never errors; the normalizer degrades those per field.
var ErrReportUnavailable = errors.New("report unavailable")

// StatusError is a non-success HTTP response during remote retrieval.
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("report request failed: status %d for %s", e.StatusCode, e.Path)
}

func (e *StatusError) Unwrap() error { return ErrReportUnavailable }

// datePattern matches the date selector tokens the archive accepts.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Loader resolves an optional date selector to a resource path under the
// report archive and retrieves the raw document. It does not interpret
// document content. The default mode reads the local flat-file tree; a
// configured base URL switches retrieval to HTTP GET against the same
// path convention.
type Loader struct {
	dir        string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// LoaderOption configures the Loader.
type LoaderOption func(*Loader)

// WithBaseURL enables remote retrieval against the given base URL.
func WithBaseURL(baseURL string) LoaderOption {
	return func(l *Loader) {
		l.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client for remote retrieval.
func WithHTTPClient(httpClient *http.Client) LoaderOption {
	return func(l *Loader) {
		l.httpClient = httpClient
	}
}

// WithRateLimit sets a custom remote request rate limit.
func WithRateLimit(requestsPerSecond int) LoaderOption {
	return func(l *Loader) {
		l.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader over the given reports directory.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir: dir,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Path maps a report kind and optional date selector to the resource
// path within the archive. A selector that is not a well-formed
// YYYY-MM-DD token falls back to the latest resource; the selector
// arrives from the page's query string and must never reach the
// filesystem unchecked.
func (l *Loader) Path(kind Kind, date string) string {
	name := "latest.json"
	if date != "" {
		if datePattern.MatchString(date) {
			name = date + ".json"
		} else if l.logger != nil {
			l.logger.Warn().
				Str("date", date).
				Msg("Ignoring malformed date selector")
		}
	}

	if kind == KindWeekly {
		return path.Join("reports", "weekly", name)
	}
	return path.Join("reports", name)
}

// Load retrieves and decodes the report document for the given kind and
// optional date selector. Any transport or decode failure wraps
// ErrReportUnavailable.
func (l *Loader) Load(ctx context.Context, kind Kind, date string) (map[string]any, error) {
	resource := l.Path(kind, date)

	if l.baseURL != "" {
		return l.fetch(ctx, resource)
	}
	return l.read(resource)
}

// read retrieves a document from the local flat-file tree.
func (l *Loader) read(resource string) (map[string]any, error) {
	// Resource paths are rooted at "reports/"; the configured directory
	// is that root.
	rel := resource[len("reports/"):]
	full := filepath.Join(l.dir, filepath.FromSlash(rel))

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportUnavailable, err)
	}

	return decodeDocument(data)
}

// fetch retrieves a document over HTTP.
func (l *Loader) fetch(ctx context.Context, resource string) (map[string]any, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportUnavailable, err)
	}

	reqURL := l.baseURL + "/" + resource

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportUnavailable, err)
	}

	if l.logger != nil {
		l.logger.Debug().
			Str("url", reqURL).
			Msg("Fetching report document")
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Path: resource}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: malformed document: %v", ErrReportUnavailable, err)
	}
	return raw, nil
}

func decodeDocument(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: malformed document: %v", ErrReportUnavailable, err)
	}
	return raw, nil
}
