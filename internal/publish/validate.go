package publish

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/swingsignal/internal/report"
)

// ValidationError aggregates every structure problem found in a
// document, so a caller sees the full list in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "report validation failed: " + strings.Join(e.Problems, "; ")
}

var validate = validator.New()

// documentHeader carries the metadata fields checked at publish time.
// Normalization tolerates anything; publishing does not, because a badly
// dated file would archive under the wrong name forever.
type documentHeader struct {
	WeekEnding    string `validate:"omitempty,datetime=2006-01-02"`
	GeneratedDate string `validate:"omitempty,datetime=2006-01-02"`
	GeneratedAt   string
}

// Validate performs the publish-time structure checks for a document of
// the given kind. Daily reports need dated metadata, a signal total, and
// a signals array whose entries identify a symbol, an action, and a
// trade setup under either the primary or the legacy field names. Weekly
// digests need dated metadata and at least one content section.
func Validate(raw map[string]any, kind report.Kind) error {
	var problems []string

	meta, hasMeta := metadataMap(raw)
	if !hasMeta {
		problems = append(problems, "missing 'report_metadata' or 'meta' field")
	}

	header := documentHeader{
		WeekEnding:    stringField(meta, "week_ending"),
		GeneratedDate: stringField(meta, "generated_date"),
		GeneratedAt:   stringField(meta, "generated_at"),
	}

	if err := validate.Struct(header); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			problems = append(problems, fmt.Sprintf("metadata field %s is not a valid date", fieldErr.Field()))
		}
	}

	if hasMeta {
		switch kind {
		case report.KindWeekly:
			if header.WeekEnding == "" && header.GeneratedDate == "" && header.GeneratedAt == "" {
				problems = append(problems, "missing date field (week_ending, generated_date, or generated_at)")
			}
		default:
			if header.GeneratedDate == "" && header.GeneratedAt == "" {
				problems = append(problems, "missing date field (generated_date or generated_at)")
			}
			if _, ok := meta["total_signals"]; !ok {
				problems = append(problems, "missing 'total_signals' in metadata")
			}
		}
	}

	if kind == report.KindWeekly {
		problems = append(problems, validateWeeklyContent(raw)...)
	} else {
		problems = append(problems, validateSignals(raw)...)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validateSignals(raw map[string]any) []string {
	signals, ok := raw["signals"].([]any)
	if !ok {
		if _, present := raw["signals"]; present {
			return []string{"'signals' must be an array"}
		}
		return []string{"missing 'signals' array"}
	}

	if len(signals) == 0 {
		return nil
	}

	// The first entry stands in for the batch; upstream generators emit
	// uniform entries.
	entry, ok := signals[0].(map[string]any)
	if !ok {
		return []string{"signal entries must be objects"}
	}

	var problems []string
	analysisObj, _ := entry["analysis"].(map[string]any)

	if stringField(entry, "symbol") == "" && stringField(entry, "ticker") == "" {
		problems = append(problems, "signal missing required field: 'symbol' or 'ticker'")
	}
	if stringField(entry, "action") == "" && stringField(entry, "signal") == "" {
		problems = append(problems, "signal missing required field: 'action' or 'signal'")
	}

	_, hasSetup := entry["trade_setup"]
	_, hasNestedSetup := analysisObj["tradeSetup"]
	if !hasSetup && !hasNestedSetup {
		problems = append(problems, "signal missing required field: 'trade_setup' or 'analysis.tradeSetup'")
	}

	return problems
}

func validateWeeklyContent(raw map[string]any) []string {
	for _, key := range []string{"market_overview", "key_insights", "top_picks", "sector_analysis", "outlook"} {
		if _, ok := raw[key]; ok {
			return nil
		}
	}
	return []string{"missing content - need at least one of: market_overview, key_insights, top_picks, sector_analysis, outlook"}
}

func metadataMap(raw map[string]any) (map[string]any, bool) {
	if m, ok := raw["report_metadata"].(map[string]any); ok {
		return m, true
	}
	if m, ok := raw["meta"].(map[string]any); ok {
		return m, true
	}
	return map[string]any{}, false
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
