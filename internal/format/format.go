// Package format provides display formatting for report values.
// All formatters are total: missing values render as the "N/A" sentinel
// rather than producing an error.
package format

import (
	"strconv"
	"strings"
	"time"
)

// NotAvailable is the sentinel rendered for missing values.
const NotAvailable = "N/A"

// FormatNumber renders a number with Indian digit grouping (12,34,567).
// The last three digits form one group, remaining digits group in pairs.
// A nil value renders as the N/A sentinel. Fraction digits are preserved
// as produced by shortest round-trip formatting, never padded.
func FormatNumber(n *float64) string {
	if n == nil {
		return NotAvailable
	}

	s := strconv.FormatFloat(*n, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.Index(s, "."); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx:]
	}

	grouped := groupIndian(intPart)

	if neg {
		return "-" + grouped + fracPart
	}
	return grouped + fracPart
}

// groupIndian inserts commas into a digit string using Indian grouping.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}

// FormatSetupValue renders a trade-setup field that is either a numeric
// price or a free-text range (e.g. "3500-3550"). Numeric values win when
// both are somehow present. Empty renders as the N/A sentinel. Free text
// is returned verbatim; callers escape it before embedding in markup.
func FormatSetupValue(number *float64, text string) string {
	if number != nil {
		return FormatNumber(number)
	}
	if text != "" {
		return text
	}
	return NotAvailable
}

// FormatDate renders a YYYY-MM-DD date string as a full display date,
// e.g. "Saturday, January 10, 2026". The components are parsed
// individually so no timezone interpretation can shift the day. An empty
// input returns the caller's fallback label ("Today", "This Week").
// Unparseable input passes through verbatim rather than failing.
func FormatDate(s, fallback string) string {
	if s == "" {
		return fallback
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return s
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return s
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return s
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range components (month 13 becomes
	// January of the following year). Treat any normalization as
	// unparseable input and pass the original through.
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return s
	}

	return d.Format("Monday, January 2, 2006")
}
