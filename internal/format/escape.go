package format

import "html"

// Escape encodes a string for safe embedding as HTML text content. Every
// report-supplied string must pass through here before it reaches a
// rendered fragment; reports are external input and may carry markup or
// script. Empty input returns the empty string.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return html.EscapeString(s)
}
