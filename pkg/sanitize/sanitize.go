// Package sanitize normalizes free-text input before it reaches storage or
// templates. Appointment reasons, notes, and video descriptions all pass
// through here.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Text strips control characters and HTML tags, collapses surrounding
// whitespace, and truncates to maxLen runes. maxLen <= 0 means no limit.
func Text(s string, maxLen int) string {
	s = stripControl(s)
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.TrimSpace(s)
	return truncate(s, maxLen)
}

// Line is Text plus newline removal, for single-line fields like names.
func Line(s string, maxLen int) string {
	s = Text(s, 0)
	s = strings.Join(strings.Fields(s), " ")
	return truncate(s, maxLen)
}

// Escape HTML-escapes a string for safe inclusion in rendered templates.
func Escape(s string) string {
	return html.EscapeString(s)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxLen]))
}
