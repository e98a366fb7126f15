package scratchpad

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	newlineRegex    = regexp.MustCompile(`[ \t]*(?:\r\n|\r|\n)\s*`)
)

// Normalize lowercases, trims, and collapses runs of whitespace to a single
// space. Item matching compares normalized forms so that casing and spacing
// differences do not prevent a match.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// SingleLine folds line breaks into single spaces and trims the result.
// Item text and the focus task are stored single-line so each occupies one
// markdown list or field line.
func SingleLine(s string) string {
	s = newlineRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CountChars counts user-perceived characters (runes, not bytes) for input
// length limits.
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}
