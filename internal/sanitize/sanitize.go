// Package sanitize screens free-text input before it reaches the document
// or the filesystem.
//
// Checks are reject-based: a value either passes and is used exactly as
// given, or the call fails with a validation error naming the field. The
// sanitizer never rewrites input, so what the user wrote is what the
// scratchpad stores.
package sanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"jot/internal/errors"
)

// textPatterns are rejected in every free-text field. The comparisons run
// against a lowercased copy, which also makes the plain substrings
// case-insensitive; none of them contain letters where that matters.
var textPatterns = []string{
	"..",
	"`",
	"$",
	"<script",
	"javascript:",
}

// pathPatterns are additionally rejected in path-valued fields.
var pathPatterns = []string{
	"~",
	"file://",
}

// Required rejects a field that is empty after trimming.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidation(field, "is required")
	}
	return nil
}

// Text validates a free-text field against the blocked patterns and a
// length limit counted in characters, not bytes.
func Text(field, value string, maxChars int) error {
	return check(field, value, maxChars, textPatterns)
}

// PathField validates a path-valued field. Paths get the free-text checks
// plus home expansion and URL scheme patterns.
func PathField(field, value string, maxChars int) error {
	if err := check(field, value, maxChars, textPatterns); err != nil {
		return err
	}
	return check(field, value, maxChars, pathPatterns)
}

func check(field, value string, maxChars int, patterns []string) error {
	if strings.ContainsRune(value, '\x00') {
		return errors.NewValidation(field, "contains a null byte")
	}
	if maxChars > 0 && utf8.RuneCountInString(value) > maxChars {
		return errors.NewValidation(field, fmt.Sprintf("exceeds %d characters", maxChars))
	}
	lower := strings.ToLower(value)
	for _, pattern := range patterns {
		if strings.Contains(lower, pattern) {
			return errors.NewValidation(field, fmt.Sprintf("contains blocked sequence %q", pattern))
		}
	}
	return nil
}
