package scratchpad

import (
	"strings"
	"unicode"
)

// sectionID identifies one of the fixed document sections.
type sectionID string

const (
	sectionFocus         sectionID = "focus"
	sectionInterruptions sectionID = "interruptions"
	sectionReview        sectionID = "review"
	sectionCompleted     sectionID = "completed"
	sectionArchived      sectionID = "archived"
	sectionStats         sectionID = "stats"
)

// sectionTitles are the canonical header titles written on render.
var sectionTitles = map[sectionID]string{
	sectionFocus:         "🎯 Current Focus",
	sectionInterruptions: "💡 Interruptions / Ideas",
	sectionReview:        "🔄 To Review Later",
	sectionCompleted:     "✅ Completed Today",
	sectionArchived:      "🗑️ Archived / Dismissed",
	sectionStats:         "📊 Usage Statistics",
}

// sectionOrder is the fixed render order. Parsing accepts any order.
var sectionOrder = []sectionID{
	sectionFocus,
	sectionInterruptions,
	sectionReview,
	sectionCompleted,
	sectionArchived,
	sectionStats,
}

// coreSections must all be present for a document to parse. Statistics are
// derived, so that section is optional on input.
var coreSections = []sectionID{
	sectionFocus,
	sectionInterruptions,
	sectionReview,
	sectionCompleted,
	sectionArchived,
}

// sectionSynonyms maps normalized header text (emoji stripped, lowercased)
// to a section. Hand-edited files keep working as long as the wording is
// recognizable.
var sectionSynonyms = map[string]sectionID{
	"current focus": sectionFocus,
	"focus":         sectionFocus,
	"now":           sectionFocus,

	"interruptions / ideas": sectionInterruptions,
	"interruptions":         sectionInterruptions,
	"ideas":                 sectionInterruptions,
	"inbox":                 sectionInterruptions,

	"to review later": sectionReview,
	"review later":    sectionReview,
	"review":          sectionReview,
	"later":           sectionReview,

	"completed today": sectionCompleted,
	"completed":       sectionCompleted,
	"done":            sectionCompleted,

	"archived / dismissed": sectionArchived,
	"archived":             sectionArchived,
	"dismissed":            sectionArchived,

	"usage statistics": sectionStats,
	"statistics":       sectionStats,
	"stats":            sectionStats,
}

// matchSection resolves a header title to a known section. The leading emoji
// and any decoration before the first letter or digit are ignored.
func matchSection(title string) (sectionID, bool) {
	id, ok := sectionSynonyms[Normalize(stripLeadingSymbols(title))]
	return id, ok
}

// stripLeadingSymbols drops runes up to the first letter or digit.
func stripLeadingSymbols(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return s[i:]
		}
	}
	return ""
}

// sectionPlaceholders are rendered when an item section is empty, and
// recognized (then discarded) on parse.
var sectionPlaceholders = map[sectionID]string{
	sectionInterruptions: "_No interruptions yet_",
	sectionReview:        "_Empty - all caught up!_",
	sectionCompleted:     "_No completions yet_",
	sectionArchived:      "_Nothing archived yet_",
}

// isPlaceholder reports whether a trimmed line is the empty-section
// placeholder for the given section.
func isPlaceholder(id sectionID, line string) bool {
	ph, ok := sectionPlaceholders[id]
	return ok && strings.EqualFold(strings.TrimSpace(line), ph)
}
