package scratchpad

import (
	"fmt"
	"strings"
)

const (
	// formatVersion is embedded in the document marker. Parsing rejects
	// documents stamped with a version this build does not understand.
	formatVersion = 1

	// StampLayout is the minute-precision timestamp format used on item
	// lines and in operation output.
	StampLayout = "2006-01-02 15:04"

	clockLayout = "15:04"

	docTitle = "# 📋 Scratchpad"
	docIntro = "Quick capture for the current focus, interruptions, and follow-ups."

	noFocusTask = "_No active task_"
	noFocusTime = "--:--"

	neverUpdated = "never"
)

// Render serializes the document into its canonical markdown form.
// The output is deterministic: the same document always renders to the same
// bytes, and Parse(Render(d)) reproduces d exactly.
func Render(d *Document) []byte {
	var b strings.Builder

	b.WriteString(docTitle + "\n\n")
	fmt.Fprintf(&b, "<!-- jot:format %d -->\n\n", formatVersion)
	b.WriteString(docIntro + "\n")

	for _, id := range sectionOrder {
		b.WriteString("\n---\n\n")
		b.WriteString("## " + sectionTitles[id] + "\n\n")
		renderSection(&b, d, id)
	}

	return []byte(b.String())
}

func renderSection(b *strings.Builder, d *Document, id sectionID) {
	switch id {
	case sectionFocus:
		renderFocus(b, d)
	case sectionInterruptions:
		renderItems(b, id, d.Interruptions)
	case sectionReview:
		renderItems(b, id, d.ReviewLater)
	case sectionCompleted:
		renderItems(b, id, d.Completed)
	case sectionArchived:
		renderItems(b, id, d.Archived)
	case sectionStats:
		renderStats(b, d)
	}
}

func renderFocus(b *strings.Builder, d *Document) {
	since := d.FocusSince
	task := d.FocusTask
	if task == "" {
		since = ""
		task = noFocusTask
	}
	if since == "" {
		since = noFocusTime
	}
	fmt.Fprintf(b, "**Started:** `%s`\n", since)
	fmt.Fprintf(b, "**Task:** %s\n", task)
}

func renderItems(b *strings.Builder, id sectionID, items []Item) {
	if len(items) == 0 {
		b.WriteString(sectionPlaceholders[id] + "\n")
		return
	}
	for _, item := range items {
		b.WriteString(itemLine(item) + "\n")
	}
}

// itemLine formats a single entry, for example
// "- 💡 [idea/high 2026-02-03 14:07] Call the dentist back". The bracket
// carries type, priority, creation stamp, and for resolved items the
// done/dropped stamp. Text always follows the closing bracket.
func itemLine(item Item) string {
	meta := fmt.Sprintf("%s/%s %s", item.Type, item.Priority, item.CreatedAt.Format(StampLayout))
	switch {
	case !item.DoneAt.IsZero():
		meta += " done " + item.DoneAt.Format(StampLayout)
	case !item.DroppedAt.IsZero():
		meta += " dropped " + item.DroppedAt.Format(StampLayout)
	}
	return fmt.Sprintf("- %s [%s] %s", item.Type.Emoji(), meta, item.Text)
}

func renderStats(b *strings.Builder, d *Document) {
	stats := d.Stats()
	updated := neverUpdated
	if !d.UpdatedAt.IsZero() {
		updated = d.UpdatedAt.Format(StampLayout)
	}
	fmt.Fprintf(b, "- **Logged:** %d\n", stats.Logged)
	fmt.Fprintf(b, "- **Completed:** %d\n", stats.Completed)
	fmt.Fprintf(b, "- **Archived:** %d\n", stats.Archived)
	fmt.Fprintf(b, "- **Last updated:** %s\n", updated)
}
