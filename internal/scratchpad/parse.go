package scratchpad

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jot/internal/errors"
)

var (
	headerPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)[ \t]*$`)
	markerPattern = regexp.MustCompile(`^<!-- jot:format (\d+) -->$`)

	// itemPattern captures type, priority, creation stamp, an optional
	// done/dropped stamp, and the text after the metadata bracket. The
	// leading emoji is tolerated but not required.
	itemPattern = regexp.MustCompile(`^- (?:\S+ )?\[([a-z]+)/([a-z]+) (\d{4}-\d{2}-\d{2} \d{2}:\d{2})(?: (done|dropped) (\d{4}-\d{2}-\d{2} \d{2}:\d{2}))?\] (.+)$`)

	startedPattern = regexp.MustCompile("^\\*\\*Started:\\*\\* `([^`]+)`$")
	taskPattern    = regexp.MustCompile(`^\*\*Task:\*\* (.+)$`)
	clockPattern   = regexp.MustCompile(`^\d{2}:\d{2}$`)

	statCountPattern   = regexp.MustCompile(`^- \*\*(Logged|Completed|Archived):\*\* (\d+)$`)
	lastUpdatedPattern = regexp.MustCompile(`^- \*\*Last updated:\*\* (.+)$`)
)

// Parse reads a rendered document back into its in-memory form.
//
// Parsing is strict: a document that cannot be fully understood is rejected
// rather than partially loaded, because a partial load would silently drop
// entries on the next save. Statistics counts are ignored and re-derived
// from the lists.
func Parse(data []byte) (*Document, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	doc := New()
	seen := make(map[sectionID]bool)
	current := sectionID("") // empty while still in the preamble

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if m := headerPattern.FindStringSubmatch(line); m != nil {
			level, title := len(m[1]), m[2]
			if level == 1 {
				if current != "" {
					return nil, parseErr("unexpected document title inside a section")
				}
				continue
			}
			if level != 2 {
				return nil, parseErr("unsupported header level %d", level)
			}
			id, ok := matchSection(title)
			if !ok {
				return nil, parseErr("unknown section %q", title)
			}
			if seen[id] {
				return nil, parseErr("duplicate section %q", sectionTitles[id])
			}
			seen[id] = true
			current = id
			continue
		}

		if line == "" || line == "---" {
			continue
		}

		switch current {
		case "":
			if err := parsePreambleLine(line); err != nil {
				return nil, err
			}
		case sectionFocus:
			if err := parseFocusLine(doc, line); err != nil {
				return nil, err
			}
		case sectionInterruptions, sectionReview, sectionCompleted, sectionArchived:
			if err := parseItemSectionLine(doc, current, line); err != nil {
				return nil, err
			}
		case sectionStats:
			if err := parseStatsLine(doc, line); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range coreSections {
		if !seen[id] {
			return nil, parseErr("missing section %q", sectionTitles[id])
		}
	}
	if doc.FocusTask == "" {
		doc.FocusSince = ""
	}
	return doc, nil
}

// parsePreambleLine handles lines before the first section header. Intro
// prose is tolerated (it is regenerated on render); entries are not, since
// swallowing one would lose it on save.
func parsePreambleLine(line string) error {
	if m := markerPattern.FindStringSubmatch(line); m != nil {
		version, err := strconv.Atoi(m[1])
		if err != nil || version != formatVersion {
			return parseErr("unsupported format version %s", m[1])
		}
		return nil
	}
	if itemPattern.MatchString(line) {
		return parseErr("entry found before any section")
	}
	return nil
}

func parseFocusLine(doc *Document, line string) error {
	if m := startedPattern.FindStringSubmatch(line); m != nil {
		value := m[1]
		if value == noFocusTime {
			doc.FocusSince = ""
			return nil
		}
		if !clockPattern.MatchString(value) {
			return parseErr("unreadable focus start time")
		}
		doc.FocusSince = value
		return nil
	}
	if m := taskPattern.FindStringSubmatch(line); m != nil {
		value := strings.TrimSpace(m[1])
		if strings.EqualFold(value, noFocusTask) {
			doc.FocusTask = ""
			return nil
		}
		doc.FocusTask = value
		return nil
	}
	return parseErr("unrecognized line in section %q", sectionTitles[sectionFocus])
}

func parseItemSectionLine(doc *Document, id sectionID, line string) error {
	if isPlaceholder(id, line) {
		return nil
	}

	item, err := parseItemLine(line)
	if err != nil {
		return parseErr("unreadable entry in section %q", sectionTitles[id])
	}

	// The resolution stamp must agree with the list the entry sits in.
	switch id {
	case sectionCompleted:
		if item.DoneAt.IsZero() {
			return parseErr("completed entry missing its done stamp")
		}
	case sectionArchived:
		if item.DroppedAt.IsZero() {
			return parseErr("archived entry missing its dropped stamp")
		}
	default:
		if !item.DoneAt.IsZero() || !item.DroppedAt.IsZero() {
			return parseErr("resolved entry in pending section %q", sectionTitles[id])
		}
	}

	switch id {
	case sectionInterruptions:
		doc.Interruptions = append(doc.Interruptions, item)
	case sectionReview:
		doc.ReviewLater = append(doc.ReviewLater, item)
	case sectionCompleted:
		doc.Completed = append(doc.Completed, item)
	case sectionArchived:
		doc.Archived = append(doc.Archived, item)
	}
	return nil
}

func parseItemLine(line string) (Item, error) {
	m := itemPattern.FindStringSubmatch(line)
	if m == nil {
		return Item{}, fmt.Errorf("no item match")
	}

	typ := ItemType(m[1])
	if _, ok := typeEmoji[typ]; !ok {
		return Item{}, fmt.Errorf("unknown type %q", m[1])
	}
	prio := Priority(m[2])
	if _, ok := priorityEmoji[prio]; !ok {
		return Item{}, fmt.Errorf("unknown priority %q", m[2])
	}

	created, err := parseStamp(m[3])
	if err != nil {
		return Item{}, err
	}

	item := Item{Text: m[6], Type: typ, Priority: prio, CreatedAt: created}
	if m[4] != "" {
		resolved, err := parseStamp(m[5])
		if err != nil {
			return Item{}, err
		}
		switch m[4] {
		case "done":
			item.DoneAt = resolved
		case "dropped":
			item.DroppedAt = resolved
		}
	}
	return item, nil
}

func parseStatsLine(doc *Document, line string) error {
	if statCountPattern.MatchString(line) {
		return nil
	}
	if m := lastUpdatedPattern.FindStringSubmatch(line); m != nil {
		value := strings.TrimSpace(m[1])
		if value == neverUpdated {
			doc.UpdatedAt = time.Time{}
			return nil
		}
		updated, err := parseStamp(value)
		if err != nil {
			return parseErr("unreadable last-updated stamp")
		}
		doc.UpdatedAt = updated
		return nil
	}
	return parseErr("unrecognized line in section %q", sectionTitles[sectionStats])
}

func parseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(StampLayout, s, time.Local)
}

func parseErr(format string, args ...any) error {
	return errors.NewValidation("document", fmt.Sprintf(format, args...))
}
