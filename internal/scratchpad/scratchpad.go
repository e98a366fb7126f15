// Package scratchpad implements the sectioned markdown document at the core
// of jot: a current focus, interruption/idea entries, review-later items,
// completed items, and archived items, with derived usage statistics.
//
// The model is pure and in-memory. Mutations take the current time from the
// caller so behavior is deterministic under test; persistence lives in ops.
package scratchpad

import (
	"strings"
	"time"

	"jot/internal/errors"
)

// ItemType classifies an item. Each type has a fixed emoji used in rendering.
type ItemType string

const (
	TypeIdea     ItemType = "idea"
	TypeBug      ItemType = "bug"
	TypeFeature  ItemType = "feature"
	TypeQuestion ItemType = "question"
	TypeContact  ItemType = "contact"
	TypeRefactor ItemType = "refactor"
	TypeTask     ItemType = "task"
	TypeNote     ItemType = "note"
)

// DefaultType is used when an item type is not given.
const DefaultType = TypeNote

var typeEmoji = map[ItemType]string{
	TypeIdea:     "💡",
	TypeBug:      "🐛",
	TypeFeature:  "✨",
	TypeQuestion: "❓",
	TypeContact:  "📞",
	TypeRefactor: "🔧",
	TypeTask:     "📝",
	TypeNote:     "📌",
}

// Emoji returns the rendering emoji for the type.
func (t ItemType) Emoji() string {
	return typeEmoji[t]
}

// ItemTypes returns all valid type values in display order.
func ItemTypes() []string {
	return []string{"idea", "bug", "feature", "question", "contact", "refactor", "task", "note"}
}

// ParseItemType normalizes and validates a type value.
// Empty input yields DefaultType; unknown values are rejected.
func ParseItemType(s string) (ItemType, error) {
	norm := Normalize(s)
	if norm == "" {
		return DefaultType, nil
	}
	t := ItemType(norm)
	if _, ok := typeEmoji[t]; !ok {
		return "", errors.NewInvalidEnum("type", ItemTypes())
	}
	return t, nil
}

// Priority ranks an item. The item line carries the word; the emoji
// (🔴 🟡 🟢) is for display surfaces such as the web view.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is used when a priority is not given.
const DefaultPriority = PriorityMedium

var priorityEmoji = map[Priority]string{
	PriorityHigh:   "🔴",
	PriorityMedium: "🟡",
	PriorityLow:    "🟢",
}

// Emoji returns the rendering emoji for the priority.
func (p Priority) Emoji() string {
	return priorityEmoji[p]
}

// Priorities returns all valid priority values in display order.
func Priorities() []string {
	return []string{"high", "medium", "low"}
}

// ParsePriority normalizes and validates a priority value.
// Empty input yields DefaultPriority; unknown values are rejected.
func ParsePriority(s string) (Priority, error) {
	norm := Normalize(s)
	if norm == "" {
		return DefaultPriority, nil
	}
	p := Priority(norm)
	if _, ok := priorityEmoji[p]; !ok {
		return "", errors.NewInvalidEnum("priority", Priorities())
	}
	return p, nil
}

// Item is a single scratchpad entry. Text is always a single line.
// Exactly one of DoneAt/DroppedAt is non-zero once the item reaches the
// Completed/Archived list; both are zero while it is pending.
type Item struct {
	Text      string
	Type      ItemType
	Priority  Priority
	CreatedAt time.Time
	DoneAt    time.Time
	DroppedAt time.Time
}

// NewItem builds an item with folded single-line text and a minute-precision
// creation stamp.
func NewItem(text string, typ ItemType, prio Priority, now time.Time) Item {
	return Item{
		Text:      SingleLine(text),
		Type:      typ,
		Priority:  prio,
		CreatedAt: stamp(now),
	}
}

// Document is the in-memory scratchpad. An item lives in exactly one of the
// four lists at any time; Statistics are derived from the lists, never stored.
type Document struct {
	FocusTask  string // empty = no active task
	FocusSince string // clock label "15:04"; empty when no focus was set

	Interruptions []Item
	ReviewLater   []Item
	Completed     []Item
	Archived      []Item

	UpdatedAt time.Time // zero = never mutated
}

// Stats holds the derived usage counters.
type Stats struct {
	Logged    int `json:"logged"`
	Completed int `json:"completed"`
	Archived  int `json:"archived"`
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Stats derives the usage counters from the live lists.
func (d *Document) Stats() Stats {
	return Stats{
		Logged:    len(d.Interruptions) + len(d.ReviewLater) + len(d.Completed) + len(d.Archived),
		Completed: len(d.Completed),
		Archived:  len(d.Archived),
	}
}

// ReservedFocusText reports whether text would render identically to the
// empty-focus placeholder and be read back as no focus at all. Callers
// reject such input before it reaches SetFocus, keeping the render/parse
// round trip exact.
func ReservedFocusText(text string) bool {
	return strings.EqualFold(SingleLine(text), noFocusTask)
}

// SetFocus replaces the current focus task and stamps the start label.
func (d *Document) SetFocus(task string, now time.Time) {
	d.FocusTask = SingleLine(task)
	d.FocusSince = now.Format(clockLayout)
	d.touch(now)
}

// LogInterruption appends a new item to the Interruptions list.
func (d *Document) LogInterruption(text string, typ ItemType, prio Priority, now time.Time) Item {
	item := NewItem(text, typ, prio, now)
	d.Interruptions = append(d.Interruptions, item)
	d.touch(now)
	return item
}

// AddReviewLater appends a new item with default type and priority to the
// To Review Later list.
func (d *Document) AddReviewLater(text string, now time.Time) Item {
	item := NewItem(text, DefaultType, DefaultPriority, now)
	d.ReviewLater = append(d.ReviewLater, item)
	d.touch(now)
	return item
}

// MarkCompleted moves the first pending item whose normalized text matches
// text into the Completed list, searching Interruptions before ReviewLater.
// When no item matches, a fresh record is appended directly to Completed
// (direct completion without prior logging) and moved is false.
func (d *Document) MarkCompleted(text string, now time.Time) (Item, bool) {
	if item, ok := d.takePending(text); ok {
		item.DoneAt = stamp(now)
		d.Completed = append(d.Completed, item)
		d.touch(now)
		return item, true
	}

	item := NewItem(text, DefaultType, DefaultPriority, now)
	item.DoneAt = stamp(now)
	d.Completed = append(d.Completed, item)
	d.touch(now)
	return item, false
}

// ArchiveItem moves the first pending item whose normalized text matches
// text into the Archived list, searching Interruptions before ReviewLater.
// When no item matches, a fresh record is appended directly to Archived and
// moved is false.
func (d *Document) ArchiveItem(text string, now time.Time) (Item, bool) {
	if item, ok := d.takePending(text); ok {
		item.DroppedAt = stamp(now)
		d.Archived = append(d.Archived, item)
		d.touch(now)
		return item, true
	}

	item := NewItem(text, DefaultType, DefaultPriority, now)
	item.DroppedAt = stamp(now)
	d.Archived = append(d.Archived, item)
	d.touch(now)
	return item, false
}

// takePending removes and returns the first pending item matching text.
// Interruptions are searched before ReviewLater; matching is
// normalized-exact (trimmed, lowercased, whitespace collapsed).
func (d *Document) takePending(text string) (Item, bool) {
	key := Normalize(SingleLine(text))
	for _, list := range []*[]Item{&d.Interruptions, &d.ReviewLater} {
		for i, item := range *list {
			if Normalize(item.Text) == key {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return item, true
			}
		}
	}
	return Item{}, false
}

func (d *Document) touch(now time.Time) {
	d.UpdatedAt = stamp(now)
}

// stamp truncates to minute precision so the in-memory value matches the
// rendered value exactly.
func stamp(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
