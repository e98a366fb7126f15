package ops

import (
	"jot/internal/sanitize"
	"jot/internal/scratchpad"
)

// LogInput contains parameters for the LogInterruption operation.
type LogInput struct {
	Note string `json:"note"`
	// Type classifies the interruption; empty means note.
	Type string `json:"type,omitempty"`
	// Priority ranks the interruption; empty means medium.
	Priority string `json:"priority,omitempty"`
}

// LogOutput contains the result of the LogInterruption operation.
type LogOutput struct {
	Path  string           `json:"path"`
	Item  ItemView         `json:"item"`
	Stats scratchpad.Stats `json:"stats"`
}

// LogInterruption captures a thought in the interruptions list so the
// current focus can resume untouched.
func (s *Service) LogInterruption(input LogInput) (out *LogOutput, err error) {
	var detail string
	defer func() { s.finish("log_interruption", detail, err) }()

	if err = s.limiter.Admit(); err != nil {
		return nil, err
	}
	if err = sanitize.Required("note", input.Note); err != nil {
		return nil, err
	}
	if err = sanitize.Text("note", input.Note, s.cfg.MaxNoteChars); err != nil {
		return nil, err
	}
	typ, err := scratchpad.ParseItemType(input.Type)
	if err != nil {
		return nil, err
	}
	prio, err := scratchpad.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	var item scratchpad.Item
	path, doc, err := s.mutate(func(d *scratchpad.Document) {
		item = d.LogInterruption(input.Note, typ, prio, s.now())
	})
	if err != nil {
		return nil, err
	}

	detail = string(typ) + "/" + string(prio)
	return &LogOutput{
		Path:  relLocation(s.resolver.Root(), path),
		Item:  itemView(item),
		Stats: doc.Stats(),
	}, nil
}
