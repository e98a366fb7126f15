package ops

import (
	"jot/internal/sanitize"
	"jot/internal/scratchpad"
)

// CompleteInput contains parameters for the MarkCompleted operation.
type CompleteInput struct {
	Text string `json:"text"`
}

// CompleteOutput contains the result of the MarkCompleted operation.
type CompleteOutput struct {
	Path string   `json:"path"`
	Item ItemView `json:"item"`
	// Moved reports whether a matching pending item was relocated; false
	// means the completion was recorded fresh.
	Moved bool             `json:"moved"`
	Stats scratchpad.Stats `json:"stats"`
}

// MarkCompleted moves the first pending item matching text into the
// completed list. Matching is case- and whitespace-insensitive but
// otherwise exact; with no match the text is recorded as a completion
// anyway, so finished work never bounces.
func (s *Service) MarkCompleted(input CompleteInput) (out *CompleteOutput, err error) {
	var detail string
	defer func() { s.finish("mark_completed", detail, err) }()

	if err = s.limiter.Admit(); err != nil {
		return nil, err
	}
	if err = sanitize.Required("text", input.Text); err != nil {
		return nil, err
	}
	if err = sanitize.Text("text", input.Text, s.cfg.MaxNoteChars); err != nil {
		return nil, err
	}

	var (
		item  scratchpad.Item
		moved bool
	)
	path, doc, err := s.mutate(func(d *scratchpad.Document) {
		item, moved = d.MarkCompleted(input.Text, s.now())
	})
	if err != nil {
		return nil, err
	}

	detail = "recorded"
	if moved {
		detail = "moved"
	}
	return &CompleteOutput{
		Path:  relLocation(s.resolver.Root(), path),
		Item:  itemView(item),
		Moved: moved,
		Stats: doc.Stats(),
	}, nil
}
