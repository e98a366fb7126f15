package ops

import (
	"jot/internal/sanitize"
	"jot/internal/scratchpad"
)

// ArchiveInput contains parameters for the ArchiveItem operation.
type ArchiveInput struct {
	Text string `json:"text"`
}

// ArchiveOutput contains the result of the ArchiveItem operation.
type ArchiveOutput struct {
	Path string   `json:"path"`
	Item ItemView `json:"item"`
	// Moved reports whether a matching pending item was relocated; false
	// means the dismissal was recorded fresh.
	Moved bool             `json:"moved"`
	Stats scratchpad.Stats `json:"stats"`
}

// ArchiveItem moves the first pending item matching text into the archived
// list. Matching works exactly as in MarkCompleted.
func (s *Service) ArchiveItem(input ArchiveInput) (out *ArchiveOutput, err error) {
	var detail string
	defer func() { s.finish("archive_item", detail, err) }()

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
		item, moved = d.ArchiveItem(input.Text, s.now())
	})
	if err != nil {
		return nil, err
	}

	detail = "recorded"
	if moved {
		detail = "moved"
	}
	return &ArchiveOutput{
		Path:  relLocation(s.resolver.Root(), path),
		Item:  itemView(item),
		Moved: moved,
		Stats: doc.Stats(),
	}, nil
}
