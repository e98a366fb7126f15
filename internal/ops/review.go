package ops

import (
	"jot/internal/sanitize"
	"jot/internal/scratchpad"
)

// ReviewInput contains parameters for the AddReviewLater operation.
type ReviewInput struct {
	Note string `json:"note"`
}

// ReviewOutput contains the result of the AddReviewLater operation.
type ReviewOutput struct {
	Path  string           `json:"path"`
	Item  ItemView         `json:"item"`
	Stats scratchpad.Stats `json:"stats"`
}

// AddReviewLater queues a note for later review. Review items always carry
// the default type and priority; anything needing classification belongs
// in the interruptions list.
func (s *Service) AddReviewLater(input ReviewInput) (out *ReviewOutput, err error) {
	defer func() { s.finish("add_to_review_later", "", err) }()

	if err = s.limiter.Admit(); err != nil {
		return nil, err
	}
	if err = sanitize.Required("note", input.Note); err != nil {
		return nil, err
	}
	if err = sanitize.Text("note", input.Note, s.cfg.MaxNoteChars); err != nil {
		return nil, err
	}

	var item scratchpad.Item
	path, doc, err := s.mutate(func(d *scratchpad.Document) {
		item = d.AddReviewLater(input.Note, s.now())
	})
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{
		Path:  relLocation(s.resolver.Root(), path),
		Item:  itemView(item),
		Stats: doc.Stats(),
	}, nil
}
