package ops

import (
	"jot/internal/errors"
	"jot/internal/sanitize"
	"jot/internal/scratchpad"
)

// FocusInput contains parameters for the UpdateFocus operation.
type FocusInput struct {
	Task string `json:"task"`
}

// FocusOutput contains the result of the UpdateFocus operation.
type FocusOutput struct {
	Path string `json:"path"`
	Task string `json:"task"`
	// Since is the wall-clock time the focus started, HH:MM.
	Since string `json:"since"`
}

// UpdateFocus replaces the current focus task. The previous focus is not
// recorded anywhere; completing it first is the caller's business.
func (s *Service) UpdateFocus(input FocusInput) (out *FocusOutput, err error) {
	defer func() { s.finish("update_focus", "", err) }()

	if err = s.limiter.Admit(); err != nil {
		return nil, err
	}
	if err = sanitize.Required("task", input.Task); err != nil {
		return nil, err
	}
	if err = sanitize.Text("task", input.Task, s.cfg.MaxTaskChars); err != nil {
		return nil, err
	}
	if scratchpad.ReservedFocusText(input.Task) {
		err = errors.NewValidation("task", "matches the empty-focus placeholder")
		return nil, err
	}

	path, doc, err := s.mutate(func(d *scratchpad.Document) {
		d.SetFocus(input.Task, s.now())
	})
	if err != nil {
		return nil, err
	}
	return &FocusOutput{
		Path:  relLocation(s.resolver.Root(), path),
		Task:  doc.FocusTask,
		Since: doc.FocusSince,
	}, nil
}
