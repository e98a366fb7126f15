package ops

// FindOutput contains the result of the Find operation.
type FindOutput struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
	// Searched lists the probed locations when nothing was found.
	Searched []string `json:"searched,omitempty"`
}

// Find locates the scratchpad for the current workspace without touching
// its contents.
func (s *Service) Find() (out *FindOutput, err error) {
	var detail string
	defer func() { s.finish("find", detail, err) }()

	if err = s.limiter.Admit(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, found, err := s.locate()
	if err != nil {
		return nil, err
	}
	if found {
		rel := relLocation(s.resolver.Root(), path)
		detail = rel
		return &FindOutput{Found: true, Path: rel}, nil
	}

	out = &FindOutput{Found: false}
	if s.resolver.GlobalMode() {
		out.Searched = []string{path}
	} else {
		out.Searched = append([]string(nil), s.cfg.SearchPaths...)
	}
	return out, nil
}
