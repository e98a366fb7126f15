package ops

import "jot/internal/scratchpad"

// ReadOutput contains the result of the Read operation.
type ReadOutput struct {
	Path    string           `json:"path"`
	Content string           `json:"content"`
	Stats   scratchpad.Stats `json:"stats"`
}

// Read returns the scratchpad file as written, plus the usage counters
// derived from parsing it. Hand edits survive untouched; only a document
// the parser accepts is served.
func (s *Service) Read() (out *ReadOutput, err error) {
	defer func() { s.finish("read", "", err) }()

	if err = s.limiter.Admit(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.requireScratchpad()
	if err != nil {
		return nil, err
	}
	data, doc, err := s.loadDocument(path)
	if err != nil {
		return nil, err
	}
	return &ReadOutput{
		Path:    relLocation(s.resolver.Root(), path),
		Content: string(data),
		Stats:   doc.Stats(),
	}, nil
}
