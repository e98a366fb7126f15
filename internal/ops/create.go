package ops

import (
	"path/filepath"

	"jot/internal/errors"
	"jot/internal/sanitize"
	"jot/internal/scratchpad"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	// Location is the workspace directory to create the scratchpad in.
	// Empty means the configured default. Ignored in global mode.
	Location string `json:"location,omitempty"`
	// Overwrite replaces an existing scratchpad instead of failing.
	Overwrite bool `json:"overwrite,omitempty"`
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	Path      string `json:"path"`
	Overwrote bool   `json:"overwrote"`
}

// Create writes a fresh scratchpad document. An existing file is preserved
// unless Overwrite is set.
func (s *Service) Create(input CreateInput) (out *CreateOutput, err error) {
	var detail string
	defer func() { s.finish("create", detail, err) }()

	if err = s.limiter.Admit(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var path string
	if s.resolver.GlobalMode() {
		path, err = s.resolver.Resolve("")
	} else {
		location := input.Location
		if location == "" {
			location = s.cfg.DefaultLocation
		}
		if err = sanitize.PathField("location", location, maxLocationChars); err != nil {
			return nil, err
		}
		path, err = s.resolver.Resolve(filepath.Join(location, scratchpadFilename))
	}
	if err != nil {
		return nil, err
	}

	overwrote := fileExists(path)
	if overwrote && !input.Overwrite {
		return nil, errors.NewAlreadyExists(relLocation(s.resolver.Root(), path))
	}

	if err = s.saveDocument(path, scratchpad.New()); err != nil {
		return nil, err
	}
	s.cachedPath = path

	rel := relLocation(s.resolver.Root(), path)
	detail = rel
	return &CreateOutput{Path: rel, Overwrote: overwrote}, nil
}
