// Package pathsafe confines scratchpad file access to a workspace.
//
// Requests are workspace-relative. Resolution joins the request with the
// canonical workspace root, resolves symlinks on the deepest existing
// ancestor, and re-checks confinement on the result, so a symlinked
// directory cannot smuggle a path outside the root even when the final
// file does not exist yet. The final component must not be a symlink;
// opens additionally use O_NOFOLLOW.
package pathsafe

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"jot/internal/config"
	"jot/internal/errors"
)

var allowedExtensions = []string{".md", ".txt", ".markdown"}

// Resolver validates scratchpad paths. It never creates or mutates files.
type Resolver struct {
	root        string // canonical workspace root, empty in global mode
	globalPath  string // the single permitted file in global mode
	allowedDirs []string
	maxPath     int
	maxBytes    int64
}

// NewResolver builds a resolver from the runtime configuration. In
// workspace mode the root must exist; its symlinks are resolved once here
// so later confinement checks compare against the real location.
func NewResolver(cfg *config.Config) (*Resolver, error) {
	r := &Resolver{
		allowedDirs: cfg.AllowedDirs,
		maxPath:     cfg.MaxPathChars,
		maxBytes:    cfg.MaxFileBytes,
	}

	if cfg.GlobalPath != "" {
		abs, err := filepath.Abs(filepath.Clean(cfg.GlobalPath))
		if err != nil {
			return nil, errors.NewValidation("global_path", "not a usable path")
		}
		r.globalPath = abs
		return r, nil
	}

	if cfg.WorkspaceRoot == "" {
		return nil, errors.NewValidation("workspace", "workspace root is not configured")
	}
	abs, err := filepath.Abs(cfg.WorkspaceRoot)
	if err != nil {
		return nil, errors.NewValidation("workspace", "not a usable path")
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, errors.NewValidation("workspace", "workspace root does not exist")
	}
	r.root = canonical
	return r, nil
}

// GlobalMode reports whether the resolver permits only the fixed global
// scratchpad file.
func (r *Resolver) GlobalMode() bool {
	return r.globalPath != ""
}

// Root returns the canonical workspace root, or the empty string in
// global mode.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve validates a workspace-relative path and returns its absolute,
// symlink-resolved form. In global mode the request must be empty or name
// the global file exactly; the allowed-directory rule is skipped there,
// extension and length rules are not.
func (r *Resolver) Resolve(rel string) (string, error) {
	if r.GlobalMode() {
		return r.resolveGlobal(rel)
	}

	if rel == "" || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", errors.NewPathViolation()
	}
	if containsTraversal(rel) {
		return "", errors.NewPathViolation()
	}

	candidate := filepath.Join(r.root, rel)
	inside, err := filepath.Rel(r.root, candidate)
	if err != nil || !isWithin(inside) {
		return "", errors.NewPathViolation()
	}

	// The file must sit under one of the allowed directories; a file
	// directly at the workspace root has no directory segment to allow.
	segments := strings.Split(inside, string(filepath.Separator))
	if len(segments) < 2 || !r.isAllowedDir(segments[0]) {
		return "", errors.NewPathViolation()
	}

	if err := checkExtension(candidate); err != nil {
		return "", err
	}
	// Length is checked before symlink resolution: an over-long component
	// makes EvalSymlinks fail with ENAMETOOLONG, which would otherwise be
	// misreported as a confinement violation.
	if err := r.checkLength(candidate); err != nil {
		return "", err
	}

	resolved, err := resolveExisting(candidate)
	if err != nil {
		return "", errors.NewPathViolation()
	}
	inside, err = filepath.Rel(r.root, resolved)
	if err != nil || !isWithin(inside) {
		return "", errors.NewPathViolation()
	}

	if err := rejectSymlink(resolved); err != nil {
		return "", err
	}
	if err := r.checkLength(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

func (r *Resolver) resolveGlobal(rel string) (string, error) {
	if rel != "" {
		abs, err := filepath.Abs(filepath.Clean(rel))
		if err != nil || abs != r.globalPath {
			return "", errors.NewPathViolation()
		}
	}
	if err := checkExtension(r.globalPath); err != nil {
		return "", err
	}
	if err := rejectSymlink(r.globalPath); err != nil {
		return "", err
	}
	if err := r.checkLength(r.globalPath); err != nil {
		return "", err
	}
	return r.globalPath, nil
}

// CheckReadSize rejects an existing file over the size ceiling before it
// is loaded. A missing file passes; the caller decides what absence means.
func (r *Resolver) CheckReadSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewIO(err)
	}
	if info.Size() > r.maxBytes {
		return errors.NewSizeExceeded(r.maxBytes, info.Size())
	}
	return nil
}

// CheckWriteSize rejects serialized content over the size ceiling before
// any byte reaches disk, leaving the previous file intact.
func (r *Resolver) CheckWriteSize(size int64) error {
	if size > r.maxBytes {
		return errors.NewSizeExceeded(r.maxBytes, size)
	}
	return nil
}

func (r *Resolver) isAllowedDir(segment string) bool {
	for _, dir := range r.allowedDirs {
		if segment == dir {
			return true
		}
	}
	return false
}

func (r *Resolver) checkLength(path string) error {
	if utf8.RuneCountInString(path) > r.maxPath {
		return errors.NewPathTooLong(r.maxPath)
	}
	return nil
}

func checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return errors.NewExtensionNotAllowed(allowedExtensions)
}

// rejectSymlink refuses a final component that exists as a symlink.
// O_NOFOLLOW at open time would catch this too; rejecting here gives a
// structured error instead of a raw open failure.
func rejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return nil
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return errors.NewPathViolation()
	}
	return nil
}

// isWithin reports whether a Rel result stays inside the base directory.
func isWithin(rel string) bool {
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// containsTraversal checks each component for "..". Forward slashes are
// checked on every platform because requests arrive as user input.
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}

// resolveExisting resolves symlinks on the deepest existing ancestor of
// path and rejoins the not-yet-existing suffix.
func resolveExisting(path string) (string, error) {
	var suffix []string
	cur := path
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			for i := len(suffix) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, suffix[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return path, nil
		}
		suffix = append(suffix, filepath.Base(cur))
		cur = parent
	}
}
