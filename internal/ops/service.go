// Package ops implements the scratchpad operations behind the MCP tools
// and the CLI.
//
// Every operation runs the same gauntlet: rate limit, input screening,
// path resolution, load, mutate, size check, atomic save. A single mutex
// serializes document access; the scratchpad is one shared file and the
// cheapest correct concurrency story is one lock around it. Failures
// before the save step leave the file untouched.
package ops

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"jot/internal/config"
	"jot/internal/errors"
	"jot/internal/journal"
	"jot/internal/pathsafe"
	"jot/internal/ratelimit"
	"jot/internal/scratchpad"
)

const (
	scratchpadFilename = "scratchpad.md"
	maxLocationChars   = 128
)

// Service owns the gates and the load-mutate-save cycle.
type Service struct {
	cfg      *config.Config
	resolver *pathsafe.Resolver
	limiter  *ratelimit.Limiter
	db       *sql.DB // activity journal; nil disables journaling
	logger   *slog.Logger

	mu         sync.Mutex
	cachedPath string // last resolved scratchpad path; re-probed when stale

	now func() time.Time
}

// NewService wires a service from the runtime configuration. db may be nil
// to disable the activity journal; logger may be nil to discard logs.
func NewService(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*Service, error) {
	resolver, err := pathsafe.NewResolver(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		cfg:      cfg,
		resolver: resolver,
		limiter:  ratelimit.New(cfg.RequestsPerMinute),
		db:       db,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// ItemView is the JSON shape of an item in operation outputs.
type ItemView struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"created_at"`
	DoneAt    string `json:"done_at,omitempty"`
	DroppedAt string `json:"dropped_at,omitempty"`
}

func itemView(item scratchpad.Item) ItemView {
	v := ItemView{
		Text:      item.Text,
		Type:      string(item.Type),
		Priority:  string(item.Priority),
		CreatedAt: item.CreatedAt.Format(scratchpad.StampLayout),
	}
	if !item.DoneAt.IsZero() {
		v.DoneAt = item.DoneAt.Format(scratchpad.StampLayout)
	}
	if !item.DroppedAt.IsZero() {
		v.DroppedAt = item.DroppedAt.Format(scratchpad.StampLayout)
	}
	return v
}

// finish journals the outcome of an operation. Journal failures are logged
// and swallowed; observability must not fail the operation itself.
func (s *Service) finish(op, detail string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(errors.CodeOf(err))
	}
	if jerr := journal.Record(s.db, op, outcome, detail); jerr != nil {
		s.logger.Warn("journal record failed", "op", op, "error", jerr)
	}
}

// locate returns the resolved path of an existing scratchpad. The cached
// path is reused while the file is still there and re-probed when it goes
// stale. Caller holds mu.
func (s *Service) locate() (string, bool, error) {
	if s.resolver.GlobalMode() {
		path, err := s.resolver.Resolve("")
		if err != nil {
			return "", false, err
		}
		return path, fileExists(path), nil
	}

	if s.cachedPath != "" {
		if fileExists(s.cachedPath) {
			return s.cachedPath, true, nil
		}
		s.cachedPath = ""
	}

	for _, rel := range s.cfg.SearchPaths {
		path, err := s.resolver.Resolve(rel)
		if err != nil {
			s.logger.Debug("skipping unusable search path", "path", rel, "error", err)
			continue
		}
		if fileExists(path) {
			s.cachedPath = path
			return path, true, nil
		}
	}
	return "", false, nil
}

// requireScratchpad is locate for operations that need the file to exist.
func (s *Service) requireScratchpad() (string, error) {
	path, found, err := s.locate()
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.NewNotFound()
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

// loadDocument reads and parses the scratchpad at path, enforcing the size
// ceiling before and during the read. The raw bytes are returned alongside
// the parsed document so read can report the file exactly as written.
func (s *Service) loadDocument(path string) ([]byte, *scratchpad.Document, error) {
	if err := s.resolver.CheckReadSize(path); err != nil {
		return nil, nil, err
	}
	file, err := openFileNoFollowRead(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	// The limit guards against the file growing between stat and read.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxFileBytes+1))
	if err != nil {
		return nil, nil, errors.NewIO(err)
	}
	if int64(len(data)) > s.cfg.MaxFileBytes {
		return nil, nil, errors.NewSizeExceeded(s.cfg.MaxFileBytes, int64(len(data)))
	}
	doc, err := scratchpad.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return data, doc, nil
}

// saveDocument renders and atomically writes the document. The size check
// runs on the serialized bytes before anything touches disk, so a denied
// write leaves the previous file intact.
func (s *Service) saveDocument(path string, doc *scratchpad.Document) error {
	data := scratchpad.Render(doc)
	if err := s.resolver.CheckWriteSize(int64(len(data))); err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// mutate runs the shared load-mutate-save cycle for operations that change
// an existing scratchpad.
func (s *Service) mutate(fn func(*scratchpad.Document)) (string, *scratchpad.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.requireScratchpad()
	if err != nil {
		return "", nil, err
	}
	_, doc, err := s.loadDocument(path)
	if err != nil {
		return "", nil, err
	}
	fn(doc)
	if err := s.saveDocument(path, doc); err != nil {
		return "", nil, err
	}
	return path, doc, nil
}

// relLocation maps an absolute scratchpad path back to its
// workspace-relative form for output, falling back to the input when the
// path is outside the workspace (global mode).
func relLocation(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
