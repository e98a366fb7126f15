package web

import (
	"database/sql"
	"net/http"
	"strconv"

	"jot/internal/journal"
	"jot/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	svc      *ops.Service
	db       *sql.DB // activity journal; nil disables the history page data
	renderer *Renderer
}

// HandlePad handles GET /pad — render the scratchpad.
// The read goes through the full service gauntlet, rate limit included, so
// the browser cannot sidestep the limits the tools live under.
func (h *Handlers) HandlePad(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Read()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "pad", PadPageData{
		PageData: PageData{
			Title:   "Scratchpad",
			Version: h.renderer.version,
			Nav:     "pad",
		},
		Path:         out.Path,
		RenderedHTML: renderMarkdown(out.Content),
		Stats:        out.Stats,
	})
}

// HandleHistory handles GET /history — list recent journal entries.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := journal.Recent(h.db, parseIntParam(r, "limit", 50))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "history", HistoryPageData{
		PageData: PageData{
			Title:   "History",
			Version: h.renderer.version,
			Nav:     "history",
		},
		Entries:        entries,
		JournalEnabled: h.db != nil,
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
