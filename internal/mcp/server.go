// Package mcp exposes the scratchpad operations as MCP tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jot/internal/config"
	"jot/internal/ops"
)

// toolEntry pairs a tool definition factory with a handler factory.
// Definitions are config-dependent (enum values, length limits in
// descriptions), so they are built at registration time.
type toolEntry struct {
	def     func(*config.Config) mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"scratchpad_create": {
		def:     createToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"scratchpad_find": {
		def:     findToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFind },
	},
	"scratchpad_read": {
		def:     readToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRead },
	},
	"scratchpad_log_interruption": {
		def:     logInterruptionToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogInterruption },
	},
	"scratchpad_update_focus": {
		def:     updateFocusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdateFocus },
	},
	"scratchpad_add_to_review_later": {
		def:     addReviewLaterToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddReviewLater },
	},
	"scratchpad_mark_completed": {
		def:     markCompletedToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMarkCompleted },
	},
	"scratchpad_archive_item": {
		def:     archiveItemToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleArchiveItem },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the scratchpad tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(svc *ops.Service, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"jot",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(svc)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def(cfg), entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(svc *ops.Service, cfg *config.Config, version string) error {
	s := NewServer(svc, cfg, version)
	return server.ServeStdio(s)
}
