package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"jot/internal/config"
	"jot/internal/scratchpad"
)

// Tool definitions. Enum constraints are declared in the schema so MCP
// clients can validate before calling; the server re-validates regardless.
// The create definition depends on the configured allowed directories, so
// definitions are built per config rather than held as package vars.

func createToolDef(cfg *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_create",
		mcp.WithDescription("Create a new scratchpad file for the current workspace. Fails if one already exists unless overwrite is set."),
		mcp.WithString("location",
			mcp.Description(fmt.Sprintf("Directory to create the scratchpad in (default %s)", cfg.DefaultLocation)),
			mcp.Enum(cfg.AllowedDirs...),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Replace an existing scratchpad instead of failing"),
		),
	)
}

func findToolDef(_ *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_find",
		mcp.WithDescription("Locate the scratchpad for the current workspace, reporting its path and whether it exists."),
	)
}

func readToolDef(_ *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_read",
		mcp.WithDescription("Read the full scratchpad content plus derived usage statistics."),
	)
}

func logInterruptionToolDef(cfg *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_log_interruption",
		mcp.WithDescription("Log an interruption or idea without losing the current focus."),
		mcp.WithString("note",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("The thought to capture (max %d characters)", cfg.MaxNoteChars)),
		),
		mcp.WithString("type",
			mcp.Description("Kind of note (default note)"),
			mcp.Enum(scratchpad.ItemTypes()...),
		),
		mcp.WithString("priority",
			mcp.Description("Priority of the note (default medium)"),
			mcp.Enum(scratchpad.Priorities()...),
		),
	)
}

func updateFocusToolDef(cfg *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_update_focus",
		mcp.WithDescription("Replace the current focus task."),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("What you are working on now (max %d characters)", cfg.MaxTaskChars)),
		),
	)
}

func addReviewLaterToolDef(cfg *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_add_to_review_later",
		mcp.WithDescription("Queue a note to review once the current focus is done."),
		mcp.WithString("note",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("The note to review later (max %d characters)", cfg.MaxNoteChars)),
		),
	)
}

func markCompletedToolDef(cfg *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_mark_completed",
		mcp.WithDescription("Mark an item as completed. Matches pending items by text (interruptions first, then review-later); unmatched text is recorded as a fresh completion."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Text of the item to complete (max %d characters)", cfg.MaxNoteChars)),
		),
	)
}

func archiveItemToolDef(cfg *config.Config) mcp.Tool {
	return mcp.NewTool("scratchpad_archive_item",
		mcp.WithDescription("Archive or dismiss an item instead of completing it. Matching works as in scratchpad_mark_completed."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Text of the item to archive (max %d characters)", cfg.MaxNoteChars)),
		),
	)
}
