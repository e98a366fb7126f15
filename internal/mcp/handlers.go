package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"jot/internal/errors"
	"jot/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc *ops.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *ops.Service) *Handlers {
	return &Handlers{svc: svc}
}

// The ops input structs carry the JSON tags for the wire arguments, so the
// handlers decode straight into them rather than maintaining a parallel
// set of request types.

// HandleCreate handles the scratchpad_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.CreateInput](req)
	if err != nil {
		return errorResult(errors.NewValidation("arguments", "could not be decoded")), nil
	}
	result, err := h.svc.Create(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFind handles the scratchpad_find tool call.
func (h *Handlers) HandleFind(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.svc.Find()
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRead handles the scratchpad_read tool call.
func (h *Handlers) HandleRead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.svc.Read()
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLogInterruption handles the scratchpad_log_interruption tool call.
func (h *Handlers) HandleLogInterruption(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.LogInput](req)
	if err != nil {
		return errorResult(errors.NewValidation("arguments", "could not be decoded")), nil
	}
	result, err := h.svc.LogInterruption(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUpdateFocus handles the scratchpad_update_focus tool call.
func (h *Handlers) HandleUpdateFocus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.FocusInput](req)
	if err != nil {
		return errorResult(errors.NewValidation("arguments", "could not be decoded")), nil
	}
	result, err := h.svc.UpdateFocus(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAddReviewLater handles the scratchpad_add_to_review_later tool call.
func (h *Handlers) HandleAddReviewLater(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.ReviewInput](req)
	if err != nil {
		return errorResult(errors.NewValidation("arguments", "could not be decoded")), nil
	}
	result, err := h.svc.AddReviewLater(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleMarkCompleted handles the scratchpad_mark_completed tool call.
func (h *Handlers) HandleMarkCompleted(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.CompleteInput](req)
	if err != nil {
		return errorResult(errors.NewValidation("arguments", "could not be decoded")), nil
	}
	result, err := h.svc.MarkCompleted(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleArchiveItem handles the scratchpad_archive_item tool call.
func (h *Handlers) HandleArchiveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.ArchiveInput](req)
	if err != nil {
		return errorResult(errors.NewValidation("arguments", "could not be decoded")), nil
	}
	result, err := h.svc.ArchiveItem(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// IO errors keep their details server-side; everything the caller sees is
// the generic structured code/message.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if jotErr, ok := err.(*errors.JotError); ok {
		errorObj := map[string]any{
			"code":    jotErr.Code,
			"message": jotErr.Message,
			"status":  jotErr.Status,
		}
		if jotErr.Code != errors.ErrIO && jotErr.Details != nil {
			errorObj["details"] = jotErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    string(errors.ErrIO),
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
