package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"jot/internal/config"
	"jot/internal/ops"
)

// testSetup creates a service over a temporary workspace for testing.
func testSetup(t *testing.T, mutate ...func(*config.Config)) *ops.Service {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.WorkspaceRoot = t.TempDir()
	for _, fn := range mutate {
		fn(cfg)
	}

	svc, err := ops.NewService(cfg, nil, nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// mustCreate seeds a scratchpad through the create handler.
func mustCreate(t *testing.T, h *Handlers) {
	t.Helper()
	result, err := h.HandleCreate(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("create handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("create failed: %v", extractText(result))
	}
}

func TestHandleCreate(t *testing.T) {
	svc := testSetup(t)
	h := NewHandlers(svc)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "create with defaults",
			args:      nil,
			wantError: false,
		},
		{
			name:      "create again without overwrite",
			args:      nil,
			wantError: true,
			errorCode: "ALREADY_EXISTS",
		},
		{
			name:      "create again with overwrite",
			args:      map[string]any{"overwrite": true},
			wantError: false,
		},
		{
			name:      "create with traversal location",
			args:      map[string]any{"location": "../outside"},
			wantError: true,
			errorCode: "VALIDATION_ERROR",
		},
		{
			name:      "create with unlisted location",
			args:      map[string]any{"location": "src"},
			wantError: true,
			errorCode: "PATH_VIOLATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleCreate(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractText(result))
			}
		})
	}
}

func TestHandleLogInterruption(t *testing.T) {
	svc := testSetup(t)
	h := NewHandlers(svc)
	ctx := context.Background()
	mustCreate(t, h)

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "plain note",
			args:      map[string]any{"note": "call dentist"},
			wantError: false,
		},
		{
			name:      "typed and prioritized",
			args:      map[string]any{"note": "cache invalidation is wrong", "type": "bug", "priority": "high"},
			wantError: false,
		},
		{
			name:      "missing note",
			args:      map[string]any{"type": "idea"},
			wantError: true,
			errorCode: "VALIDATION_ERROR",
		},
		{
			name:      "unknown type",
			args:      map[string]any{"note": "x", "type": "malicious"},
			wantError: true,
			errorCode: "INVALID_ENUM_VALUE",
		},
		{
			name:      "script injection",
			args:      map[string]any{"note": "<script>alert(1)</script>"},
			wantError: true,
			errorCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleLogInterruption(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractText(result))
			}
		})
	}
}

// TestWorkflow_LogCompleteRead drives the full tool surface the way an MCP
// client would.
func TestWorkflow_LogCompleteRead(t *testing.T) {
	svc := testSetup(t)
	h := NewHandlers(svc)
	ctx := context.Background()
	mustCreate(t, h)

	if result, _ := h.HandleUpdateFocus(ctx, makeRequest(map[string]any{"task": "write the parser"})); result.IsError {
		t.Fatalf("update_focus failed: %v", extractText(result))
	}
	if result, _ := h.HandleLogInterruption(ctx, makeRequest(map[string]any{"note": "check CI flake"})); result.IsError {
		t.Fatalf("log_interruption failed: %v", extractText(result))
	}
	if result, _ := h.HandleAddReviewLater(ctx, makeRequest(map[string]any{"note": "read the RFC"})); result.IsError {
		t.Fatalf("add_to_review_later failed: %v", extractText(result))
	}

	completeResult, err := h.HandleMarkCompleted(ctx, makeRequest(map[string]any{"text": "check CI flake"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if completeResult.IsError {
		t.Fatalf("mark_completed failed: %v", extractText(completeResult))
	}
	var completeOut struct {
		Moved bool `json:"moved"`
	}
	if err := json.Unmarshal([]byte(extractText(completeResult)), &completeOut); err != nil {
		t.Fatalf("failed to unmarshal complete result: %v", err)
	}
	if !completeOut.Moved {
		t.Errorf("moved = false, want true for a logged item")
	}

	readResult, err := h.HandleRead(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if readResult.IsError {
		t.Fatalf("read failed: %v", extractText(readResult))
	}
	var readOut struct {
		Content string `json:"content"`
		Stats   struct {
			Logged    int `json:"logged"`
			Completed int `json:"completed"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(extractText(readResult)), &readOut); err != nil {
		t.Fatalf("failed to unmarshal read result: %v", err)
	}
	if !strings.Contains(readOut.Content, "write the parser") {
		t.Errorf("read content missing focus task")
	}
	if readOut.Stats.Logged != 2 || readOut.Stats.Completed != 1 {
		t.Errorf("stats = %+v, want logged 2 completed 1", readOut.Stats)
	}
}

func TestHandleFind(t *testing.T) {
	svc := testSetup(t)
	h := NewHandlers(svc)
	ctx := context.Background()

	result, err := h.HandleFind(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var out struct {
		Found    bool     `json:"found"`
		Searched []string `json:"searched"`
	}
	if err := json.Unmarshal([]byte(extractText(result)), &out); err != nil {
		t.Fatalf("failed to unmarshal find result: %v", err)
	}
	if out.Found {
		t.Errorf("found = true before create")
	}
	if len(out.Searched) == 0 {
		t.Errorf("searched list is empty")
	}

	mustCreate(t, h)

	result, _ = h.HandleFind(ctx, makeRequest(nil))
	if err := json.Unmarshal([]byte(extractText(result)), &out); err != nil {
		t.Fatalf("failed to unmarshal find result: %v", err)
	}
	if !out.Found {
		t.Errorf("found = false after create")
	}
}

func TestHandleRead_NotFound(t *testing.T) {
	svc := testSetup(t)
	h := NewHandlers(svc)

	result, err := h.HandleRead(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result")
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestErrorResult_RateLimitedCarriesRetryAfter(t *testing.T) {
	svc := testSetup(t, func(cfg *config.Config) {
		cfg.RequestsPerMinute = 1
	})
	h := NewHandlers(svc)
	ctx := context.Background()

	if result, _ := h.HandleFind(ctx, makeRequest(nil)); result.IsError {
		t.Fatalf("first request denied: %v", extractText(result))
	}
	result, err := h.HandleFind(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected the second request to be denied")
	}
	assertErrorCode(t, result, "RATE_LIMITED")

	var payload struct {
		Error struct {
			Details struct {
				RetryAfterSeconds float64 `json:"retry_after_seconds"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(extractText(result)), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	if payload.Error.Details.RetryAfterSeconds <= 0 {
		t.Errorf("retry_after_seconds = %v, want > 0", payload.Error.Details.RetryAfterSeconds)
	}
}

func TestNewServer_DisabledTools(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WorkspaceRoot = t.TempDir()
	cfg.DisabledTools = []string{"scratchpad_create"}

	svc, err := ops.NewService(cfg, nil, nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	s := NewServer(svc, cfg, "test")
	if s == nil {
		t.Fatalf("NewServer returned nil")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"scratchpad_read", "scratchpad_export", "bogus"})
	if len(unknown) != 2 {
		t.Fatalf("unknown = %v, want 2 entries", unknown)
	}
	if unknown[0] != "scratchpad_export" || unknown[1] != "bogus" {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Fatalf("len = %d, want %d", len(names), len(toolRegistry))
	}
	for _, name := range names {
		if !strings.HasPrefix(name, "scratchpad_") {
			t.Errorf("tool %q missing scratchpad_ prefix", name)
		}
	}
}

// assertErrorCode checks that an error result carries the expected code.
func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal([]byte(extractText(result)), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}
	if code != expectedCode {
		t.Errorf("error code = %q, want %q", code, expectedCode)
	}
}

// extractText returns the first text content of a result.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return "<no content>"
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}
	return text.Text
}
