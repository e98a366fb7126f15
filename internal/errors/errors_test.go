package errors

import (
	"fmt"
	"testing"
	"time"
)

func TestJotError_Error(t *testing.T) {
	err := &JotError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "no scratchpad found; create one first",
	}

	expected := "NOT_FOUND: no scratchpad found; create one first"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewRateLimited(t *testing.T) {
	err := NewRateLimited(2500 * time.Millisecond)

	if err.Code != ErrRateLimited {
		t.Errorf("Code = %q, want %q", err.Code, ErrRateLimited)
	}
	if err.Status != 429 {
		t.Errorf("Status = %d, want 429", err.Status)
	}
	seconds, ok := err.Details["retry_after_seconds"].(float64)
	if !ok || seconds != 2.5 {
		t.Errorf("Details[retry_after_seconds] = %v, want 2.5", err.Details["retry_after_seconds"])
	}

	t.Run("zero duration still positive", func(t *testing.T) {
		err := NewRateLimited(0)
		seconds, ok := err.Details["retry_after_seconds"].(float64)
		if !ok || seconds <= 0 {
			t.Errorf("retry_after_seconds = %v, want > 0", err.Details["retry_after_seconds"])
		}
	})
}

func TestNewValidation(t *testing.T) {
	err := NewValidation("note", "contains a blocked pattern")

	if err.Code != ErrValidation {
		t.Errorf("Code = %q, want %q", err.Code, ErrValidation)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Details["field"] != "note" {
		t.Errorf("Details[field] = %v, want %q", err.Details["field"], "note")
	}
	if err.Details["reason"] != "contains a blocked pattern" {
		t.Errorf("Details[reason] = %v, want reason", err.Details["reason"])
	}
}

func TestNewInvalidEnum(t *testing.T) {
	err := NewInvalidEnum("priority", []string{"high", "medium", "low"})

	if err.Code != ErrInvalidEnumValue {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidEnumValue)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Details["field"] != "priority" {
		t.Errorf("Details[field] = %v, want %q", err.Details["field"], "priority")
	}
	if allowed, ok := err.Details["allowed"].([]string); !ok || len(allowed) != 3 {
		t.Errorf("Details[allowed] = %v, want 3 values", err.Details["allowed"])
	}
}

func TestNewPathViolation(t *testing.T) {
	err := NewPathViolation()

	if err.Code != ErrPathViolation {
		t.Errorf("Code = %q, want %q", err.Code, ErrPathViolation)
	}
	if err.Status != 403 {
		t.Errorf("Status = %d, want 403", err.Status)
	}
	// Message must stay generic: no path material leaks to the caller
	if err.Message != "path validation failed" {
		t.Errorf("Message = %q, want generic message", err.Message)
	}
}

func TestNewSizeExceeded(t *testing.T) {
	err := NewSizeExceeded(1024*1024, 2*1024*1024)

	if err.Code != ErrSizeExceeded {
		t.Errorf("Code = %q, want %q", err.Code, ErrSizeExceeded)
	}
	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["max_bytes"] != int64(1024*1024) {
		t.Errorf("Details[max_bytes] = %v, want %v", err.Details["max_bytes"], int64(1024*1024))
	}
	if err.Details["actual_bytes"] != int64(2*1024*1024) {
		t.Errorf("Details[actual_bytes] = %v, want %v", err.Details["actual_bytes"], int64(2*1024*1024))
	}
}

func TestNewAlreadyExists(t *testing.T) {
	err := NewAlreadyExists(".idea/scratchpad.md")

	if err.Code != ErrAlreadyExists {
		t.Errorf("Code = %q, want %q", err.Code, ErrAlreadyExists)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
	if err.Details["location"] != ".idea/scratchpad.md" {
		t.Errorf("Details[location] = %v, want %q", err.Details["location"], ".idea/scratchpad.md")
	}
}

func TestNewIO(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		originalErr := fmt.Errorf("open /secret/path: permission denied")
		err := NewIO(originalErr)

		if err.Code != ErrIO {
			t.Errorf("Code = %q, want %q", err.Code, ErrIO)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		// Message should be generic (not leak the underlying path)
		if err.Message != "a file system error occurred" {
			t.Errorf("Message = %q, want generic message", err.Message)
		}
		// Original error should be stored in Details for logging
		if err.Details["internal_error"] != originalErr.Error() {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], originalErr.Error())
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewIO(nil)

		if err.Message != "a file system error occurred" {
			t.Errorf("Message = %q, want generic message", err.Message)
		}
		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound()
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound()
		if Is(err, ErrAlreadyExists) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-JotError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for non-JotError")
		}
	})

	t.Run("wrapped JotError", func(t *testing.T) {
		inner := NewPathViolation()
		wrapped := fmt.Errorf("resolve: %w", inner)
		if !Is(wrapped, ErrPathViolation) {
			t.Error("Is() = false, want true for wrapped JotError")
		}
		if Is(wrapped, ErrNotFound) {
			t.Error("Is() = true, want false for wrong code on wrapped JotError")
		}
	})
}
