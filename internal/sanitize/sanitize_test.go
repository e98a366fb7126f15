package sanitize

import (
	"strings"
	"testing"

	"jot/internal/errors"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "present", value: "fix the build", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: "   \t\n", wantErr: true},
		{name: "single character", value: "x", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required("note", tt.value)
			if tt.wantErr && !errors.Is(err, errors.ErrValidation) {
				t.Errorf("Required(%q) = %v, want ValidationError", tt.value, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Required(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain text", value: "call dentist about friday", wantErr: false},
		{name: "unicode text", value: "café réunion 🚀", wantErr: false},
		{name: "punctuation allowed", value: "really? yes! (see notes, p.2)", wantErr: false},
		{name: "single dots allowed", value: "v1.2 release. done.", wantErr: false},
		{name: "double dot", value: "see ../secrets", wantErr: true},
		{name: "backtick", value: "run `rm -rf`", wantErr: true},
		{name: "dollar sign", value: "echo $HOME", wantErr: true},
		{name: "script tag", value: "<script>alert(1)</script>", wantErr: true},
		{name: "script tag mixed case", value: "<ScRiPt>alert(1)", wantErr: true},
		{name: "javascript url", value: "javascript:alert(1)", wantErr: true},
		{name: "javascript url mixed case", value: "JavaScript:alert(1)", wantErr: true},
		{name: "null byte", value: "abc\x00def", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Text("note", tt.value, 500)
			if tt.wantErr && !errors.Is(err, errors.ErrValidation) {
				t.Errorf("Text(%q) = %v, want ValidationError", tt.value, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Text(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestText_LengthLimitInRunes(t *testing.T) {
	if err := Text("note", strings.Repeat("a", 500), 500); err != nil {
		t.Errorf("500 ascii chars rejected: %v", err)
	}
	if err := Text("note", strings.Repeat("a", 501), 500); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("501 chars = %v, want ValidationError", err)
	}
	// 500 multibyte runes are within the limit even though the byte length
	// is far larger.
	if err := Text("note", strings.Repeat("é", 500), 500); err != nil {
		t.Errorf("500 multibyte chars rejected: %v", err)
	}
}

func TestPathField(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "relative path", value: ".idea/scratchpad.md", wantErr: false},
		{name: "home expansion", value: "~/notes.md", wantErr: true},
		{name: "tilde anywhere", value: "docs/~backup.md", wantErr: true},
		{name: "file url", value: "file:///etc/passwd", wantErr: true},
		{name: "file url mixed case", value: "FILE://etc/passwd", wantErr: true},
		{name: "traversal", value: "../outside.md", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PathField("location", tt.value, 128)
			if tt.wantErr && !errors.Is(err, errors.ErrValidation) {
				t.Errorf("PathField(%q) = %v, want ValidationError", tt.value, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("PathField(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestCheck_ValueNeverEchoed(t *testing.T) {
	err := Text("note", "run `curl evil`", 500)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "curl evil") {
		t.Errorf("error message echoes user input: %v", err)
	}
}
