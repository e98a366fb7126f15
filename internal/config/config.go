package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// WorkspaceRoot is the directory all scratchpad paths are resolved under.
	// Empty means the process working directory. Overridden by WORKSPACE_PATH.
	WorkspaceRoot string `json:"workspace_root,omitempty"`

	// GlobalPath switches the service to a single fixed scratchpad file
	// outside any workspace. When set, the allowed-directory check is skipped
	// and only this exact file is permitted. Overridden by SCRATCHPAD_GLOBAL_PATH.
	GlobalPath string `json:"global_path,omitempty"`

	// DefaultLocation is the directory create uses when none is given.
	DefaultLocation string `json:"default_location,omitempty"`

	// AllowedDirs lists the top-level directories under the workspace root
	// that may contain a scratchpad file.
	AllowedDirs []string `json:"allowed_dirs,omitempty"`

	// SearchPaths lists workspace-relative paths probed by find, in order.
	SearchPaths []string `json:"search_paths,omitempty"`

	// MaxNoteChars is the maximum character count for note text.
	MaxNoteChars int `json:"max_note_chars,omitempty"`

	// MaxTaskChars is the maximum character count for the focus task.
	MaxTaskChars int `json:"max_task_chars,omitempty"`

	// MaxFileBytes is the scratchpad file size ceiling for reads and writes.
	MaxFileBytes int64 `json:"max_file_bytes,omitempty"`

	// MaxPathChars is the maximum length of a resolved scratchpad path.
	MaxPathChars int `json:"max_path_chars,omitempty"`

	// RequestsPerMinute is the rate limiter bucket size and refill rate.
	RequestsPerMinute int `json:"requests_per_minute,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// JournalDisabled turns off the local activity journal.
	JournalDisabled bool `json:"journal_disabled,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultLocation: ".idea",
		AllowedDirs: []string{
			".idea", ".vscode", ".dart_tool", ".cache", "docs", ".scratchpad",
		},
		SearchPaths: []string{
			".idea/scratchpad.md",
			".vscode/scratchpad.md",
			".dart_tool/scratchpad.md",
			".cache/scratchpad.md",
			".scratchpad/scratchpad.md",
		},
		MaxNoteChars:      500,
		MaxTaskChars:      200,
		MaxFileBytes:      1024 * 1024,
		MaxPathChars:      256,
		RequestsPerMinute: 60,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.jot.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithWorkspace loads configuration from both the global (~/.jot) and
// workspace (.jot) directories. Workspace config is found by walking upward
// from startDir to the nearest .jot/config.json. Workspace config takes
// precedence for scalars; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithWorkspace(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	wsConfigPath := FindWorkspaceConfig(startDir)
	ws, err := loadFileRaw(wsConfigPath)
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then workspace
	return Merge(Merge(DefaultConfig(), global), ws), nil
}

// FindWorkspaceConfig walks upward from startDir to find the nearest
// .jot/config.json. Returns the path if found, or empty string if not found.
func FindWorkspaceConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".jot", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ApplyEnv overrides config fields from the environment.
// WORKSPACE_PATH sets the workspace root; SCRATCHPAD_GLOBAL_PATH switches
// the service to a single fixed scratchpad file.
func ApplyEnv(cfg *Config) {
	envOverride(&cfg.WorkspaceRoot, "WORKSPACE_PATH")
	envOverride(&cfg.GlobalPath, "SCRATCHPAD_GLOBAL_PATH")
}

// envOverride replaces *target when the environment variable is non-empty.
func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Strings: overlay wins if non-empty, else base
	result.WorkspaceRoot = stringOr(overlay.WorkspaceRoot, base.WorkspaceRoot)
	result.GlobalPath = stringOr(overlay.GlobalPath, base.GlobalPath)
	result.DefaultLocation = stringOr(overlay.DefaultLocation, base.DefaultLocation)

	// Numbers: overlay wins if non-zero, else base
	result.MaxNoteChars = intOr(overlay.MaxNoteChars, base.MaxNoteChars)
	result.MaxTaskChars = intOr(overlay.MaxTaskChars, base.MaxTaskChars)
	result.MaxPathChars = intOr(overlay.MaxPathChars, base.MaxPathChars)
	result.RequestsPerMinute = intOr(overlay.RequestsPerMinute, base.RequestsPerMinute)

	result.MaxFileBytes = overlay.MaxFileBytes
	if result.MaxFileBytes == 0 {
		result.MaxFileBytes = base.MaxFileBytes
	}

	// Booleans: overlay wins if true, else base
	result.JournalDisabled = base.JournalDisabled || overlay.JournalDisabled

	// Arrays: merge and deduplicate
	result.AllowedDirs = mergeStringSlice(base.AllowedDirs, overlay.AllowedDirs)
	result.SearchPaths = mergeStringSlice(base.SearchPaths, overlay.SearchPaths)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// stringOr returns overlay if non-empty, else base.
func stringOr(overlay, base string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

// intOr returns overlay if non-zero, else base.
func intOr(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
