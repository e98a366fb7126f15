package journal

import (
	"path/filepath"
	"testing"
)

func TestInit_CreatesSchemaAndReopens(t *testing.T) {
	dir := t.TempDir()

	db, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	version, err := getUserVersion(db)
	if err != nil {
		t.Fatalf("getUserVersion: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
	db.Close()

	// Reopening an existing database must not re-run migrations.
	db, err = Init(dir)
	if err != nil {
		t.Fatalf("Init (reopen): %v", err)
	}
	defer db.Close()

	if _, err := Recent(db, 10); err != nil {
		t.Errorf("Recent after reopen: %v", err)
	}
}

func TestInit_NestedBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "nested")

	db, err := Init(dir)
	if err != nil {
		t.Fatalf("Init with nested dir: %v", err)
	}
	db.Close()
}

func TestRecordAndRecent(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer db.Close()

	for _, op := range []string{"create", "log_interruption", "mark_completed"} {
		if err := Record(db, op, "ok", "location=.idea"); err != nil {
			t.Fatalf("Record(%s): %v", op, err)
		}
	}
	if err := Record(db, "read", "NOT_FOUND", ""); err != nil {
		t.Fatalf("Record(read): %v", err)
	}

	entries, err := Recent(db, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("Recent returned %d entries, want 4", len(entries))
	}

	seen := make(map[string]string)
	for _, e := range entries {
		if e.ID == "" {
			t.Error("entry missing ULID")
		}
		if e.CreatedAt == 0 {
			t.Error("entry missing created_at")
		}
		seen[e.Op] = e.Outcome
	}
	if seen["read"] != "NOT_FOUND" {
		t.Errorf("read outcome = %q, want NOT_FOUND", seen["read"])
	}
	if seen["create"] != "ok" {
		t.Errorf("create outcome = %q, want ok", seen["create"])
	}
}

func TestRecent_OrderAndLimit(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer db.Close()

	// Controlled created_at values so ordering is deterministic.
	for i, stamp := range []int64{100, 200, 300} {
		_, err := db.Exec(
			`INSERT INTO journal (id, op, outcome, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
			string(rune('a'+i)), "create", "ok", "", stamp)
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, err := Recent(db, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(entries))
	}
	if entries[0].CreatedAt != 300 || entries[1].CreatedAt != 200 {
		t.Errorf("order = %d, %d; want newest first (300, 200)",
			entries[0].CreatedAt, entries[1].CreatedAt)
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer db.Close()

	entries, err := Recent(db, 0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if entries != nil {
		t.Errorf("Recent on empty journal = %v, want nil", entries)
	}
}

func TestNilDB_Disabled(t *testing.T) {
	if err := Record(nil, "create", "ok", ""); err != nil {
		t.Errorf("Record(nil db) = %v, want nil", err)
	}
	entries, err := Recent(nil, 10)
	if err != nil || entries != nil {
		t.Errorf("Recent(nil db) = %v, %v; want nil, nil", entries, err)
	}
}
