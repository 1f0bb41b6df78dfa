package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.CreateSchema(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func TestSaveAndListExports(t *testing.T) {
	db := openTestDB(t)

	first := Export{
		ID:           "run-1",
		CreatedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Provider:     "gh",
		Organization: "acme",
		StandardID:   "std-1",
		StandardName: "org-default",
		ToolUUID:     "uuid-1",
		Languages:    []string{"python", "go"},
		RuleCount:    42,
		OutputPath:   "semgrep_rules.yaml",
	}
	second := first
	second.ID = "run-2"
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	second.Languages = nil
	second.RuleCount = 7

	if err := db.SaveExport(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := db.SaveExport(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := db.ListExports(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != "run-2" || got[1].ID != "run-1" {
		t.Errorf("order = %s, %s", got[0].ID, got[1].ID)
	}
	if !reflect.DeepEqual(got[1].Languages, []string{"python", "go"}) {
		t.Errorf("languages = %v", got[1].Languages)
	}
	if got[1].RuleCount != 42 || got[1].StandardName != "org-default" {
		t.Errorf("row = %+v", got[1])
	}
	if !got[1].CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got[1].CreatedAt, first.CreatedAt)
	}
}

func TestListExports_Limit(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := Export{
			ID:           string(rune('a' + i)),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			Provider:     "gh",
			Organization: "acme",
			StandardID:   "std-1",
			RuleCount:    i,
			OutputPath:   "out.yaml",
		}
		if err := db.SaveExport(e); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	got, err := db.ListExports(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].ID != "e" {
		t.Errorf("newest = %q, want e", got[0].ID)
	}
}
