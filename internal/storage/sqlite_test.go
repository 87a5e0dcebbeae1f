package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/nikbrunner/quotes/internal/storage"
)

func TestSQLiteStorage_SetAndGet(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quotes.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Set(storage.KeyQuotes, []byte(`[{"text":"a","category":"b"}]`)); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	value, ok, err := s.Get(storage.KeyQuotes)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(value) != `[{"text":"a","category":"b"}]` {
		t.Errorf("unexpected value: %s", value)
	}
}

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Get(storage.KeyQuotes)
	if err != nil {
		t.Fatalf("failed to read empty db: %v", err)
	}
	if ok {
		t.Error("expected missing key in empty db")
	}
}

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "quotes.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	defer s.Close()

	if err := s.Set(storage.KeyFilter, []byte(`"all"`)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
}

func TestSQLiteStorage_Upsert(t *testing.T) {
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "upsert.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Set(storage.KeyFilter, []byte(`"Life"`)); err != nil {
		t.Fatalf("failed to save initial: %v", err)
	}
	if err := s.Set(storage.KeyFilter, []byte(`"Motivation"`)); err != nil {
		t.Fatalf("failed to save updated: %v", err)
	}

	value, _, _ := s.Get(storage.KeyFilter)
	if string(value) != `"Motivation"` {
		t.Errorf("expected updated value, got %s", value)
	}
}

func TestSQLiteStorage_Delete(t *testing.T) {
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "delete.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	_ = s.Set(storage.KeyFilter, []byte(`"Life"`))
	if err := s.Delete(storage.KeyFilter); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, ok, _ := s.Get(storage.KeyFilter); ok {
		t.Error("expected key to be gone")
	}
}

func TestSQLiteStorage_ReopenKeepsDataAndSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := s.Set(storage.KeyQuotes, []byte(`[]`)); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	s.Close()

	s, err = storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
	if _, ok, _ := s.Get(storage.KeyQuotes); !ok {
		t.Error("expected data to survive reopen")
	}
}
