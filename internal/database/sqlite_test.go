package database_test

import (
	"path/filepath"
	"testing"

	"git.sr.ht/~jakintosh/tutor/internal/database"
)

func setupStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	store, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStore_InMemory(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	// in-memory store is created successfully
	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestNewSQLiteStore_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tutor.db")

	// schema survives reopening the same file
	store, err := database.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := store.InsertUser(newUser("u1", "alice")); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := database.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	user, err := reopened.GetUser("alice")
	if err != nil {
		t.Fatalf("GetUser after reopen failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("ID = %q, want u1", user.ID)
	}
}

func TestNewSQLiteStore_BadPath(t *testing.T) {
	t.Parallel()

	// a directory that doesn't exist cannot hold a database
	path := filepath.Join(t.TempDir(), "missing", "dir", "tutor.db")
	if _, err := database.NewSQLiteStore(path); err == nil {
		t.Fatal("expected error for unreachable path")
	}
}

func TestSQLiteStore_Close(t *testing.T) {
	t.Parallel()
	store, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}

	// closing store succeeds without error
	if err := store.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

func TestSQLiteStore_UserStore(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	// UserStore returns the same store instance
	userStore := store.UserStore()
	if userStore == nil {
		t.Fatal("UserStore() returned nil")
	}
	if userStore != store {
		t.Error("UserStore() should return the same store")
	}
}

func TestSQLiteStore_ScheduleStore(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	// ScheduleStore returns the same store instance
	scheduleStore := store.ScheduleStore()
	if scheduleStore == nil {
		t.Fatal("ScheduleStore() returned nil")
	}
	if scheduleStore != store {
		t.Error("ScheduleStore() should return the same store")
	}
}
