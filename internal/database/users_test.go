package database_test

import (
	"database/sql"
	"errors"
	"testing"

	"git.sr.ht/~jakintosh/tutor/internal/service"
)

func newUser(id, username string) *service.User {
	return &service.User{
		ID:           id,
		Name:         "User " + username,
		Username:     username,
		PasswordHash: "hash-" + username,
		Role:         service.RoleStudent,
	}
}

func TestInsertUser_GetUser(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	want := newUser("u1", "alice")
	if err := store.InsertUser(want); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	got, err := store.GetUser("alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if *got != *want {
		t.Errorf("GetUser = %+v, want %+v", *got, *want)
	}
}

func TestInsertUser_DuplicateUsername(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	if err := store.InsertUser(newUser("u1", "alice")); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	// second insert with same username maps to ErrHandleExists
	err := store.InsertUser(newUser("u2", "alice"))
	if !errors.Is(err, service.ErrHandleExists) {
		t.Errorf("expected ErrHandleExists, got %v", err)
	}
}

func TestInsertUser_DuplicateID(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	if err := store.InsertUser(newUser("u1", "alice")); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	// reused primary key is also a conflict
	err := store.InsertUser(newUser("u1", "bob"))
	if !errors.Is(err, service.ErrHandleExists) {
		t.Errorf("expected ErrHandleExists, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	// unknown username returns sql.ErrNoRows
	_, err := store.GetUser("nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUpdatePasswordHash(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	if err := store.InsertUser(newUser("u1", "alice")); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	if err := store.UpdatePasswordHash("u1", "new-hash"); err != nil {
		t.Fatalf("UpdatePasswordHash failed: %v", err)
	}

	user, err := store.GetUser("alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.PasswordHash != "new-hash" {
		t.Errorf("PasswordHash = %q, want new-hash", user.PasswordHash)
	}
}

func TestUpdatePasswordHash_UnknownUser(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	err := store.UpdatePasswordHash("missing", "hash")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	// empty table returns an empty, non-nil slice
	users, err := store.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty slice, got %v", users)
	}

	for _, u := range []*service.User{
		{ID: "u1", Name: "Carol", Username: "carol", PasswordHash: "h", Role: service.RoleTeacher},
		{ID: "u2", Name: "Alice", Username: "alice", PasswordHash: "h", Role: service.RoleAdmin},
		{ID: "u3", Name: "Bob", Username: "bob", PasswordHash: "h", Role: service.RoleStudent},
	} {
		if err := store.InsertUser(u); err != nil {
			t.Fatalf("InsertUser failed: %v", err)
		}
	}

	users, err = store.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	// sorted by name, without password hashes
	wantNames := []string{"Alice", "Bob", "Carol"}
	if len(users) != len(wantNames) {
		t.Fatalf("got %d users, want %d", len(users), len(wantNames))
	}
	for i, name := range wantNames {
		if users[i].Name != name {
			t.Errorf("users[%d].Name = %q, want %q", i, users[i].Name, name)
		}
		if users[i].PasswordHash != "" {
			t.Errorf("users[%d] leaked password hash", i)
		}
	}
}
