package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/model"
)

func newTestUserDB(t *testing.T) *UserDB {
	t.Helper()
	return newTestDB(t).Users()
}

func createTestUser(t *testing.T, u *UserDB, email string) *model.User {
	t.Helper()
	user := &model.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "$2a$04$not-a-real-hash",
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestUserCreate(t *testing.T) {
	u := newTestUserDB(t)
	user := createTestUser(t, u, "ada@example.com")

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestUserCreate_DuplicateEmailIsNotAStorageError(t *testing.T) {
	u := newTestUserDB(t)
	first := createTestUser(t, u, "same@example.com")

	// Uniqueness is an application-level rule; storage accepts the row.
	second := createTestUser(t, u, "same@example.com")
	if first.ID == second.ID {
		t.Error("two users share an ID")
	}
}

func TestUserGetByEmail(t *testing.T) {
	u := newTestUserDB(t)
	created := createTestUser(t, u, "find@example.com")

	found, err := u.GetByEmail(context.Background(), "find@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
	if found.Password != created.Password {
		t.Errorf("Password hash not round-tripped: %q", found.Password)
	}
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	u := newTestUserDB(t)

	_, err := u.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByID(t *testing.T) {
	u := newTestUserDB(t)
	created := createTestUser(t, u, "byid@example.com")

	found, err := u.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Email != "byid@example.com" || found.FirstName != "Ada" {
		t.Errorf("GetByID() = %+v", found)
	}

	if _, err := u.GetByID(context.Background(), "nonexistent-id"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}
