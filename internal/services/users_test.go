package services_test

import (
	"errors"
	"testing"

	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/types"
)

// TestRegisterUserValidation verifies field rules are collected into a
// single validation error.
func TestRegisterUserValidation(t *testing.T) {
	st := newTestStore(t)

	_, err := services.RegisterUser(st, services.SignupInput{
		Username: "ab",
		Email:    "not-an-email",
		Password: "123",
	})
	if types.KindOf(err) != types.KindValidation {
		t.Fatalf("Expected validation error, got %v", err)
	}
	var de *types.DomainError
	if !errors.As(err, &de) || len(de.Details) != 3 {
		t.Errorf("Expected 3 detail entries, got %v", err)
	}
}

// TestRegisterUserUniqueness verifies username and email collisions.
func TestRegisterUserUniqueness(t *testing.T) {
	st := newTestStore(t)
	createTestUser(t, st, "alice")

	_, err := services.RegisterUser(st, services.SignupInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret1",
	})
	if types.KindOf(err) != types.KindAlreadyExists {
		t.Errorf("Expected already-exists for duplicate username, got %v", err)
	}

	_, err = services.RegisterUser(st, services.SignupInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	if types.KindOf(err) != types.KindAlreadyExists {
		t.Errorf("Expected already-exists for duplicate email, got %v", err)
	}
}

// TestAuthenticate verifies login by username or email and the failure
// mode for bad credentials.
func TestAuthenticate(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")

	got, err := services.Authenticate(st, "alice", "secret1")
	if err != nil || got.UserID != alice.UserID {
		t.Errorf("Expected login by username, got %v / %v", got, err)
	}

	got, err = services.Authenticate(st, "alice@example.com", "secret1")
	if err != nil || got.UserID != alice.UserID {
		t.Errorf("Expected login by email, got %v / %v", got, err)
	}

	if _, err := services.Authenticate(st, "alice", "wrong"); types.KindOf(err) != types.KindAuthentication {
		t.Errorf("Expected authentication error for wrong password, got %v", err)
	}
	if _, err := services.Authenticate(st, "nobody", "secret1"); types.KindOf(err) != types.KindAuthentication {
		t.Errorf("Expected authentication error for unknown identifier, got %v", err)
	}
}

// TestUpdateUserPartial verifies nil fields are untouched and renames
// re-check uniqueness against other users only.
func TestUpdateUserPartial(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	createTestUser(t, st, "bob")

	img := "avatars/alice.png"
	updated, err := services.UpdateUser(st, alice.UserID, services.UserUpdate{ImagePath: &img})
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if updated.Username != "alice" || updated.ImagePath != img {
		t.Errorf("Expected image-only update, got %+v", updated)
	}

	// Re-saving the same username against yourself is not a collision.
	same := "alice"
	if _, err := services.UpdateUser(st, alice.UserID, services.UserUpdate{Username: &same}); err != nil {
		t.Errorf("Expected self-rename to pass, got %v", err)
	}

	taken := "bob"
	if _, err := services.UpdateUser(st, alice.UserID, services.UserUpdate{Username: &taken}); types.KindOf(err) != types.KindAlreadyExists {
		t.Errorf("Expected already-exists renaming to a taken username, got %v", err)
	}
}
