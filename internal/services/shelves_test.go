package services_test

import (
	"testing"

	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/types"
)

// TestShelfNameUniquePerOwner verifies the (owner, name) pair is unique
// but two users may share a shelf name.
func TestShelfNameUniquePerOwner(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")

	if _, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "favorites"}); err != nil {
		t.Fatalf("Failed to create shelf: %v", err)
	}

	_, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "favorites"})
	if types.KindOf(err) != types.KindAlreadyExists {
		t.Errorf("Expected already-exists error for duplicate name, got %v", err)
	}

	if _, err := services.CreateShelf(st, bob.UserID, services.ShelfInput{Name: "favorites"}); err != nil {
		t.Errorf("Expected same name under another owner to succeed, got %v", err)
	}
}

// TestShelfValidation verifies name and description limits.
func TestShelfValidation(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")

	if _, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "  "}); types.KindOf(err) != types.KindValidation {
		t.Errorf("Expected validation error for blank name, got %v", err)
	}

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: string(long)}); types.KindOf(err) != types.KindValidation {
		t.Errorf("Expected validation error for 51-char name, got %v", err)
	}
}

// TestShelfAddRemoveIdempotent verifies adding a work twice keeps one
// entry and removing an absent work is a no-op.
func TestShelfAddRemoveIdempotent(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	work := createTestWork(t, st, "Inception")

	shelf, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "favorites"})
	if err != nil {
		t.Fatalf("Failed to create shelf: %v", err)
	}

	for i := 0; i < 2; i++ {
		shelf, err = services.AddWorkToShelf(st, shelf.ShelfID, work.WorkID)
		if err != nil {
			t.Fatalf("Failed to add work (round %d): %v", i, err)
		}
	}
	if got := shelf.WorkIDs(); len(got) != 1 || got[0] != work.WorkID {
		t.Errorf("Expected single work entry, got %v", got)
	}

	shelf, err = services.RemoveWorkFromShelf(st, shelf.ShelfID, 999)
	if err != nil {
		t.Fatalf("Expected removing an absent work to be a no-op, got %v", err)
	}
	if len(shelf.WorkIDs()) != 1 {
		t.Errorf("Expected work list unchanged, got %v", shelf.WorkIDs())
	}

	shelf, err = services.RemoveWorkFromShelf(st, shelf.ShelfID, work.WorkID)
	if err != nil {
		t.Fatalf("Failed to remove work: %v", err)
	}
	if len(shelf.WorkIDs()) != 0 {
		t.Errorf("Expected empty work list, got %v", shelf.WorkIDs())
	}
}

// TestShelfUpdate verifies partial update semantics and rename collisions.
func TestShelfUpdate(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")

	shelf, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "favorites", Description: "best of"})
	if err != nil {
		t.Fatalf("Failed to create shelf: %v", err)
	}
	other, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "watchlist"})
	if err != nil {
		t.Fatalf("Failed to create shelf: %v", err)
	}

	if _, err := services.UpdateShelf(st, shelf.ShelfID, services.ShelfUpdate{}); types.KindOf(err) != types.KindValidation {
		t.Errorf("Expected validation error for empty update, got %v", err)
	}

	name := "watchlist"
	if _, err := services.UpdateShelf(st, shelf.ShelfID, services.ShelfUpdate{Name: &name}); types.KindOf(err) != types.KindAlreadyExists {
		t.Errorf("Expected already-exists error renaming onto %q, got %v", other.Name, err)
	}

	desc := "updated"
	updated, err := services.UpdateShelf(st, shelf.ShelfID, services.ShelfUpdate{Description: &desc})
	if err != nil {
		t.Fatalf("Failed to update shelf: %v", err)
	}
	if updated.Description != "updated" || updated.Name != "favorites" {
		t.Errorf("Expected description-only update, got %+v", updated)
	}
}

// TestShelfKeepsDeletedWorkID verifies shelf entries are weak references
// that survive deletion of the work.
func TestShelfKeepsDeletedWorkID(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	work := createTestWork(t, st, "Inception")

	shelf, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "favorites"})
	if err != nil {
		t.Fatalf("Failed to create shelf: %v", err)
	}
	if _, err := services.AddWorkToShelf(st, shelf.ShelfID, work.WorkID); err != nil {
		t.Fatalf("Failed to add work: %v", err)
	}

	if err := services.DeleteWork(st, work.WorkID); err != nil {
		t.Fatalf("Failed to delete work: %v", err)
	}

	fresh, err := services.GetShelf(st, shelf.ShelfID)
	if err != nil {
		t.Fatalf("Failed to reload shelf: %v", err)
	}
	if got := fresh.WorkIDs(); len(got) != 1 || got[0] != work.WorkID {
		t.Errorf("Expected shelf to keep the stale work id, got %v", got)
	}
}
