package services_test

import (
	"testing"

	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/types"
)

// TestFollowSymmetry verifies a follow writes both the follower's
// following list and the target's followers list.
func TestFollowSymmetry(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")

	if err := services.FollowUser(st, alice.UserID, bob.UserID); err != nil {
		t.Fatalf("Failed to follow: %v", err)
	}

	following, err := services.UserFollowing(st, alice.UserID)
	if err != nil {
		t.Fatalf("Failed to list following: %v", err)
	}
	if len(following) != 1 || following[0].UserID != bob.UserID {
		t.Errorf("Expected alice to follow bob, got %v", following)
	}

	followers, err := services.UserFollowers(st, bob.UserID)
	if err != nil {
		t.Fatalf("Failed to list followers: %v", err)
	}
	if len(followers) != 1 || followers[0].UserID != alice.UserID {
		t.Errorf("Expected bob followed by alice, got %v", followers)
	}
}

// TestSelfFollowRejected verifies a self-follow fails and mutates nothing.
func TestSelfFollowRejected(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")

	err := services.FollowUser(st, alice.UserID, alice.UserID)
	if types.KindOf(err) != types.KindInvalidRelationship {
		t.Fatalf("Expected invalid-relationship error, got %v", err)
	}

	fresh, _ := services.GetUser(st, alice.UserID)
	if len(fresh.FollowingIDs()) != 0 || len(fresh.FollowerIDs()) != 0 {
		t.Error("Expected follow lists untouched after rejected self-follow")
	}
}

// TestDuplicateFollowRejected verifies following the same user twice fails.
func TestDuplicateFollowRejected(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")

	if err := services.FollowUser(st, alice.UserID, bob.UserID); err != nil {
		t.Fatalf("Failed to follow: %v", err)
	}
	err := services.FollowUser(st, alice.UserID, bob.UserID)
	if types.KindOf(err) != types.KindInvalidRelationship {
		t.Errorf("Expected invalid-relationship error on duplicate follow, got %v", err)
	}

	fresh, _ := services.GetUser(st, alice.UserID)
	if len(fresh.FollowingIDs()) != 1 {
		t.Errorf("Expected following list of 1, got %d", len(fresh.FollowingIDs()))
	}
}

// TestUnfollow verifies unfollow removes both edge halves, and that
// unfollowing without an edge fails.
func TestUnfollow(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")

	if err := services.UnfollowUser(st, alice.UserID, bob.UserID); types.KindOf(err) != types.KindInvalidRelationship {
		t.Errorf("Expected invalid-relationship error unfollowing a missing edge, got %v", err)
	}

	if err := services.FollowUser(st, alice.UserID, bob.UserID); err != nil {
		t.Fatalf("Failed to follow: %v", err)
	}
	if err := services.UnfollowUser(st, alice.UserID, bob.UserID); err != nil {
		t.Fatalf("Failed to unfollow: %v", err)
	}

	aliceFresh, _ := services.GetUser(st, alice.UserID)
	bobFresh, _ := services.GetUser(st, bob.UserID)
	if len(aliceFresh.FollowingIDs()) != 0 {
		t.Error("Expected alice's following list empty after unfollow")
	}
	if len(bobFresh.FollowerIDs()) != 0 {
		t.Error("Expected bob's followers list empty after unfollow")
	}
}

// TestDanglingFollowTolerated verifies listing tolerates ids of users
// deleted after the edge was written.
func TestDanglingFollowTolerated(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	carol := createTestUser(t, st, "carol")

	if err := services.FollowUser(st, alice.UserID, bob.UserID); err != nil {
		t.Fatalf("Failed to follow: %v", err)
	}
	if err := services.FollowUser(st, alice.UserID, carol.UserID); err != nil {
		t.Fatalf("Failed to follow: %v", err)
	}

	// Remove bob behind the service's back to leave a dangling id.
	if err := st.Users().Delete(bob.UserID); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	following, err := services.UserFollowing(st, alice.UserID)
	if err != nil {
		t.Fatalf("Failed to list following: %v", err)
	}
	if len(following) != 1 || following[0].UserID != carol.UserID {
		t.Errorf("Expected only carol in following, got %v", following)
	}
}

// TestDeleteUserDetachesEdges verifies profile deletion removes the
// user's ratings, shelves and follow edges on both sides.
func TestDeleteUserDetachesEdges(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	work := createTestWork(t, st, "Inception")

	if _, err := services.CreateOrUpdateRating(st, alice.UserID, work.WorkID, 4); err != nil {
		t.Fatalf("Failed to rate: %v", err)
	}
	if _, err := services.CreateShelf(st, alice.UserID, services.ShelfInput{Name: "favorites"}); err != nil {
		t.Fatalf("Failed to create shelf: %v", err)
	}
	if err := services.FollowUser(st, alice.UserID, bob.UserID); err != nil {
		t.Fatalf("Failed to follow: %v", err)
	}
	if err := services.FollowUser(st, bob.UserID, alice.UserID); err != nil {
		t.Fatalf("Failed to follow back: %v", err)
	}

	if err := services.DeleteUser(st, alice.UserID); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	if _, err := services.GetUser(st, alice.UserID); types.KindOf(err) != types.KindNotFound {
		t.Errorf("Expected deleted user to be gone, got %v", err)
	}

	summary, err := services.WorkAverageRating(st, work.WorkID)
	if err != nil {
		t.Fatalf("Failed to compute average: %v", err)
	}
	if summary.TotalRatings != 0 {
		t.Errorf("Expected ratings removed with the user, got %d", summary.TotalRatings)
	}

	bobFresh, _ := services.GetUser(st, bob.UserID)
	if len(bobFresh.FollowerIDs()) != 0 || len(bobFresh.FollowingIDs()) != 0 {
		t.Error("Expected bob's follow lists cleared after alice's deletion")
	}
}
