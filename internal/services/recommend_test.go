package services_test

import (
	"fmt"
	"testing"

	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/types"
)

// TestRecommendationBatches verifies the two groups are disjoint and
// capped at the batch size.
func TestRecommendationBatches(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")

	for i := 0; i < 12; i++ {
		createTestWork(t, st, fmt.Sprintf("Work %02d", i))
	}

	recs, err := services.UserRecommendations(st, alice.UserID)
	if err != nil {
		t.Fatalf("Failed to get recommendations: %v", err)
	}

	if len(recs.Current) != services.RecommendationBatchSize {
		t.Errorf("Expected %d current works, got %d", services.RecommendationBatchSize, len(recs.Current))
	}
	if len(recs.Profile) != services.RecommendationBatchSize {
		t.Errorf("Expected %d profile works, got %d", services.RecommendationBatchSize, len(recs.Profile))
	}

	seen := make(map[uint64]bool)
	for _, w := range recs.Current {
		seen[w.WorkID] = true
	}
	for _, w := range recs.Profile {
		if seen[w.WorkID] {
			t.Errorf("Work %d appears in both batches", w.WorkID)
		}
	}
}

// TestRecommendationSmallCatalog verifies a catalog smaller than one
// batch yields partial groups rather than an error.
func TestRecommendationSmallCatalog(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	createTestWork(t, st, "Only One")

	recs, err := services.UserRecommendations(st, alice.UserID)
	if err != nil {
		t.Fatalf("Failed to get recommendations: %v", err)
	}
	if len(recs.Current) != 1 {
		t.Errorf("Expected 1 current work, got %d", len(recs.Current))
	}
	if len(recs.Profile) != 0 {
		t.Errorf("Expected empty profile batch, got %d", len(recs.Profile))
	}
}

// TestRecommendationVersionTracksRatings verifies the returned token is
// the user's current one and moves when a rating is written.
func TestRecommendationVersionTracksRatings(t *testing.T) {
	st := newTestStore(t)
	alice := createTestUser(t, st, "alice")
	work := createTestWork(t, st, "Inception")

	before, err := services.UserRecommendations(st, alice.UserID)
	if err != nil {
		t.Fatalf("Failed to get recommendations: %v", err)
	}

	if _, err := services.CreateOrUpdateRating(st, alice.UserID, work.WorkID, 4); err != nil {
		t.Fatalf("Failed to rate: %v", err)
	}

	after, err := services.UserRecommendations(st, alice.UserID)
	if err != nil {
		t.Fatalf("Failed to get recommendations: %v", err)
	}
	if before.Version == after.Version {
		t.Error("Expected version token to change after a rating write")
	}
}

// TestRecommendationUnknownUser verifies a missing user yields not-found.
func TestRecommendationUnknownUser(t *testing.T) {
	st := newTestStore(t)
	if _, err := services.UserRecommendations(st, 999); types.KindOf(err) != types.KindNotFound {
		t.Errorf("Expected not-found, got %v", err)
	}
}
