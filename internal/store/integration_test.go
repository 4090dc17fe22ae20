package store_test

import (
	"context"
	"testing"

	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/testinfra"
)

// TestMariaDBBackend runs the persistent backend against a real MariaDB
// in a container. Requires a docker daemon; skipped under -short.
func TestMariaDBBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}
	ctx := context.Background()
	if !testinfra.DockerAvailable(ctx) {
		t.Skip("No docker daemon available")
	}

	dc, err := testinfra.StartMariaDB(ctx)
	if err != nil {
		t.Fatalf("Failed to start MariaDB: %v", err)
	}
	defer func() { _ = dc.Terminate(ctx) }()

	st, err := store.Open(dc.Config())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	exerciseBackend(t, st)
}

// TestPostgresBackend is the same round trip against PostgreSQL.
func TestPostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}
	ctx := context.Background()
	if !testinfra.DockerAvailable(ctx) {
		t.Skip("No docker daemon available")
	}

	dc, err := testinfra.StartPostgres(ctx)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL: %v", err)
	}
	defer func() { _ = dc.Terminate(ctx) }()

	st, err := store.Open(dc.Config())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	exerciseBackend(t, st)
}

// exerciseBackend writes through every repository once, enough to catch
// dialect problems in the JSON columns and unique indexes.
func exerciseBackend(t *testing.T, st store.Store) {
	t.Helper()

	if err := st.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	u := &models.User{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	u.SetRatedWorkEntries(map[string]models.RatedEntry{"1": {Score: 5}})
	u.SetFollowerIDs(nil)
	u.SetFollowingIDs(nil)
	if err := st.Users().Create(u); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "secret1"}
	dup.SetRatedWorkEntries(nil)
	if err := st.Users().Create(dup); err == nil {
		t.Error("Expected unique index violation for duplicate username")
	}

	w := &models.Work{Title: "Inception", Type: models.WorkTypeMovie, Year: 2010}
	w.SetGenreList([]string{"sci-fi"})
	if err := st.Works().Create(w); err != nil {
		t.Fatalf("Failed to create work: %v", err)
	}

	r := &models.Rating{UserID: u.UserID, WorkID: w.WorkID, Score: 5}
	if err := st.Ratings().Create(r); err != nil {
		t.Fatalf("Failed to create rating: %v", err)
	}

	s := &models.Shelf{UserID: u.UserID, Name: "favorites"}
	s.SetWorkIDs([]uint64{w.WorkID})
	if err := st.Shelves().Create(s); err != nil {
		t.Fatalf("Failed to create shelf: %v", err)
	}

	fresh, err := st.Users().ByID(u.UserID)
	if err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if fresh.RatedWorkEntries()["1"].Score != 5 {
		t.Errorf("Expected JSON column round trip, got %v", fresh.RatedWorkEntries())
	}
}
