package store_test

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteStore creates a gorm-backed store on an in-memory SQLite
// database, with the same migrations the real backends run.
func newSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	st, err := store.NewGorm(db)
	if err != nil {
		t.Fatalf("Failed to build store: %v", err)
	}
	return st
}

// backends runs the same suite against both store implementations.
func backends(t *testing.T, fn func(t *testing.T, st store.Store)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) { fn(t, store.NewMemory()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
}

func TestUserRepoRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		u := &models.User{Username: "alice", Email: "alice@example.com", Password: "secret1"}
		u.SetRatedWorkEntries(map[string]models.RatedEntry{})
		u.SetFollowerIDs(nil)
		u.SetFollowingIDs(nil)

		if err := st.Users().Create(u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		if u.UserID == 0 {
			t.Fatal("Expected an assigned user id")
		}

		byID, err := st.Users().ByID(u.UserID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}
		if byID.Username != "alice" {
			t.Errorf("Expected username alice, got %q", byID.Username)
		}

		byName, err := st.Users().ByUsername("alice")
		if err != nil || byName.UserID != u.UserID {
			t.Errorf("ByUsername mismatch: %v / %v", byName, err)
		}

		byEmail, err := st.Users().ByEmail("alice@example.com")
		if err != nil || byEmail.UserID != u.UserID {
			t.Errorf("ByEmail mismatch: %v / %v", byEmail, err)
		}

		if _, err := st.Users().ByID(999); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
		}

		if err := st.Users().Delete(u.UserID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := st.Users().Delete(u.UserID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestUserJSONColumnsSurviveReload(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		u := &models.User{Username: "alice", Email: "alice@example.com", Password: "secret1"}
		u.SetRatedWorkEntries(map[string]models.RatedEntry{
			"42": {Score: 4},
		})
		u.SetFollowerIDs([]uint64{7})
		u.SetFollowingIDs([]uint64{8, 9})

		if err := st.Users().Create(u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}

		fresh, err := st.Users().ByID(u.UserID)
		if err != nil {
			t.Fatalf("Failed to reload: %v", err)
		}
		if got := fresh.RatedWorkEntries(); got["42"].Score != 4 {
			t.Errorf("Expected mirror entry to survive reload, got %v", got)
		}
		if got := fresh.FollowerIDs(); len(got) != 1 || got[0] != 7 {
			t.Errorf("Expected followers [7], got %v", got)
		}
		if got := fresh.FollowingIDs(); len(got) != 2 {
			t.Errorf("Expected 2 following ids, got %v", got)
		}
	})
}

func TestRatingRepoByUserAndWork(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		r := &models.Rating{UserID: 1, WorkID: 2, Score: 5}
		if err := st.Ratings().Create(r); err != nil {
			t.Fatalf("Failed to create rating: %v", err)
		}

		got, err := st.Ratings().ByUserAndWork(1, 2)
		if err != nil || got.RatingID != r.RatingID {
			t.Errorf("ByUserAndWork mismatch: %v / %v", got, err)
		}

		if _, err := st.Ratings().ByUserAndWork(1, 3); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}

		n, err := st.Ratings().DeleteByUser(1)
		if err != nil || n != 1 {
			t.Errorf("Expected 1 deleted row, got %d / %v", n, err)
		}
	})
}

func TestShelfRepoByUserAndName(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		s := &models.Shelf{UserID: 1, Name: "favorites"}
		s.SetWorkIDs(nil)
		if err := st.Shelves().Create(s); err != nil {
			t.Fatalf("Failed to create shelf: %v", err)
		}

		got, err := st.Shelves().ByUserAndName(1, "favorites")
		if err != nil || got.ShelfID != s.ShelfID {
			t.Errorf("ByUserAndName mismatch: %v / %v", got, err)
		}
		if _, err := st.Shelves().ByUserAndName(2, "favorites"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for other owner, got %v", err)
		}

		list, err := st.Shelves().ByUser(1)
		if err != nil || len(list) != 1 {
			t.Errorf("ByUser mismatch: %v / %v", list, err)
		}
	})
}

func TestWorkRepoAllSorted(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		for _, title := range []string{"B", "A", "C"} {
			w := &models.Work{Title: title, Type: models.WorkTypeMovie}
			w.SetGenreList(nil)
			if err := st.Works().Create(w); err != nil {
				t.Fatalf("Failed to create work: %v", err)
			}
		}

		works, err := st.Works().All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(works) != 3 {
			t.Fatalf("Expected 3 works, got %d", len(works))
		}
		for i := 1; i < len(works); i++ {
			if works[i-1].WorkID > works[i].WorkID {
				t.Errorf("Expected id-ordered listing, got %v then %v", works[i-1].WorkID, works[i].WorkID)
			}
		}
	})
}
