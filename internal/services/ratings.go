package services

import (
	"errors"
	"math"
	"time"

	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
)

// Scores are integers on a 1-5 scale.
const (
	MinScore = 1
	MaxScore = 5
)

// WorkRatingSummary is the derived aggregate for a work. It is recomputed
// on every read; no aggregate is persisted on the Work entity.
type WorkRatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

// CreateOrUpdateRating upserts the rating for (userID, workID): it creates
// a record when none exists and overwrites score and timestamp in place
// when one does, so at most one rating ever exists per pair. The owner's
// ratedWorks mirror and recommendation version are written through in the
// same call. The two writes are not atomic; a crash between them leaves
// the mirror stale until the next rating write.
func CreateOrUpdateRating(st store.Store, userID, workID uint64, score int) (*models.Rating, error) {
	if score < MinScore || score > MaxScore {
		return nil, types.Validation("invalid rating", "score must be an integer between 1 and 5")
	}

	user, err := GetUser(st, userID)
	if err != nil {
		return nil, err
	}
	if _, err := GetWork(st, workID); err != nil {
		return nil, err
	}

	now := time.Now()
	rating, err := st.Ratings().ByUserAndWork(userID, workID)
	switch {
	case err == nil:
		rating.Score = score
		rating.RatedAt = now
		if err := st.Ratings().Save(rating); err != nil {
			return nil, err
		}
	case errors.Is(err, store.ErrNotFound):
		rating = &models.Rating{UserID: userID, WorkID: workID, Score: score, RatedAt: now}
		if err := st.Ratings().Create(rating); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	writeRatingMirror(st, user, workID, &models.RatedEntry{Score: score, RatedAt: rating.RatedAt})
	return rating, nil
}

// WorkAverageRating computes the arithmetic mean (rounded to 2 decimal
// places) and count of a work's ratings. A work with no ratings yields
// zero values rather than an error.
func WorkAverageRating(st store.Store, workID uint64) (WorkRatingSummary, error) {
	ratings, err := st.Ratings().ByWork(workID)
	if err != nil {
		return WorkRatingSummary{}, err
	}
	if len(ratings) == 0 {
		return WorkRatingSummary{}, nil
	}

	var sum int
	for _, r := range ratings {
		sum += r.Score
	}
	avg := float64(sum) / float64(len(ratings))
	return WorkRatingSummary{
		AverageRating: math.Round(avg*100) / 100,
		TotalRatings:  len(ratings),
	}, nil
}

// UpdateRating changes the score of an existing rating by id and refreshes
// the owner's mirror and recommendation version.
func UpdateRating(st store.Store, ratingID uint64, score int) (*models.Rating, error) {
	if score < MinScore || score > MaxScore {
		return nil, types.Validation("invalid rating", "score must be an integer between 1 and 5")
	}

	rating, err := st.Ratings().ByID(ratingID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, types.NotFound("rating %d not found", ratingID)
	}
	if err != nil {
		return nil, err
	}

	rating.Score = score
	rating.RatedAt = time.Now()
	if err := st.Ratings().Save(rating); err != nil {
		return nil, err
	}

	// The owner may already be gone (account deletion cascade is best
	// effort); a dangling rating is tolerated, not an error.
	if user, err := st.Users().ByID(rating.UserID); err == nil {
		writeRatingMirror(st, user, rating.WorkID, &models.RatedEntry{Score: score, RatedAt: rating.RatedAt})
	}
	return rating, nil
}

// DeleteRating removes a rating by id and drops the owner's mirror entry.
func DeleteRating(st store.Store, ratingID uint64) error {
	rating, err := st.Ratings().ByID(ratingID)
	if errors.Is(err, store.ErrNotFound) {
		return types.NotFound("rating %d not found", ratingID)
	}
	if err != nil {
		return err
	}

	if err := st.Ratings().Delete(ratingID); err != nil {
		return err
	}

	if user, err := st.Users().ByID(rating.UserID); err == nil {
		writeRatingMirror(st, user, rating.WorkID, nil)
	}
	return nil
}

// UserRatings lists all rating records owned by a user.
func UserRatings(st store.Store, userID uint64) ([]models.Rating, error) {
	if _, err := GetUser(st, userID); err != nil {
		return nil, err
	}
	return st.Ratings().ByUser(userID)
}

// writeRatingMirror updates (entry != nil) or removes (entry == nil) the
// ratedWorks cache entry for workID and moves the owner's recommendation
// version to the current clock. Errors saving the mirror are swallowed:
// the Rating collection is the source of truth and the mirror catches up
// on the next write.
func writeRatingMirror(st store.Store, user *models.User, workID uint64, entry *models.RatedEntry) {
	entries := user.RatedWorkEntries()
	key := models.RatedWorkKey(workID)
	if entry != nil {
		entries[key] = *entry
	} else {
		delete(entries, key)
	}
	user.SetRatedWorkEntries(entries)
	user.RecommendationVersion = uint64(time.Now().UnixNano())
	_ = st.Users().Save(user)
}
