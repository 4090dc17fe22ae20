package services

import (
	"math/rand/v2"

	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
)

// RecommendationBatchSize is the size of each recommendation group.
const RecommendationBatchSize = 5

// Recommendations carries two disjoint work batches plus the user's
// current change token. The contract is the two batches and the token;
// the shuffle behind them carries no meaning.
type Recommendations struct {
	Current []models.Work
	Profile []models.Work
	Version uint64
}

// UserRecommendations returns two disjoint randomized groups of works for
// a user. This is a stated placeholder: no collaborative filtering, no
// content-based scoring. Clients compare Version against their last fetch
// to decide whether to refetch; it changes on every rating write.
func UserRecommendations(st store.Store, userID uint64) (*Recommendations, error) {
	user, err := GetUser(st, userID)
	if err != nil {
		return nil, err
	}

	works, err := st.Works().All()
	if err != nil {
		return nil, err
	}

	shuffled := make([]models.Work, len(works))
	copy(shuffled, works)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	current := takeWorks(shuffled, 0, RecommendationBatchSize)
	profile := takeWorks(shuffled, RecommendationBatchSize, RecommendationBatchSize)

	return &Recommendations{
		Current: current,
		Profile: profile,
		Version: user.RecommendationVersion,
	}, nil
}

func takeWorks(works []models.Work, offset, n int) []models.Work {
	if offset >= len(works) {
		return []models.Work{}
	}
	end := offset + n
	if end > len(works) {
		end = len(works)
	}
	return works[offset:end]
}
