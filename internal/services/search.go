package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
)

// SearchResultCap bounds each result list.
const SearchResultCap = 50

// Item type selector for search. Empty means both.
const (
	ItemTypeWork = "work"
	ItemTypeUser = "user"
)

// SearchParams carries the search/filter predicates. Zero values disable
// the corresponding predicate.
type SearchParams struct {
	Query     string
	ItemType  string
	WorkType  string
	Genre     string
	MinRating float64
	Year      int
}

// WorkResult pairs a work with its independently computed rating.
type WorkResult struct {
	Work          models.Work
	AverageRating float64
	TotalRatings  int
}

// SearchResults holds the per-type result lists. A list is nil when its
// item type was not requested.
type SearchResults struct {
	Works []WorkResult
	Users []models.User
}

// SearchItems dispatches to work and/or user search based on ItemType and
// applies the filter predicates in order.
func SearchItems(st store.Store, p SearchParams) (*SearchResults, error) {
	switch p.ItemType {
	case "", ItemTypeWork, ItemTypeUser:
	default:
		return nil, types.Validation("invalid search input",
			fmt.Sprintf("itemType %q must be %q or %q", p.ItemType, ItemTypeWork, ItemTypeUser))
	}
	if p.WorkType != "" && !models.WorkTypes[p.WorkType] {
		return nil, types.Validation("invalid search input",
			fmt.Sprintf("workType %q is not a valid work type", p.WorkType))
	}

	results := &SearchResults{}
	if p.ItemType == "" || p.ItemType == ItemTypeWork {
		works, err := searchWorks(st, p)
		if err != nil {
			return nil, err
		}
		results.Works = works
	}
	if p.ItemType == "" || p.ItemType == ItemTypeUser {
		users, err := searchUsers(st, p.Query)
		if err != nil {
			return nil, err
		}
		results.Users = users
	}
	return results, nil
}

func searchWorks(st store.Store, p SearchParams) ([]WorkResult, error) {
	works, err := st.Works().All()
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(p.Query))
	results := make([]WorkResult, 0)
	for _, w := range works {
		if query != "" && !matchesWorkQuery(&w, query) {
			continue
		}
		if p.WorkType != "" && w.Type != p.WorkType {
			continue
		}
		if p.Genre != "" && !containsGenre(w.GenreList(), p.Genre) {
			continue
		}
		// Year filters forward: a 2000 query includes everything from
		// 2000 on, not just that year.
		if p.Year > 0 && w.Year < p.Year {
			continue
		}

		summary, err := WorkAverageRating(st, w.WorkID)
		if err != nil {
			return nil, err
		}
		if p.MinRating > 0 && summary.AverageRating < p.MinRating {
			continue
		}

		results = append(results, WorkResult{
			Work:          w,
			AverageRating: summary.AverageRating,
			TotalRatings:  summary.TotalRatings,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].AverageRating != results[j].AverageRating {
			return results[i].AverageRating > results[j].AverageRating
		}
		return results[i].Work.Title < results[j].Work.Title
	})

	if len(results) > SearchResultCap {
		results = results[:SearchResultCap]
	}
	return results, nil
}

func searchUsers(st store.Store, query string) ([]models.User, error) {
	users, err := st.Users().All()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	results := make([]models.User, 0)
	for _, u := range users {
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Username), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		results = append(results, u)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Username < results[j].Username
	})

	if len(results) > SearchResultCap {
		results = results[:SearchResultCap]
	}
	return results, nil
}

func matchesWorkQuery(w *models.Work, query string) bool {
	return strings.Contains(strings.ToLower(w.Title), query) ||
		strings.Contains(strings.ToLower(w.Description), query) ||
		strings.Contains(strings.ToLower(w.Creator), query)
}

func containsGenre(genres []string, genre string) bool {
	for _, g := range genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
