package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
)

// WorkInput carries the fields of a work creation request.
type WorkInput struct {
	Title         string
	Description   string
	Type          string
	Year          int
	Genres        []string
	Creator       string
	CoverPath     string
	DiscoveryLink string
}

// WorkUpdate carries a partial work update. Nil fields are untouched.
type WorkUpdate struct {
	Title         *string
	Description   *string
	Type          *string
	Year          *int
	Genres        []string
	Creator       *string
	CoverPath     *string
	DiscoveryLink *string
}

// CreateWork adds a catalog entry after checking the type enum and genre
// vocabulary.
func CreateWork(st store.Store, in WorkInput) (*models.Work, error) {
	in.Title = strings.TrimSpace(in.Title)

	var details []string
	if in.Title == "" {
		details = append(details, "title is required")
	}
	if !models.WorkTypes[in.Type] {
		details = append(details, fmt.Sprintf("type %q is not a valid work type", in.Type))
	}
	if in.Year < 0 {
		details = append(details, "year must not be negative")
	}
	details = append(details, genreViolations(in.Genres)...)
	if len(details) > 0 {
		return nil, types.Validation("invalid work input", details...)
	}

	work := &models.Work{
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
		Year:          in.Year,
		Creator:       in.Creator,
		CoverPath:     in.CoverPath,
		DiscoveryLink: in.DiscoveryLink,
	}
	work.SetGenreList(in.Genres)

	if err := st.Works().Create(work); err != nil {
		return nil, err
	}
	return work, nil
}

// GetWork fetches a work by id.
func GetWork(st store.Store, workID uint64) (*models.Work, error) {
	work, err := st.Works().ByID(workID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, types.NotFound("work %d not found", workID)
	}
	if err != nil {
		return nil, err
	}
	return work, nil
}

// ListWorks returns the full catalog.
func ListWorks(st store.Store) ([]models.Work, error) {
	return st.Works().All()
}

// UpdateWork applies a partial update to a catalog entry.
func UpdateWork(st store.Store, workID uint64, upd WorkUpdate) (*models.Work, error) {
	work, err := GetWork(st, workID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, types.Validation("invalid work update", "title is required")
		}
		work.Title = title
	}
	if upd.Type != nil {
		if !models.WorkTypes[*upd.Type] {
			return nil, types.Validation("invalid work update", fmt.Sprintf("type %q is not a valid work type", *upd.Type))
		}
		work.Type = *upd.Type
	}
	if upd.Year != nil {
		if *upd.Year < 0 {
			return nil, types.Validation("invalid work update", "year must not be negative")
		}
		work.Year = *upd.Year
	}
	if upd.Genres != nil {
		if details := genreViolations(upd.Genres); len(details) > 0 {
			return nil, types.Validation("invalid work update", details...)
		}
		work.SetGenreList(upd.Genres)
	}
	if upd.Description != nil {
		work.Description = *upd.Description
	}
	if upd.Creator != nil {
		work.Creator = *upd.Creator
	}
	if upd.CoverPath != nil {
		work.CoverPath = *upd.CoverPath
	}
	if upd.DiscoveryLink != nil {
		work.DiscoveryLink = *upd.DiscoveryLink
	}

	if err := st.Works().Save(work); err != nil {
		return nil, err
	}
	return work, nil
}

// DeleteWork removes a catalog entry. Its ratings are left in place as
// logical orphans; readers of the rating collection tolerate them.
func DeleteWork(st store.Store, workID uint64) error {
	if _, err := GetWork(st, workID); err != nil {
		return err
	}
	return st.Works().Delete(workID)
}

func genreViolations(genres []string) []string {
	var details []string
	for _, g := range genres {
		if !models.GenreVocabulary[g] {
			details = append(details, fmt.Sprintf("genre %q is not in the genre vocabulary", g))
		}
	}
	return details
}
