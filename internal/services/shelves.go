package services

import (
	"errors"
	"strings"

	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
)

// ShelfInput carries the fields of a shelf creation request.
type ShelfInput struct {
	Name        string
	Description string
}

// ShelfUpdate carries a partial shelf update. Nil fields are untouched.
type ShelfUpdate struct {
	Name        *string
	Description *string
}

// CreateShelf creates an empty named shelf for a user. The (owner, name)
// pair must be unique.
func CreateShelf(st store.Store, userID uint64, in ShelfInput) (*models.Shelf, error) {
	name := strings.TrimSpace(in.Name)

	var details []string
	if name == "" {
		details = append(details, "shelf name is required")
	}
	if len(name) > 50 {
		details = append(details, "shelf name must be at most 50 characters")
	}
	if len(in.Description) > 500 {
		details = append(details, "description must be at most 500 characters")
	}
	if len(details) > 0 {
		return nil, types.Validation("invalid shelf input", details...)
	}

	if _, err := GetUser(st, userID); err != nil {
		return nil, err
	}

	if _, err := st.Shelves().ByUserAndName(userID, name); err == nil {
		return nil, types.AlreadyExists("shelf name %q already exists", name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	shelf := &models.Shelf{UserID: userID, Name: name, Description: in.Description}
	shelf.SetWorkIDs(nil)
	if err := st.Shelves().Create(shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// GetShelf fetches a shelf by id.
func GetShelf(st store.Store, shelfID uint64) (*models.Shelf, error) {
	shelf, err := st.Shelves().ByID(shelfID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, types.NotFound("shelf %d not found", shelfID)
	}
	if err != nil {
		return nil, err
	}
	return shelf, nil
}

// UserShelves lists a user's shelves.
func UserShelves(st store.Store, userID uint64) ([]models.Shelf, error) {
	if _, err := GetUser(st, userID); err != nil {
		return nil, err
	}
	return st.Shelves().ByUser(userID)
}

// UpdateShelf applies a partial update. At least one field must be given;
// a rename re-checks name uniqueness within the owner's shelves.
func UpdateShelf(st store.Store, shelfID uint64, upd ShelfUpdate) (*models.Shelf, error) {
	if upd.Name == nil && upd.Description == nil {
		return nil, types.Validation("no fields to update")
	}

	shelf, err := GetShelf(st, shelfID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" || len(name) > 50 {
			return nil, types.Validation("invalid shelf update", "shelf name must be 1-50 characters")
		}
		if name != shelf.Name {
			if other, err := st.Shelves().ByUserAndName(shelf.UserID, name); err == nil && other.ShelfID != shelfID {
				return nil, types.AlreadyExists("shelf name %q already exists", name)
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			shelf.Name = name
		}
	}
	if upd.Description != nil {
		if len(*upd.Description) > 500 {
			return nil, types.Validation("invalid shelf update", "description must be at most 500 characters")
		}
		shelf.Description = *upd.Description
	}

	if err := st.Shelves().Save(shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// DeleteShelf removes a shelf. Referenced works are untouched.
func DeleteShelf(st store.Store, shelfID uint64) error {
	if _, err := GetShelf(st, shelfID); err != nil {
		return err
	}
	return st.Shelves().Delete(shelfID)
}

// AddWorkToShelf appends a work id to the shelf. Adding an id that is
// already present is a no-op, and the id is not validated against the
// catalog (weak reference).
func AddWorkToShelf(st store.Store, shelfID, workID uint64) (*models.Shelf, error) {
	shelf, err := GetShelf(st, shelfID)
	if err != nil {
		return nil, err
	}

	ids := shelf.WorkIDs()
	if containsID(ids, workID) {
		return shelf, nil
	}
	shelf.SetWorkIDs(append(ids, workID))
	if err := st.Shelves().Save(shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// RemoveWorkFromShelf removes a work id from the shelf. Removing an absent
// id is a no-op.
func RemoveWorkFromShelf(st store.Store, shelfID, workID uint64) (*models.Shelf, error) {
	shelf, err := GetShelf(st, shelfID)
	if err != nil {
		return nil, err
	}

	ids := shelf.WorkIDs()
	if !containsID(ids, workID) {
		return shelf, nil
	}
	shelf.SetWorkIDs(removeID(ids, workID))
	if err := st.Shelves().Save(shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}
