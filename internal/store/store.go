package store

import (
	"errors"

	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/models"
)

// ErrNotFound is returned by every repository when a record does not
// resolve. The service layer translates it to a domain NotFound error.
var ErrNotFound = errors.New("record not found")

// UserRepo provides access to user records.
type UserRepo interface {
	ByID(id uint64) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	All() ([]models.User, error)
	Create(u *models.User) error
	Save(u *models.User) error
	Delete(id uint64) error
}

// WorkRepo provides access to catalog works.
type WorkRepo interface {
	ByID(id uint64) (*models.Work, error)
	All() ([]models.Work, error)
	Create(w *models.Work) error
	Save(w *models.Work) error
	Delete(id uint64) error
}

// RatingRepo provides access to rating records.
type RatingRepo interface {
	ByID(id uint64) (*models.Rating, error)
	ByUserAndWork(userID, workID uint64) (*models.Rating, error)
	ByUser(userID uint64) ([]models.Rating, error)
	ByWork(workID uint64) ([]models.Rating, error)
	Create(r *models.Rating) error
	Save(r *models.Rating) error
	Delete(id uint64) error
	// DeleteByUser removes all of a user's ratings, reporting how many
	// were removed. Used by the best-effort account-deletion cascade.
	DeleteByUser(userID uint64) (int64, error)
}

// ShelfRepo provides access to shelves.
type ShelfRepo interface {
	ByID(id uint64) (*models.Shelf, error)
	ByUser(userID uint64) ([]models.Shelf, error)
	ByUserAndName(userID uint64, name string) (*models.Shelf, error)
	Create(s *models.Shelf) error
	Save(s *models.Shelf) error
	Delete(id uint64) error
	DeleteByUser(userID uint64) (int64, error)
}

// Store bundles the per-entity repositories behind one handle. The core
// only ever sees this interface; which backend sits behind it is decided
// once at startup by Open.
type Store interface {
	Users() UserRepo
	Works() WorkRepo
	Ratings() RatingRepo
	Shelves() ShelfRepo
	Ping() error
	Close() error
}

// Open selects and connects the configured backend.
func Open(cfg *config.Config) (Store, error) {
	if cfg.DBType == "memory" {
		return NewMemory(), nil
	}
	return OpenGorm(cfg)
}
