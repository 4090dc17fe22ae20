package models

import "time"

// Shelf is a user-owned named collection of work references, analogous to
// a playlist. Work ids are weak references: the catalog is never consulted
// when adding or removing them, and deleting a shelf leaves works intact.
type Shelf struct {
	ShelfID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;index:idx_owner_name,unique"`
	Name        string `gorm:"size:50;not null;index:idx_owner_name,unique"`
	Description string `gorm:"size:500"`

	// Works holds an ordered JSON array of work ids. Duplicates are
	// prevented on add, not by the column itself.
	Works JSON

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Shelf
func (Shelf) TableName() string {
	return "shelves"
}

// WorkIDs decodes the work id list.
func (s *Shelf) WorkIDs() []uint64 {
	var ids []uint64
	decodeJSON(s.Works, &ids)
	return ids
}

// SetWorkIDs encodes the work id list.
func (s *Shelf) SetWorkIDs(ids []uint64) {
	if ids == nil {
		ids = []uint64{}
	}
	s.Works = encodeJSON(ids)
}
