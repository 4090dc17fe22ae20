package models

import "time"

// Rating is the source of truth for a user's score on a work. Exactly one
// record may exist per (UserID, WorkID) pair; writes go through an upsert.
type Rating struct {
	RatingID uint64    `gorm:"primaryKey;autoIncrement"`
	UserID   uint64    `gorm:"not null;index:idx_user_work,unique"`
	WorkID   uint64    `gorm:"not null;index:idx_user_work,unique;index"`
	Score    int       `gorm:"not null"`
	RatedAt  time.Time `gorm:"not null"`
}

// TableName overrides the table name for Rating
func (Rating) TableName() string {
	return "ratings"
}
