package models

import (
	"strconv"
	"time"
)

// RatedEntry mirrors the most recent Rating record for one work. It is a
// denormalized read-through cache: the Rating collection stays the source
// of truth and every rating write updates the mirror in the same call.
type RatedEntry struct {
	Score   int       `json:"score"`
	RatedAt time.Time `json:"ratedAt"`
}

// User represents a registered account.
type User struct {
	UserID    uint64 `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"size:20;not null;uniqueIndex"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	ImagePath string `gorm:"size:512"`

	// RatedWorks holds a JSON object keyed by decimal work id.
	RatedWorks JSON
	// Followers and Following hold JSON arrays of user ids. They are two
	// sides of the same edge and must stay symmetric.
	Followers JSON
	Following JSON

	// RecommendationVersion is an opaque change token. It moves to the
	// current Unix-nanosecond clock on every rating write so clients can
	// detect when to refetch recommendations.
	RecommendationVersion uint64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// RatedWorkEntries decodes the ratedWorks mirror.
func (u *User) RatedWorkEntries() map[string]RatedEntry {
	entries := make(map[string]RatedEntry)
	decodeJSON(u.RatedWorks, &entries)
	return entries
}

// SetRatedWorkEntries encodes the ratedWorks mirror.
func (u *User) SetRatedWorkEntries(entries map[string]RatedEntry) {
	u.RatedWorks = encodeJSON(entries)
}

// FollowerIDs decodes the follower id list.
func (u *User) FollowerIDs() []uint64 {
	var ids []uint64
	decodeJSON(u.Followers, &ids)
	return ids
}

// SetFollowerIDs encodes the follower id list.
func (u *User) SetFollowerIDs(ids []uint64) {
	if ids == nil {
		ids = []uint64{}
	}
	u.Followers = encodeJSON(ids)
}

// FollowingIDs decodes the following id list.
func (u *User) FollowingIDs() []uint64 {
	var ids []uint64
	decodeJSON(u.Following, &ids)
	return ids
}

// SetFollowingIDs encodes the following id list.
func (u *User) SetFollowingIDs(ids []uint64) {
	if ids == nil {
		ids = []uint64{}
	}
	u.Following = encodeJSON(ids)
}

// RatedWorkKey formats a work id the way the ratedWorks mirror keys it.
func RatedWorkKey(workID uint64) string {
	return strconv.FormatUint(workID, 10)
}
