package models

import "time"

// Work types recognized by the catalog.
const (
	WorkTypeMovie        = "movie"
	WorkTypeSeries       = "series"
	WorkTypeMusic        = "music"
	WorkTypeBook         = "book"
	WorkTypeGraphicNovel = "graphic-novel"
)

// WorkTypes is the closed set of valid work type values.
var WorkTypes = map[string]bool{
	WorkTypeMovie:        true,
	WorkTypeSeries:       true,
	WorkTypeMusic:        true,
	WorkTypeBook:         true,
	WorkTypeGraphicNovel: true,
}

// GenreVocabulary is the fixed set of genres a work may carry.
var GenreVocabulary = map[string]bool{
	"action":      true,
	"adventure":   true,
	"animation":   true,
	"biography":   true,
	"comedy":      true,
	"crime":       true,
	"documentary": true,
	"drama":       true,
	"family":      true,
	"fantasy":     true,
	"history":     true,
	"horror":      true,
	"musical":     true,
	"mystery":     true,
	"poetry":      true,
	"romance":     true,
	"sci-fi":      true,
	"thriller":    true,
	"war":         true,
	"western":     true,
}

// Work represents a catalog entry. It carries no embedded rating; ratings
// are always derived from the Rating collection on read.
type Work struct {
	WorkID      uint64 `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"size:255;not null;index"`
	Description string `gorm:"size:2000"`
	Type        string `gorm:"size:32;not null;index"`
	Year        int    `gorm:"index"`

	// Genres holds a JSON array constrained to GenreVocabulary.
	Genres JSON

	Creator       string `gorm:"size:255"`
	CoverPath     string `gorm:"size:512"`
	DiscoveryLink string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Work
func (Work) TableName() string {
	return "works"
}

// GenreList decodes the genre list.
func (w *Work) GenreList() []string {
	var genres []string
	decodeJSON(w.Genres, &genres)
	return genres
}

// SetGenreList encodes the genre list.
func (w *Work) SetGenreList(genres []string) {
	if genres == nil {
		genres = []string{}
	}
	w.Genres = encodeJSON(genres)
}
