package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty rates how demanding a day trip is.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging:
		return true
	}
	return false
}

// Cost is a one-to-three dollar-sign cost estimate for a day trip.
type Cost string

// Valid reports whether c is a known cost band.
func (c Cost) Valid() bool {
	switch c {
	case "$", "$$", "$$$":
		return true
	}
	return false
}

// DayTrip is a recommended excursion reachable from a military base.
// Photos is only populated by detail lookups.
type DayTrip struct {
	ID                  uuid.UUID
	BaseID              string
	BaseName            string
	Name                string
	Slug                string
	Distance            string
	DriveTime           string
	TrainTime           string
	Description         string
	ShortDescription    string
	FullDescription     string
	BestFor             []string
	Difficulty          Difficulty
	Cost                Cost
	ImageURL            string
	HeroImageURL        string
	Rating              *float64
	IsMustSee           bool
	RecommendedDuration string
	Featured            bool
	Latitude            *float64
	Longitude           *float64
	Tags                []TagName
	Photos              []Photo
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Photo is one image in a day trip gallery.
type Photo struct {
	ImageURL     string
	Caption      string
	DisplayOrder int
}

// DayTripFilter narrows a day trip listing. All set fields compose with AND.
type DayTripFilter struct {
	BaseID       string
	Tag          string
	Search       string
	Difficulty   Difficulty
	FeaturedOnly bool
}

// Base is a military installation that day trips are grouped under.
type Base struct {
	ID   string
	Name string
}
