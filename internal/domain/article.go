// Package domain contains the core data types for the European Living API.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler, directory).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is a published guide: a destination write-up, a practical guide,
// or a cultural tip. Content is markdown.
type Article struct {
	ID                 uuid.UUID
	Slug               string
	Title              string
	Subtitle           string
	Category           string
	Content            string
	Excerpt            string
	Author             string
	FeaturedImageURL   string
	DestinationName    string
	Tags               []string
	Published          bool
	ViewCount          int
	ReadingTimeMinutes int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ArticleFilter narrows an article listing. Zero values mean "no filter".
// Published is a pointer so that "only unpublished" can be expressed.
type ArticleFilter struct {
	Category    string
	Destination string
	Tag         string
	Published   *bool
	Limit       int
	Offset      int
}

// DefaultArticleWindow is the number of rows returned when an offset is
// given without a limit.
const DefaultArticleWindow = 10
