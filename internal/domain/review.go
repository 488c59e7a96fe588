package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user rating of a business. Reviews are insert-only.
// The validate tags describe a submitted review; the bounds match
// MinRating, MaxRating and MinReviewLength.
type Review struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	AuthorName string `validate:"required"`
	Rating     int    `validate:"min=1,max=5"`
	Comment    string `validate:"min=10"`
	CreatedAt  time.Time
}

// MinRating and MaxRating bound Review.Rating.
const (
	MinRating = 1
	MaxRating = 5
)

// MinReviewLength is the minimum comment length in characters.
const MinReviewLength = 10
