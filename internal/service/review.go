package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
)

// ReviewService implements business logic for reviews.
type ReviewService struct {
	repo     repo.ReviewRepo
	validate *validator.Validate
}

// NewReviewService constructs a ReviewService backed by the provided ReviewRepo.
func NewReviewService(r repo.ReviewRepo) *ReviewService {
	return &ReviewService{repo: r, validate: newValidator()}
}

// Create validates and stores a review of businessID. The author name and
// comment are stored trimmed.
func (s *ReviewService) Create(ctx context.Context, businessID uuid.UUID, rv domain.Review) (domain.Review, error) {
	rv.BusinessID = businessID
	rv.AuthorName = strings.TrimSpace(rv.AuthorName)
	rv.Comment = strings.TrimSpace(rv.Comment)

	if err := s.validate.Struct(rv); err != nil {
		return domain.Review{}, validationError("service.ReviewService.Create", err)
	}
	return s.repo.Create(ctx, rv)
}

// List returns the reviews of one business, newest first.
func (s *ReviewService) List(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}
