package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/european-living/internal/domain"
)

// ReviewRepo defines the persistence operations for business reviews.
// Reviews are insert-only.
type ReviewRepo interface {
	// Create inserts a review. Returns domain.ErrNotFound if the business
	// does not exist.
	Create(ctx context.Context, rv domain.Review) (domain.Review, error)

	// ListByBusiness returns the reviews of one business, newest first.
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error)
}

// pgReviewRepo is the Postgres implementation of ReviewRepo.
type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

const reviewColumns = `id, business_id, author_name, rating, COALESCE(comment, ''), created_at`

// Create uses INSERT ... SELECT so that a missing business yields no row
// (and therefore domain.ErrNotFound) instead of a foreign key violation.
func (r *pgReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	const q = `
		INSERT INTO reviews (business_id, author_name, rating, comment)
		SELECT b.id, @author_name, @rating, NULLIF(@comment, '')
		FROM businesses b
		WHERE b.id = @business_id
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{
		"business_id": rv.BusinessID,
		"author_name": rv.AuthorName,
		"rating":      rv.Rating,
		"comment":     rv.Comment,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanReview(row)
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgReviewRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error) {
	const q = `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE business_id = @business_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"business_id": businessID})
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListByBusiness: %w", err)
	}
	reviews, err := collect(rows, scanReview)
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListByBusiness: scan: %w", err)
	}
	return reviews, nil
}

// scanReview maps a single database row into a domain.Review.
func scanReview(s scanner) (domain.Review, error) {
	var (
		rv        domain.Review
		id, bizID pgtype.UUID
	)
	err := s.Scan(&id, &bizID, &rv.AuthorName, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		return domain.Review{}, notFound(err)
	}
	rv.ID = uuid.UUID(id.Bytes)
	rv.BusinessID = uuid.UUID(bizID.Bytes)
	return rv, nil
}
