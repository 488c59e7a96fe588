package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/european-living/internal/domain"
)

// SavedTripRepo defines the persistence operations for a user's saved day trips.
type SavedTripRepo interface {
	// IsSaved reports whether the user has saved the trip.
	IsSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error)

	// Save records the trip as saved. Idempotent.
	// Returns domain.ErrNotFound if the trip does not exist.
	Save(ctx context.Context, userID, tripID uuid.UUID) error

	// Unsave removes the saved record. Returns domain.ErrNotFound if the
	// trip was not saved.
	Unsave(ctx context.Context, userID, tripID uuid.UUID) error

	// List returns the user's saved trips, most recently saved first.
	List(ctx context.Context, userID uuid.UUID) ([]domain.DayTrip, error)
}

// pgSavedTripRepo is the Postgres implementation of SavedTripRepo.
type pgSavedTripRepo struct {
	db db
}

// NewSavedTripRepo constructs a SavedTripRepo backed by the provided db connection.
func NewSavedTripRepo(db db) SavedTripRepo {
	return &pgSavedTripRepo{db: db}
}

func (r *pgSavedTripRepo) IsSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM user_saved_trips
			WHERE user_id = @user_id AND day_trip_id = @day_trip_id
		)`

	var saved bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "day_trip_id": tripID}).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("repo.SavedTripRepo.IsSaved: %w", err)
	}
	return saved, nil
}

// Save inserts from day_trips so that an unknown trip inserts nothing.
func (r *pgSavedTripRepo) Save(ctx context.Context, userID, tripID uuid.UUID) error {
	const q = `
		INSERT INTO user_saved_trips (user_id, day_trip_id)
		SELECT @user_id, d.id FROM day_trips d WHERE d.id = @day_trip_id
		ON CONFLICT (user_id, day_trip_id) DO UPDATE SET user_id = EXCLUDED.user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "day_trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.SavedTripRepo.Save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SavedTripRepo.Save: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSavedTripRepo) Unsave(ctx context.Context, userID, tripID uuid.UUID) error {
	const q = `DELETE FROM user_saved_trips WHERE user_id = @user_id AND day_trip_id = @day_trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "day_trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.SavedTripRepo.Unsave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SavedTripRepo.Unsave: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSavedTripRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.DayTrip, error) {
	const q = `
		SELECT ` + dayTripColumns + `
		FROM user_saved_trips s
		JOIN day_trips d ON d.id = s.day_trip_id
		WHERE s.user_id = @user_id
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.SavedTripRepo.List: %w", err)
	}
	trips, err := collect(rows, scanDayTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.SavedTripRepo.List: scan: %w", err)
	}
	return trips, nil
}
