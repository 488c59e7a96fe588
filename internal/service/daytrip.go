package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
)

// DayTripService implements read access to day trips and per-user saved trips.
type DayTripService struct {
	trips repo.DayTripRepo
	saved repo.SavedTripRepo
}

// NewDayTripService constructs a DayTripService backed by the provided repos.
func NewDayTripService(trips repo.DayTripRepo, saved repo.SavedTripRepo) *DayTripService {
	return &DayTripService{trips: trips, saved: saved}
}

// List returns day trips matching every set field of f.
// An empty f.BaseID falls back to the base selected in ctx; "all" lists
// trips for every base.
func (s *DayTripService) List(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error) {
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return nil, fmt.Errorf("service.DayTripService.List: %w: difficulty must be one of Easy, Moderate, Challenging", domain.ErrValidation)
	}
	if f.BaseID == "" {
		f.BaseID = domain.SelectedBase(ctx)
	}
	if f.BaseID == repo.AllBases {
		f.BaseID = ""
	}
	f.Tag = strings.TrimSpace(f.Tag)
	f.Search = strings.TrimSpace(f.Search)
	return s.trips.List(ctx, f)
}

// GetByID returns one trip with its tags and photos.
func (s *DayTripService) GetByID(ctx context.Context, id uuid.UUID) (domain.DayTrip, error) {
	return s.trips.GetByID(ctx, id)
}

// GetBySlug returns one trip with its tags and photos.
func (s *DayTripService) GetBySlug(ctx context.Context, slug string) (domain.DayTrip, error) {
	return s.trips.GetBySlug(ctx, slug)
}

// ListBases returns the bases that have at least one trip.
func (s *DayTripService) ListBases(ctx context.Context) ([]domain.Base, error) {
	return s.trips.ListBases(ctx)
}

// ToggleSaved flips the saved state of a trip for a user and returns the
// new state.
func (s *DayTripService) ToggleSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error) {
	saved, err := s.saved.IsSaved(ctx, userID, tripID)
	if err != nil {
		return false, err
	}
	if saved {
		if err := s.saved.Unsave(ctx, userID, tripID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.saved.Save(ctx, userID, tripID); err != nil {
		return false, err
	}
	return true, nil
}

// IsSaved reports whether the user has saved the trip.
func (s *DayTripService) IsSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error) {
	return s.saved.IsSaved(ctx, userID, tripID)
}

// ListSaved returns the user's saved trips.
func (s *DayTripService) ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.DayTrip, error) {
	return s.saved.List(ctx, userID)
}
