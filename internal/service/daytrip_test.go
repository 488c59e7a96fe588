package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
	"github.com/pkordes/european-living/internal/service"
)

// mockDayTripRepo is a hand-written test double for repo.DayTripRepo.
type mockDayTripRepo struct {
	list      func(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.DayTrip, error)
	getBySlug func(ctx context.Context, slug string) (domain.DayTrip, error)
	listBases func(ctx context.Context) ([]domain.Base, error)
	create    func(ctx context.Context, t domain.DayTrip) (domain.DayTrip, error)
	addPhoto  func(ctx context.Context, tripID uuid.UUID, p domain.Photo) error
}

func (m *mockDayTripRepo) List(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error) {
	return m.list(ctx, f)
}
func (m *mockDayTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DayTrip, error) {
	return m.getByID(ctx, id)
}
func (m *mockDayTripRepo) GetBySlug(ctx context.Context, slug string) (domain.DayTrip, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockDayTripRepo) ListBases(ctx context.Context) ([]domain.Base, error) {
	return m.listBases(ctx)
}
func (m *mockDayTripRepo) Create(ctx context.Context, t domain.DayTrip) (domain.DayTrip, error) {
	return m.create(ctx, t)
}
func (m *mockDayTripRepo) AddPhoto(ctx context.Context, tripID uuid.UUID, p domain.Photo) error {
	return m.addPhoto(ctx, tripID, p)
}

// compile-time check: mockDayTripRepo must satisfy repo.DayTripRepo.
var _ repo.DayTripRepo = (*mockDayTripRepo)(nil)

// mockSavedTripRepo is an in-memory repo.SavedTripRepo keyed by user+trip.
type mockSavedTripRepo struct {
	saved map[[2]uuid.UUID]bool
}

func newMockSavedTripRepo() *mockSavedTripRepo {
	return &mockSavedTripRepo{saved: map[[2]uuid.UUID]bool{}}
}

func (m *mockSavedTripRepo) IsSaved(_ context.Context, userID, tripID uuid.UUID) (bool, error) {
	return m.saved[[2]uuid.UUID{userID, tripID}], nil
}
func (m *mockSavedTripRepo) Save(_ context.Context, userID, tripID uuid.UUID) error {
	m.saved[[2]uuid.UUID{userID, tripID}] = true
	return nil
}
func (m *mockSavedTripRepo) Unsave(_ context.Context, userID, tripID uuid.UUID) error {
	key := [2]uuid.UUID{userID, tripID}
	if !m.saved[key] {
		return domain.ErrNotFound
	}
	delete(m.saved, key)
	return nil
}
func (m *mockSavedTripRepo) List(_ context.Context, userID uuid.UUID) ([]domain.DayTrip, error) {
	out := []domain.DayTrip{}
	for key := range m.saved {
		if key[0] == userID {
			out = append(out, domain.DayTrip{ID: key[1]})
		}
	}
	return out, nil
}

// compile-time check: mockSavedTripRepo must satisfy repo.SavedTripRepo.
var _ repo.SavedTripRepo = (*mockSavedTripRepo)(nil)

func captureFilter(got *domain.DayTripFilter) *mockDayTripRepo {
	return &mockDayTripRepo{
		list: func(_ context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error) {
			*got = f
			return []domain.DayTrip{}, nil
		},
	}
}

func TestDayTripService_List_ComposesFilters(t *testing.T) {
	var got domain.DayTripFilter
	svc := service.NewDayTripService(captureFilter(&got), newMockSavedTripRepo())

	_, err := svc.List(context.Background(), domain.DayTripFilter{
		BaseID: "stuttgart", Tag: " castles ", Search: " lake ", Difficulty: domain.DifficultyEasy,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DayTripFilter{
		BaseID: "stuttgart", Tag: "castles", Search: "lake", Difficulty: domain.DifficultyEasy,
	}, got)
}

func TestDayTripService_List_SelectedBaseFallback(t *testing.T) {
	var got domain.DayTripFilter
	svc := service.NewDayTripService(captureFilter(&got), newMockSavedTripRepo())
	ctx := domain.WithSelectedBase(context.Background(), "wiesbaden")

	_, err := svc.List(ctx, domain.DayTripFilter{})

	require.NoError(t, err)
	assert.Equal(t, "wiesbaden", got.BaseID)
}

func TestDayTripService_List_AllBases(t *testing.T) {
	var got domain.DayTripFilter
	svc := service.NewDayTripService(captureFilter(&got), newMockSavedTripRepo())
	ctx := domain.WithSelectedBase(context.Background(), "wiesbaden")

	_, err := svc.List(ctx, domain.DayTripFilter{BaseID: "all"})

	require.NoError(t, err)
	assert.Equal(t, "", got.BaseID)
}

func TestDayTripService_List_InvalidDifficulty(t *testing.T) {
	svc := service.NewDayTripService(&mockDayTripRepo{}, newMockSavedTripRepo())

	_, err := svc.List(context.Background(), domain.DayTripFilter{Difficulty: "Extreme"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDayTripService_GetBySlug_NotFound(t *testing.T) {
	svc := service.NewDayTripService(&mockDayTripRepo{
		getBySlug: func(_ context.Context, _ string) (domain.DayTrip, error) {
			return domain.DayTrip{}, domain.ErrNotFound
		},
	}, newMockSavedTripRepo())

	_, err := svc.GetBySlug(context.Background(), "nowhere")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDayTripService_ToggleSaved(t *testing.T) {
	saved := newMockSavedTripRepo()
	svc := service.NewDayTripService(&mockDayTripRepo{}, saved)
	user, trip := uuid.New(), uuid.New()
	ctx := context.Background()

	on, err := svc.ToggleSaved(ctx, user, trip)
	require.NoError(t, err)
	assert.True(t, on)

	isSaved, err := svc.IsSaved(ctx, user, trip)
	require.NoError(t, err)
	assert.True(t, isSaved)

	list, err := svc.ListSaved(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, trip, list[0].ID)

	off, err := svc.ToggleSaved(ctx, user, trip)
	require.NoError(t, err)
	assert.False(t, off)

	isSaved, err = svc.IsSaved(ctx, user, trip)
	require.NoError(t, err)
	assert.False(t, isSaved)
}

func TestDayTripService_ListBases(t *testing.T) {
	svc := service.NewDayTripService(&mockDayTripRepo{
		listBases: func(_ context.Context) ([]domain.Base, error) {
			return []domain.Base{{ID: "stuttgart", Name: "USAG Stuttgart"}}, nil
		},
	}, newMockSavedTripRepo())

	bases, err := svc.ListBases(context.Background())

	require.NoError(t, err)
	assert.Len(t, bases, 1)
}
