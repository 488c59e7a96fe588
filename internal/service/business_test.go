package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/european-living/internal/directory"
	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
	"github.com/pkordes/european-living/internal/service"
)

// mockBusinessRepo is a hand-written test double for repo.BusinessRepo.
type mockBusinessRepo struct {
	list            func(ctx context.Context, q domain.BusinessQuery) ([]domain.Business, error)
	listAll         func(ctx context.Context) ([]domain.Business, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Business, error)
	create          func(ctx context.Context, b domain.Business) (domain.Business, error)
	update          func(ctx context.Context, b domain.Business) (domain.Business, error)
	setStatus       func(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	countByCategory func(ctx context.Context) ([]domain.CategoryCount, error)
	featured        func(ctx context.Context, limit int) ([]domain.Business, error)
}

func (m *mockBusinessRepo) List(ctx context.Context, q domain.BusinessQuery) ([]domain.Business, error) {
	return m.list(ctx, q)
}
func (m *mockBusinessRepo) ListAll(ctx context.Context) ([]domain.Business, error) {
	return m.listAll(ctx)
}
func (m *mockBusinessRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	return m.getByID(ctx, id)
}
func (m *mockBusinessRepo) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	return m.create(ctx, b)
}
func (m *mockBusinessRepo) Update(ctx context.Context, b domain.Business) (domain.Business, error) {
	return m.update(ctx, b)
}
func (m *mockBusinessRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error) {
	return m.setStatus(ctx, id, status)
}
func (m *mockBusinessRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockBusinessRepo) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	return m.countByCategory(ctx)
}
func (m *mockBusinessRepo) Featured(ctx context.Context, limit int) ([]domain.Business, error) {
	return m.featured(ctx, limit)
}

// compile-time check: mockBusinessRepo must satisfy repo.BusinessRepo.
var _ repo.BusinessRepo = (*mockBusinessRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validSubmission() domain.BusinessSubmission {
	return domain.BusinessSubmission{
		BusinessName:   "Zahnarzt Schmidt",
		Category:       "healthcare",
		City:           "Böblingen",
		PostalCode:     "71032",
		NearbyBases:    []string{"stuttgart"},
		Phone:          "+49 7031 123456",
		Email:          "info@zahnarzt-schmidt.de",
		Website:        "https://zahnarzt-schmidt.de",
		EnglishFluency: "fluent",
	}
}

func validBusiness() domain.Business {
	lat, lon := 48.68, 9.01
	return domain.Business{
		Name:        "Zahnarzt Schmidt",
		Category:    "healthcare",
		Location:    "Böblingen",
		BasesServed: []string{"stuttgart"},
		Latitude:    &lat,
		Longitude:   &lon,
	}
}

func echoBusinessRepo() *mockBusinessRepo {
	return &mockBusinessRepo{
		create: func(_ context.Context, b domain.Business) (domain.Business, error) { return b, nil },
		update: func(_ context.Context, b domain.Business) (domain.Business, error) { return b, nil },
	}
}

func newBusinessService(b *mockBusinessRepo) *service.BusinessService {
	return service.NewBusinessService(b, &mockReviewRepo{})
}

// ---- Submit ----------------------------------------------------------------

func TestBusinessService_Submit_Valid(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())

	got, err := svc.Submit(context.Background(), validSubmission())

	require.NoError(t, err)
	assert.Equal(t, "Zahnarzt Schmidt", got.Name)
	assert.Equal(t, "Böblingen, 71032", got.Location)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.False(t, got.Verified)
	assert.False(t, got.Featured)
	assert.Equal(t, []string{"stuttgart"}, got.BasesServed)
	assert.Equal(t, domain.FluencyFluent, got.EnglishFluency)
}

func TestBusinessService_Submit_LocationWithoutPostalCode(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())

	sub := validSubmission()
	sub.PostalCode = ""

	got, err := svc.Submit(context.Background(), sub)

	require.NoError(t, err)
	assert.Equal(t, "Böblingen", got.Location)
}

func TestBusinessService_Submit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.BusinessSubmission)
		message string
	}{
		{"missing name", func(s *domain.BusinessSubmission) { s.BusinessName = "  " }, "Please fill in all required fields (marked with *)"},
		{"missing phone", func(s *domain.BusinessSubmission) { s.Phone = "" }, "Please fill in all required fields (marked with *)"},
		{"missing fluency", func(s *domain.BusinessSubmission) { s.EnglishFluency = "" }, "Please fill in all required fields (marked with *)"},
		{"no bases", func(s *domain.BusinessSubmission) { s.NearbyBases = nil }, "Please select at least one nearby military base"},
		{"unknown base", func(s *domain.BusinessSubmission) { s.NearbyBases = []string{"fort-nowhere"} }, "Please select bases from the list"},
		{"bad website", func(s *domain.BusinessSubmission) { s.Website = "not a url" }, "Website URL is invalid."},
		{"bad email", func(s *domain.BusinessSubmission) { s.Email = "nope" }, "Please enter a valid email address"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			svc := newBusinessService(&mockBusinessRepo{
				create: func(_ context.Context, b domain.Business) (domain.Business, error) {
					called = true
					return b, nil
				},
			})

			sub := validSubmission()
			tc.mutate(&sub)
			_, err := svc.Submit(context.Background(), sub)

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.message)
			assert.False(t, called, "store must not be called on validation failure")
		})
	}
}

func TestSubmissionNotes(t *testing.T) {
	sub := validSubmission()
	sub.SOFAFamiliar = true
	sub.MilitaryDiscount = true
	sub.DiscountPercent = "10"
	sub.OnBaseAccess = true
	sub.DeliveryToBase = true
	sub.PriceRange = "$$"
	sub.Hours = "Mo-Fr 8-18"
	sub.OtherLanguages = "French"
	sub.AdditionalNotes = "Parking behind the building"

	got := service.SubmissionNotes(sub)

	assert.Equal(t, "SOFA-familiar | Military discount: 10% | On-base access available | "+
		"Delivers to base | Price range: $$ | Hours: Mo-Fr 8-18 | Other languages: French | "+
		"Parking behind the building", got)
}

func TestSubmissionNotes_DiscountWithoutPercent(t *testing.T) {
	sub := validSubmission()
	sub.MilitaryDiscount = true

	assert.Equal(t, "", service.SubmissionNotes(sub))
}

// ---- Create / Update -------------------------------------------------------

func TestBusinessService_Create_DefaultsToActive(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())

	got, err := svc.Create(context.Background(), validBusiness())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestBusinessService_Create_MissingCoreFields(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())

	b := validBusiness()
	b.Location = ""

	_, err := svc.Create(context.Background(), b)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Name, Location, and Category are required fields.")
}

func TestBusinessService_Create_MissingCoordinates(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())

	b := validBusiness()
	b.Latitude = nil

	_, err := svc.Create(context.Background(), b)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Coordinates (Latitude/Longitude) are required")
}

func TestBusinessService_Create_BadMapsURL(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())

	b := validBusiness()
	b.GoogleMapsURL = "maps"

	_, err := svc.Create(context.Background(), b)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Google Maps URL is invalid.")
}

func TestBusinessService_Create_InvalidStatus(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())

	b := validBusiness()
	b.Status = "archived"

	_, err := svc.Create(context.Background(), b)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBusinessService_Update_SetsID(t *testing.T) {
	svc := newBusinessService(echoBusinessRepo())
	id := uuid.New()

	b := validBusiness()
	b.Status = domain.StatusInactive
	got, err := svc.Update(context.Background(), id, b)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

func TestBusinessService_Update_NotFound(t *testing.T) {
	svc := newBusinessService(&mockBusinessRepo{
		update: func(_ context.Context, _ domain.Business) (domain.Business, error) {
			return domain.Business{}, domain.ErrNotFound
		},
	})

	b := validBusiness()
	b.Status = domain.StatusActive
	_, err := svc.Update(context.Background(), uuid.New(), b)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- SetStatus -------------------------------------------------------------

func TestBusinessService_SetStatus_AnyTransition(t *testing.T) {
	for _, status := range []string{"pending", "active", "inactive"} {
		t.Run(status, func(t *testing.T) {
			svc := newBusinessService(&mockBusinessRepo{
				setStatus: func(_ context.Context, id uuid.UUID, st domain.BusinessStatus) (domain.Business, error) {
					return domain.Business{ID: id, Status: st}, nil
				},
			})

			got, err := svc.SetStatus(context.Background(), uuid.New(), status)

			require.NoError(t, err)
			assert.Equal(t, domain.BusinessStatus(status), got.Status)
		})
	}
}

func TestBusinessService_SetStatus_Invalid(t *testing.T) {
	svc := newBusinessService(&mockBusinessRepo{})

	_, err := svc.SetStatus(context.Background(), uuid.New(), "archived")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- List ------------------------------------------------------------------

func TestBusinessService_List_FiltersAndSorts(t *testing.T) {
	svc := newBusinessService(&mockBusinessRepo{
		list: func(_ context.Context, _ domain.BusinessQuery) ([]domain.Business, error) {
			return []domain.Business{
				{Name: "B", Rating: 4.0, MilitaryDiscount: true},
				{Name: "A", Rating: 4.8, MilitaryDiscount: true},
				{Name: "C", Rating: 5.0},
			}, nil
		},
	})

	got, err := svc.List(context.Background(), domain.BusinessQuery{},
		directory.Filter{MilitaryDiscount: true}, directory.SortRatingDesc)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestBusinessService_List_SelectedBaseFallback(t *testing.T) {
	var gotQuery domain.BusinessQuery
	svc := newBusinessService(&mockBusinessRepo{
		list: func(_ context.Context, q domain.BusinessQuery) ([]domain.Business, error) {
			gotQuery = q
			return nil, nil
		},
	})
	ctx := domain.WithSelectedBase(context.Background(), "ramstein")

	_, err := svc.List(ctx, domain.BusinessQuery{}, directory.Filter{}, "")

	require.NoError(t, err)
	assert.Equal(t, "ramstein", gotQuery.BaseID)
}

func TestBusinessService_List_ExplicitBaseWins(t *testing.T) {
	var gotQuery domain.BusinessQuery
	svc := newBusinessService(&mockBusinessRepo{
		list: func(_ context.Context, q domain.BusinessQuery) ([]domain.Business, error) {
			gotQuery = q
			return nil, nil
		},
	})
	ctx := domain.WithSelectedBase(context.Background(), "ramstein")

	_, err := svc.List(ctx, domain.BusinessQuery{BaseID: "stuttgart"}, directory.Filter{}, "")

	require.NoError(t, err)
	assert.Equal(t, "stuttgart", gotQuery.BaseID)
}

func TestBusinessService_List_UnknownSort(t *testing.T) {
	svc := newBusinessService(&mockBusinessRepo{})

	_, err := svc.List(context.Background(), domain.BusinessQuery{}, directory.Filter{}, "cheapest")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Detail / Featured -----------------------------------------------------

func TestBusinessService_Detail(t *testing.T) {
	id := uuid.New()
	svc := service.NewBusinessService(
		&mockBusinessRepo{
			getByID: func(_ context.Context, got uuid.UUID) (domain.Business, error) {
				return domain.Business{ID: got, Name: "Bäckerei"}, nil
			},
		},
		&mockReviewRepo{
			listByBusiness: func(_ context.Context, _ uuid.UUID) ([]domain.Review, error) {
				return []domain.Review{{AuthorName: "Sam", Rating: 5}}, nil
			},
		},
	)

	d, err := svc.Detail(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, d.Business.ID)
	assert.Len(t, d.Reviews, 1)
}

func TestBusinessService_Detail_NotFound(t *testing.T) {
	svc := service.NewBusinessService(
		&mockBusinessRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Business, error) {
				return domain.Business{}, domain.ErrNotFound
			},
		},
		&mockReviewRepo{
			listByBusiness: func(_ context.Context, _ uuid.UUID) ([]domain.Review, error) {
				return []domain.Review{}, nil
			},
		},
	)

	_, err := svc.Detail(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBusinessService_Featured_DefaultLimit(t *testing.T) {
	var gotLimit int
	svc := newBusinessService(&mockBusinessRepo{
		featured: func(_ context.Context, limit int) ([]domain.Business, error) {
			gotLimit = limit
			return nil, nil
		},
	})

	_, err := svc.Featured(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 6, gotLimit)
}

func TestBusinessService_Export_PropagatesError(t *testing.T) {
	boom := errors.New("db down")
	svc := newBusinessService(&mockBusinessRepo{
		listAll: func(_ context.Context) ([]domain.Business, error) { return nil, boom },
	})

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, boom)
}
