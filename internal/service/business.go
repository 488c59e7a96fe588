package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/european-living/internal/directory"
	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
)

const defaultFeaturedBusinesses = 6

// BusinessDetail is a listing together with its reviews.
type BusinessDetail struct {
	Business domain.Business
	Reviews  []domain.Review
}

// BusinessService implements the business directory: public listing and
// submission, plus the admin operations.
type BusinessService struct {
	businesses repo.BusinessRepo
	reviews    repo.ReviewRepo
	validate   *validator.Validate
}

// NewBusinessService constructs a BusinessService backed by the provided repos.
func NewBusinessService(businesses repo.BusinessRepo, reviews repo.ReviewRepo) *BusinessService {
	return &BusinessService{businesses: businesses, reviews: reviews, validate: newValidator()}
}

// List fetches listings from the store with q, then narrows them with f and
// orders them by opt. An empty q.BaseID falls back to the base selected in
// ctx. An empty opt keeps the store order.
func (s *BusinessService) List(ctx context.Context, q domain.BusinessQuery, f directory.Filter, opt directory.SortOption) ([]domain.Business, error) {
	if opt != "" && !opt.Valid() {
		return nil, fmt.Errorf("service.BusinessService.List: %w: unknown sort option %q", domain.ErrValidation, opt)
	}
	if q.BaseID == "" {
		q.BaseID = domain.SelectedBase(ctx)
	}

	list, err := s.businesses.List(ctx, q)
	if err != nil {
		return nil, err
	}
	list = directory.Apply(list, f)
	if opt != "" {
		list = directory.Sort(list, opt)
	}
	return list, nil
}

// Get returns one listing by id.
func (s *BusinessService) Get(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	return s.businesses.GetByID(ctx, id)
}

// Detail returns a listing and its reviews, fetched concurrently.
func (s *BusinessService) Detail(ctx context.Context, id uuid.UUID) (BusinessDetail, error) {
	var d BusinessDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.businesses.GetByID(gctx, id)
		d.Business = b
		return err
	})
	g.Go(func() error {
		rv, err := s.reviews.ListByBusiness(gctx, id)
		d.Reviews = rv
		return err
	})
	if err := g.Wait(); err != nil {
		return BusinessDetail{}, err
	}
	return d, nil
}

// Submit validates a public submission and stores it as a pending,
// unverified listing. No store call is made when validation fails.
func (s *BusinessService) Submit(ctx context.Context, sub domain.BusinessSubmission) (domain.Business, error) {
	sub = trimSubmission(sub)
	if err := s.validate.Struct(sub); err != nil {
		return domain.Business{}, validationError("service.BusinessService.Submit", err)
	}
	return s.businesses.Create(ctx, submissionToBusiness(sub))
}

// Create validates and stores an admin-entered listing. An empty status
// defaults to active.
func (s *BusinessService) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	if b.Status == "" {
		b.Status = domain.StatusActive
	}
	b = trimBusiness(b)
	if err := s.validate.Struct(b); err != nil {
		return domain.Business{}, validationError("service.BusinessService.Create", err)
	}
	return s.businesses.Create(ctx, b)
}

// Update validates b and overwrites the listing with the given id.
func (s *BusinessService) Update(ctx context.Context, id uuid.UUID, b domain.Business) (domain.Business, error) {
	b.ID = id
	b = trimBusiness(b)
	if err := s.validate.Struct(b); err != nil {
		return domain.Business{}, validationError("service.BusinessService.Update", err)
	}
	return s.businesses.Update(ctx, b)
}

// SetStatus moves a listing to status. Any status may follow any other.
func (s *BusinessService) SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Business, error) {
	st, err := domain.ParseBusinessStatus(status)
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.SetStatus: %w", err)
	}
	return s.businesses.SetStatus(ctx, id, st)
}

// Delete removes a listing and its reviews.
func (s *BusinessService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.businesses.Delete(ctx, id)
}

// CountByCategory returns the number of active listings per category.
func (s *BusinessService) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.businesses.CountByCategory(ctx)
}

// Featured returns active featured listings. A limit below 1 uses the default.
func (s *BusinessService) Featured(ctx context.Context, limit int) ([]domain.Business, error) {
	if limit < 1 {
		limit = defaultFeaturedBusinesses
	}
	return s.businesses.Featured(ctx, limit)
}

// Export returns every listing regardless of status.
func (s *BusinessService) Export(ctx context.Context) ([]domain.Business, error) {
	return s.businesses.ListAll(ctx)
}

func trimBusiness(b domain.Business) domain.Business {
	b.Name = strings.TrimSpace(b.Name)
	b.Location = strings.TrimSpace(b.Location)
	b.Category = strings.TrimSpace(b.Category)
	b.Website = strings.TrimSpace(b.Website)
	b.GoogleMapsURL = strings.TrimSpace(b.GoogleMapsURL)
	return b
}

func trimSubmission(sub domain.BusinessSubmission) domain.BusinessSubmission {
	sub.BusinessName = strings.TrimSpace(sub.BusinessName)
	sub.Category = strings.TrimSpace(sub.Category)
	sub.City = strings.TrimSpace(sub.City)
	sub.PostalCode = strings.TrimSpace(sub.PostalCode)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Website = strings.TrimSpace(sub.Website)
	sub.DiscountPercent = strings.TrimSpace(sub.DiscountPercent)
	return sub
}

// submissionToBusiness maps a validated submission onto a pending listing.
func submissionToBusiness(sub domain.BusinessSubmission) domain.Business {
	location := sub.City
	if sub.PostalCode != "" {
		location += ", " + sub.PostalCode
	}
	return domain.Business{
		Name:             sub.BusinessName,
		Category:         sub.Category,
		Subcategory:      sub.Subcategory,
		Description:      sub.Description,
		Location:         location,
		Address:          sub.Address,
		City:             sub.City,
		Phone:            sub.Phone,
		Email:            sub.Email,
		Website:          sub.Website,
		EnglishFluency:   domain.EnglishFluency(sub.EnglishFluency),
		BasesServed:      sub.NearbyBases,
		Status:           domain.StatusPending,
		PriceRange:       domain.PriceRange(sub.PriceRange),
		MilitaryDiscount: sub.MilitaryDiscount,
		SOFAFamiliar:     sub.SOFAFamiliar,
		Notes:            SubmissionNotes(sub),
	}
}

// SubmissionNotes flattens the optional submission fields into the notes
// column, joined with " | ".
func SubmissionNotes(sub domain.BusinessSubmission) string {
	var notes []string
	if sub.SOFAFamiliar {
		notes = append(notes, "SOFA-familiar")
	}
	if sub.MilitaryDiscount && sub.DiscountPercent != "" {
		notes = append(notes, "Military discount: "+sub.DiscountPercent+"%")
	}
	if sub.OnBaseAccess {
		notes = append(notes, "On-base access available")
	}
	if sub.DeliveryToBase {
		notes = append(notes, "Delivers to base")
	}
	if sub.PriceRange != "" {
		notes = append(notes, "Price range: "+sub.PriceRange)
	}
	if sub.Hours != "" {
		notes = append(notes, "Hours: "+sub.Hours)
	}
	if sub.OtherLanguages != "" {
		notes = append(notes, "Other languages: "+sub.OtherLanguages)
	}
	if sub.AdditionalNotes != "" {
		notes = append(notes, sub.AdditionalNotes)
	}
	return strings.Join(notes, " | ")
}
