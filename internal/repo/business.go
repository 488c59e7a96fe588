package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/european-living/internal/domain"
)

// AllBases is the BaseID value that disables the base filter.
const AllBases = "all"

// BusinessRepo defines the persistence operations for directory listings.
type BusinessRepo interface {
	// List returns listings matching q ordered featured first, then by name.
	// An empty q.Status means active listings only.
	List(ctx context.Context, q domain.BusinessQuery) ([]domain.Business, error)

	// ListAll returns every listing regardless of status, ordered by name.
	ListAll(ctx context.Context) ([]domain.Business, error)

	// GetByID returns domain.ErrNotFound if no listing has that id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error)

	// Create inserts a listing and returns the persisted record.
	Create(ctx context.Context, b domain.Business) (domain.Business, error)

	// Update overwrites every mutable column of b.ID.
	// Returns domain.ErrNotFound if the listing does not exist.
	Update(ctx context.Context, b domain.Business) (domain.Business, error)

	// SetStatus changes only the status column.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error)

	// Delete removes a listing and, by cascade, its reviews.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCategory counts active listings per category.
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)

	// Featured returns active featured listings, highest rated first.
	Featured(ctx context.Context, limit int) ([]domain.Business, error)
}

// pgBusinessRepo is the Postgres implementation of BusinessRepo.
type pgBusinessRepo struct {
	db db
}

// NewBusinessRepo constructs a BusinessRepo backed by the provided db connection.
func NewBusinessRepo(db db) BusinessRepo {
	return &pgBusinessRepo{db: db}
}

const businessColumns = `
	id, name, category, COALESCE(subcategory, ''), COALESCE(description, ''),
	location, COALESCE(address, ''), COALESCE(city, ''), COALESCE(phone, ''),
	COALESCE(email, ''), COALESCE(website, ''), COALESCE(english_fluency, ''),
	verified, featured, COALESCE(featured_tier, ''), bases_served, status,
	COALESCE(rating, 0)::float8, COALESCE(price_range, ''), military_discount,
	sofa_familiar, specialties, tags, latitude, longitude,
	COALESCE(google_maps_url, ''), COALESCE(image_url, ''), COALESCE(notes, ''),
	created_at, updated_at`

func (r *pgBusinessRepo) List(ctx context.Context, q domain.BusinessQuery) ([]domain.Business, error) {
	const query = `
		SELECT ` + businessColumns + `
		FROM businesses
		WHERE status = @status
		  AND (@category::text = '' OR category = @category)
		  AND (@subcategory::text = '' OR subcategory = @subcategory)
		  AND (@base::text = '' OR bases_served @> ARRAY[@base::text])
		  AND (@pattern::text = '' OR name ILIKE @pattern OR description ILIKE @pattern OR city ILIKE @pattern)
		ORDER BY featured DESC, name ASC`

	status := q.Status
	if status == "" {
		status = domain.StatusActive
	}
	base := q.BaseID
	if base == AllBases {
		base = ""
	}
	pattern := ""
	if q.Search != "" {
		pattern = likePattern(q.Search)
	}

	args := pgx.NamedArgs{
		"status":      string(status),
		"category":    q.Category,
		"subcategory": q.Subcategory,
		"base":        base,
		"pattern":     pattern,
	}

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.List: %w", err)
	}
	list, err := collect(rows, scanBusiness)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.List: scan: %w", err)
	}
	return list, nil
}

func (r *pgBusinessRepo) ListAll(ctx context.Context) ([]domain.Business, error) {
	const q = `SELECT ` + businessColumns + ` FROM businesses ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ListAll: %w", err)
	}
	list, err := collect(rows, scanBusiness)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ListAll: scan: %w", err)
	}
	return list, nil
}

func (r *pgBusinessRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	const q = `SELECT ` + businessColumns + ` FROM businesses WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	b, err := scanBusiness(row)
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.GetByID: %w", err)
	}
	return b, nil
}

func (r *pgBusinessRepo) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	const q = `
		INSERT INTO businesses (
			name, category, subcategory, description, location, address, city,
			phone, email, website, english_fluency, verified, featured,
			featured_tier, bases_served, status, rating, price_range,
			military_discount, sofa_familiar, specialties, tags, latitude,
			longitude, google_maps_url, image_url, notes
		)
		VALUES (
			@name, @category, NULLIF(@subcategory, ''), NULLIF(@description, ''), @location,
			NULLIF(@address, ''), NULLIF(@city, ''), NULLIF(@phone, ''), NULLIF(@email, ''),
			NULLIF(@website, ''), NULLIF(@english_fluency, ''), @verified, @featured,
			NULLIF(@featured_tier, ''), @bases_served, @status, NULLIF(@rating::numeric, 0),
			NULLIF(@price_range, ''), @military_discount, @sofa_familiar, @specialties,
			@tags, @latitude, @longitude, NULLIF(@google_maps_url, ''),
			NULLIF(@image_url, ''), NULLIF(@notes, '')
		)
		RETURNING ` + businessColumns

	row := r.db.QueryRow(ctx, q, businessArgs(b))
	result, err := scanBusiness(row)
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBusinessRepo) Update(ctx context.Context, b domain.Business) (domain.Business, error) {
	const q = `
		UPDATE businesses
		SET name              = @name,
		    category          = @category,
		    subcategory       = NULLIF(@subcategory, ''),
		    description       = NULLIF(@description, ''),
		    location          = @location,
		    address           = NULLIF(@address, ''),
		    city              = NULLIF(@city, ''),
		    phone             = NULLIF(@phone, ''),
		    email             = NULLIF(@email, ''),
		    website           = NULLIF(@website, ''),
		    english_fluency   = NULLIF(@english_fluency, ''),
		    verified          = @verified,
		    featured          = @featured,
		    featured_tier     = NULLIF(@featured_tier, ''),
		    bases_served      = @bases_served,
		    status            = @status,
		    rating            = NULLIF(@rating::numeric, 0),
		    price_range       = NULLIF(@price_range, ''),
		    military_discount = @military_discount,
		    sofa_familiar     = @sofa_familiar,
		    specialties       = @specialties,
		    tags              = @tags,
		    latitude          = @latitude,
		    longitude         = @longitude,
		    google_maps_url   = NULLIF(@google_maps_url, ''),
		    image_url         = NULLIF(@image_url, ''),
		    notes             = NULLIF(@notes, ''),
		    updated_at        = now()
		WHERE id = @id
		RETURNING ` + businessColumns

	args := businessArgs(b)
	args["id"] = b.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBusiness(row)
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgBusinessRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error) {
	const q = `
		UPDATE businesses
		SET status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + businessColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	result, err := scanBusiness(row)
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.SetStatus: %w", err)
	}
	return result, nil
}

func (r *pgBusinessRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM businesses WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BusinessRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BusinessRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgBusinessRepo) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	const q = `
		SELECT category, count(*)
		FROM businesses
		WHERE status = 'active'
		GROUP BY category
		ORDER BY category`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.CountByCategory: %w", err)
	}
	counts, err := collect(rows, func(s scanner) (domain.CategoryCount, error) {
		var c domain.CategoryCount
		err := s.Scan(&c.Category, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.CountByCategory: scan: %w", err)
	}
	return counts, nil
}

func (r *pgBusinessRepo) Featured(ctx context.Context, limit int) ([]domain.Business, error) {
	const q = `
		SELECT ` + businessColumns + `
		FROM businesses
		WHERE status = 'active' AND featured = true
		ORDER BY rating DESC NULLS LAST
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.Featured: %w", err)
	}
	list, err := collect(rows, scanBusiness)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.Featured: scan: %w", err)
	}
	return list, nil
}

// businessArgs maps the writable columns of b. Create and Update share it.
func businessArgs(b domain.Business) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":              b.Name,
		"category":          b.Category,
		"subcategory":       b.Subcategory,
		"description":       b.Description,
		"location":          b.Location,
		"address":           b.Address,
		"city":              b.City,
		"phone":             b.Phone,
		"email":             b.Email,
		"website":           b.Website,
		"english_fluency":   string(b.EnglishFluency),
		"verified":          b.Verified,
		"featured":          b.Featured,
		"featured_tier":     string(b.FeaturedTier),
		"bases_served":      nonNil(b.BasesServed),
		"status":            string(b.Status),
		"rating":            b.Rating,
		"price_range":       string(b.PriceRange),
		"military_discount": b.MilitaryDiscount,
		"sofa_familiar":     b.SOFAFamiliar,
		"specialties":       nonNil(b.Specialties),
		"tags":              nonNil(b.Tags),
		"latitude":          b.Latitude,
		"longitude":         b.Longitude,
		"google_maps_url":   b.GoogleMapsURL,
		"image_url":         b.ImageURL,
		"notes":             b.Notes,
	}
}

// scanBusiness maps a single database row (in businessColumns order) into a
// domain.Business. Enum columns are checked here so that a bad stored value
// surfaces as domain.ErrMalformedRow instead of leaking into the API.
func scanBusiness(s scanner) (domain.Business, error) {
	var (
		b                            domain.Business
		id                           pgtype.UUID
		fluency, tier, status, price string
	)

	err := s.Scan(
		&id, &b.Name, &b.Category, &b.Subcategory, &b.Description,
		&b.Location, &b.Address, &b.City, &b.Phone,
		&b.Email, &b.Website, &fluency,
		&b.Verified, &b.Featured, &tier, &b.BasesServed, &status,
		&b.Rating, &price, &b.MilitaryDiscount,
		&b.SOFAFamiliar, &b.Specialties, &b.Tags, &b.Latitude, &b.Longitude,
		&b.GoogleMapsURL, &b.ImageURL, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Business{}, notFound(err)
	}

	b.ID = uuid.UUID(id.Bytes)
	b.EnglishFluency = domain.EnglishFluency(fluency)
	b.FeaturedTier = domain.FeaturedTier(tier)
	b.Status = domain.BusinessStatus(status)
	b.PriceRange = domain.PriceRange(price)

	switch {
	case !b.Status.Valid():
		return domain.Business{}, fmt.Errorf("%w: business %s has status %q", domain.ErrMalformedRow, b.ID, status)
	case fluency != "" && !b.EnglishFluency.Valid():
		return domain.Business{}, fmt.Errorf("%w: business %s has english_fluency %q", domain.ErrMalformedRow, b.ID, fluency)
	case !b.FeaturedTier.Valid():
		return domain.Business{}, fmt.Errorf("%w: business %s has featured_tier %q", domain.ErrMalformedRow, b.ID, tier)
	case price != "" && b.PriceRange.Rank() == 0:
		return domain.Business{}, fmt.Errorf("%w: business %s has price_range %q", domain.ErrMalformedRow, b.ID, price)
	}

	for _, p := range []*[]string{&b.BasesServed, &b.Specialties, &b.Tags} {
		if *p == nil {
			*p = []string{}
		}
	}
	return b, nil
}
