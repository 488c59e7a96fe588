package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/european-living/internal/domain"
)

// DayTripRepo defines the persistence operations for day trips.
// The public API only reads; Create exists for seeding and tests.
type DayTripRepo interface {
	// List returns trips matching every set field of f, featured first and
	// then by rating (unrated last). Photos are not loaded.
	List(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error)

	// GetByID and GetBySlug return one trip with its photos sorted by
	// display_order. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.DayTrip, error)
	GetBySlug(ctx context.Context, slug string) (domain.DayTrip, error)

	// ListBases returns the distinct bases that have at least one trip.
	ListBases(ctx context.Context) ([]domain.Base, error)

	// Create inserts a trip (without tags or photos).
	Create(ctx context.Context, t domain.DayTrip) (domain.DayTrip, error)

	// AddPhoto attaches one gallery photo to a trip.
	AddPhoto(ctx context.Context, tripID uuid.UUID, p domain.Photo) error
}

// pgDayTripRepo is the Postgres implementation of DayTripRepo.
type pgDayTripRepo struct {
	db db
}

// NewDayTripRepo constructs a DayTripRepo backed by the provided db connection.
func NewDayTripRepo(db db) DayTripRepo {
	return &pgDayTripRepo{db: db}
}

// dayTripColumns selects a trip plus its tag names aggregated from the
// day_trip_tags join. The alias d must refer to day_trips.
const dayTripColumns = `
	d.id, d.base_id, d.base_name, d.name, COALESCE(d.slug, ''), d.distance,
	d.drive_time, COALESCE(d.train_time, ''), d.description,
	COALESCE(d.short_description, ''), COALESCE(d.full_description, ''),
	d.best_for, d.difficulty, d.cost, COALESCE(d.image_url, ''),
	COALESCE(d.hero_image_url, ''), d.rating::float8, d.is_must_see,
	COALESCE(d.recommended_duration, ''), d.featured, d.latitude, d.longitude,
	COALESCE((
		SELECT array_agg(t.name ORDER BY t.name)
		FROM day_trip_tags dtt
		JOIN tags t ON t.id = dtt.tag_id
		WHERE dtt.day_trip_id = d.id
	), '{}') AS tag_names,
	d.created_at, d.updated_at`

// List composes every filter into one query.
func (r *pgDayTripRepo) List(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error) {
	const q = `
		SELECT ` + dayTripColumns + `
		FROM day_trips d
		WHERE (@base::text = '' OR d.base_id = @base)
		  AND (@tag::text = '' OR EXISTS (
		        SELECT 1
		        FROM day_trip_tags dtt
		        JOIN tags t ON t.id = dtt.tag_id
		        WHERE dtt.day_trip_id = d.id AND t.name = @tag))
		  AND (@pattern::text = '' OR d.name ILIKE @pattern OR d.description ILIKE @pattern)
		  AND (@difficulty::text = '' OR d.difficulty = @difficulty)
		  AND (NOT @featured_only::boolean OR d.featured)
		ORDER BY d.featured DESC, d.rating DESC NULLS LAST, d.name ASC`

	pattern := ""
	if f.Search != "" {
		pattern = likePattern(f.Search)
	}

	args := pgx.NamedArgs{
		"base":          f.BaseID,
		"tag":           f.Tag,
		"pattern":       pattern,
		"difficulty":    string(f.Difficulty),
		"featured_only": f.FeaturedOnly,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.DayTripRepo.List: %w", err)
	}
	trips, err := collect(rows, scanDayTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.DayTripRepo.List: scan: %w", err)
	}
	return trips, nil
}

func (r *pgDayTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DayTrip, error) {
	const q = `SELECT ` + dayTripColumns + ` FROM day_trips d WHERE d.id = @id`

	t, err := r.getOne(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.DayTrip{}, fmt.Errorf("repo.DayTripRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *pgDayTripRepo) GetBySlug(ctx context.Context, slug string) (domain.DayTrip, error) {
	const q = `SELECT ` + dayTripColumns + ` FROM day_trips d WHERE d.slug = @slug`

	t, err := r.getOne(ctx, q, pgx.NamedArgs{"slug": slug})
	if err != nil {
		return domain.DayTrip{}, fmt.Errorf("repo.DayTripRepo.GetBySlug: %w", err)
	}
	return t, nil
}

// getOne loads a single trip and then its photos.
func (r *pgDayTripRepo) getOne(ctx context.Context, q string, args pgx.NamedArgs) (domain.DayTrip, error) {
	t, err := scanDayTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayTrip{}, err
	}

	const photosQ = `
		SELECT image_url, COALESCE(caption, ''), display_order
		FROM day_trip_photos
		WHERE day_trip_id = @id
		ORDER BY display_order ASC`

	rows, err := r.db.Query(ctx, photosQ, pgx.NamedArgs{"id": t.ID})
	if err != nil {
		return domain.DayTrip{}, fmt.Errorf("photos: %w", err)
	}
	t.Photos, err = collect(rows, func(s scanner) (domain.Photo, error) {
		var p domain.Photo
		err := s.Scan(&p.ImageURL, &p.Caption, &p.DisplayOrder)
		return p, err
	})
	if err != nil {
		return domain.DayTrip{}, fmt.Errorf("photos: scan: %w", err)
	}
	return t, nil
}

func (r *pgDayTripRepo) ListBases(ctx context.Context) ([]domain.Base, error) {
	const q = `
		SELECT DISTINCT base_id, base_name
		FROM day_trips
		ORDER BY base_name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DayTripRepo.ListBases: %w", err)
	}
	bases, err := collect(rows, func(s scanner) (domain.Base, error) {
		var b domain.Base
		err := s.Scan(&b.ID, &b.Name)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.DayTripRepo.ListBases: scan: %w", err)
	}
	return bases, nil
}

func (r *pgDayTripRepo) Create(ctx context.Context, t domain.DayTrip) (domain.DayTrip, error) {
	const q = `
		WITH d AS (
			INSERT INTO day_trips (
				base_id, base_name, name, slug, distance, drive_time, train_time,
				description, short_description, full_description, best_for,
				difficulty, cost, image_url, hero_image_url, rating, is_must_see,
				recommended_duration, featured, latitude, longitude
			)
			VALUES (
				@base_id, @base_name, @name, NULLIF(@slug, ''), @distance, @drive_time,
				NULLIF(@train_time, ''), @description, NULLIF(@short_description, ''),
				NULLIF(@full_description, ''), @best_for, @difficulty, @cost,
				NULLIF(@image_url, ''), NULLIF(@hero_image_url, ''), @rating, @is_must_see,
				NULLIF(@recommended_duration, ''), @featured, @latitude, @longitude
			)
			RETURNING *
		)
		SELECT ` + dayTripColumns + ` FROM d`

	args := pgx.NamedArgs{
		"base_id":              t.BaseID,
		"base_name":            t.BaseName,
		"name":                 t.Name,
		"slug":                 t.Slug,
		"distance":             t.Distance,
		"drive_time":           t.DriveTime,
		"train_time":           t.TrainTime,
		"description":          t.Description,
		"short_description":    t.ShortDescription,
		"full_description":     t.FullDescription,
		"best_for":             nonNil(t.BestFor),
		"difficulty":           string(t.Difficulty),
		"cost":                 string(t.Cost),
		"image_url":            t.ImageURL,
		"hero_image_url":       t.HeroImageURL,
		"rating":               t.Rating, // nil becomes NULL
		"is_must_see":          t.IsMustSee,
		"recommended_duration": t.RecommendedDuration,
		"featured":             t.Featured,
		"latitude":             t.Latitude,
		"longitude":            t.Longitude,
	}

	result, err := scanDayTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayTrip{}, fmt.Errorf("repo.DayTripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDayTripRepo) AddPhoto(ctx context.Context, tripID uuid.UUID, p domain.Photo) error {
	const q = `
		INSERT INTO day_trip_photos (day_trip_id, image_url, caption, display_order)
		VALUES (@day_trip_id, @image_url, NULLIF(@caption, ''), @display_order)`

	args := pgx.NamedArgs{
		"day_trip_id":   tripID,
		"image_url":     p.ImageURL,
		"caption":       p.Caption,
		"display_order": p.DisplayOrder,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.DayTripRepo.AddPhoto: %w", err)
	}
	return nil
}

// scanDayTrip maps a single database row (in dayTripColumns order) into a
// domain.DayTrip. The aggregated tag names are flattened to []TagName here,
// and difficulty and cost are checked against their enumerations.
func scanDayTrip(s scanner) (domain.DayTrip, error) {
	var (
		t                domain.DayTrip
		id               pgtype.UUID
		difficulty, cost string
		tagNames         []string
	)

	err := s.Scan(
		&id, &t.BaseID, &t.BaseName, &t.Name, &t.Slug, &t.Distance,
		&t.DriveTime, &t.TrainTime, &t.Description,
		&t.ShortDescription, &t.FullDescription,
		&t.BestFor, &difficulty, &cost, &t.ImageURL,
		&t.HeroImageURL, &t.Rating, &t.IsMustSee,
		&t.RecommendedDuration, &t.Featured, &t.Latitude, &t.Longitude,
		&tagNames,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.DayTrip{}, notFound(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Difficulty = domain.Difficulty(difficulty)
	t.Cost = domain.Cost(cost)
	if !t.Difficulty.Valid() {
		return domain.DayTrip{}, fmt.Errorf("%w: day trip %s has difficulty %q", domain.ErrMalformedRow, t.ID, difficulty)
	}
	if !t.Cost.Valid() {
		return domain.DayTrip{}, fmt.Errorf("%w: day trip %s has cost %q", domain.ErrMalformedRow, t.ID, cost)
	}

	t.Tags = domain.TagNames(tagNames)
	if t.BestFor == nil {
		t.BestFor = []string{}
	}
	t.Photos = []domain.Photo{}
	return t, nil
}
