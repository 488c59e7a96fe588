package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// TagRepo defines the persistence operations for tags and the day_trip_tags
// join table.
type TagRepo interface {
	// Upsert inserts a tag by name, or returns the id of the existing tag if
	// the name is already taken.
	Upsert(ctx context.Context, name string) (uuid.UUID, error)

	// List returns the names of tags used by at least one day trip whose name
	// starts with prefix, ordered by name. An empty prefix returns all of them.
	List(ctx context.Context, prefix string) ([]string, error)

	// AddToDayTrip links a tag to a day trip. Idempotent: no error if already linked.
	AddToDayTrip(ctx context.Context, tripID, tagID uuid.UUID) error
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// Upsert inserts a tag or returns the existing row on name conflict.
// The DO UPDATE SET trick forces the RETURNING clause to fire even when
// the conflict handler skips the insert; with DO NOTHING, RETURNING
// returns no row on conflict.
func (r *pgTagRepo) Upsert(ctx context.Context, name string) (uuid.UUID, error) {
	const q = `
		INSERT INTO tags (name)
		VALUES (@name)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("repo.TagRepo.Upsert: %w", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *pgTagRepo) List(ctx context.Context, prefix string) ([]string, error) {
	const q = `
		SELECT DISTINCT t.name
		FROM tags t
		JOIN day_trip_tags dtt ON dtt.tag_id = t.id
		WHERE t.name ILIKE @prefix::text || '%'
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": likeEscaper.Replace(prefix)})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	names, err := collect(rows, func(s scanner) (string, error) {
		var n string
		err := s.Scan(&n)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: scan: %w", err)
	}
	return names, nil
}

// AddToDayTrip links a tag to a day trip. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgTagRepo) AddToDayTrip(ctx context.Context, tripID, tagID uuid.UUID) error {
	const q = `
		INSERT INTO day_trip_tags (day_trip_id, tag_id)
		VALUES (@day_trip_id, @tag_id)
		ON CONFLICT (day_trip_id, tag_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"day_trip_id": tripID, "tag_id": tagID})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.AddToDayTrip: %w", err)
	}
	return nil
}
