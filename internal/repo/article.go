package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/european-living/internal/domain"
)

// DuplicateSlug is one slug that appears on more than one article, together
// with the id of its most recently created row.
type DuplicateSlug struct {
	Slug     string
	LatestID uuid.UUID
}

// ArticleRepo defines the persistence operations for Articles.
type ArticleRepo interface {
	// List returns articles matching f, newest first.
	List(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, error)

	// GetPublishedBySlug returns the published article with the given slug.
	// Returns domain.ErrNotFound if none exists or it is unpublished.
	GetPublishedBySlug(ctx context.Context, slug string) (domain.Article, error)

	// IncrementViews bumps view_count through the increment_article_views
	// database function. The update is atomic.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// ReadViewCount and SetViewCount are the non-atomic fallback used when
	// the database function is unavailable.
	ReadViewCount(ctx context.Context, id uuid.UUID) (int, error)
	SetViewCount(ctx context.Context, id uuid.UUID, n int) error

	// Search matches term against title, excerpt and content of published
	// articles, most viewed first.
	Search(ctx context.Context, term string, limit int) ([]domain.Article, error)

	// Featured returns the most viewed published articles.
	Featured(ctx context.Context, limit int) ([]domain.Article, error)

	// Categories returns the distinct categories of published articles.
	Categories(ctx context.Context) ([]string, error)

	// Related returns other published articles in the same category.
	Related(ctx context.Context, id uuid.UUID, category string, limit int) ([]domain.Article, error)

	// ExistsBySlug reports whether any article (published or not) uses slug.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Create inserts an article and returns the persisted record.
	Create(ctx context.Context, a domain.Article) (domain.Article, error)

	// FindDuplicateSlugs lists slugs carried by more than one row.
	FindDuplicateSlugs(ctx context.Context) ([]DuplicateSlug, error)

	// DeleteDuplicates removes every row with slug except keepID and returns
	// the number of rows removed.
	DeleteDuplicates(ctx context.Context, slug string, keepID uuid.UUID) (int64, error)
}

// pgArticleRepo is the Postgres implementation of ArticleRepo.
type pgArticleRepo struct {
	db db
}

// NewArticleRepo constructs an ArticleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewArticleRepo(db db) ArticleRepo {
	return &pgArticleRepo{db: db}
}

const articleColumns = `
	id, slug, title, COALESCE(subtitle, ''), COALESCE(category, ''), content,
	COALESCE(excerpt, ''), COALESCE(author, ''), COALESCE(featured_image_url, ''),
	COALESCE(destination_name, ''), tags, published, view_count,
	COALESCE(reading_time_minutes, 0), created_at, updated_at`

// List builds a single query where every unset filter collapses to TRUE.
// A zero limit means "no limit"; an offset without a limit is given the
// default window.
func (r *pgArticleRepo) List(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE (@category::text = '' OR category = @category)
		  AND (@destination::text = '' OR destination_name = @destination)
		  AND (@tag::text = '' OR tags @> ARRAY[@tag::text])
		  AND (@published::boolean IS NULL OR published = @published)
		ORDER BY created_at DESC
		LIMIT NULLIF(@limit::int, 0) OFFSET @offset`

	limit := f.Limit
	if f.Offset > 0 && limit == 0 {
		limit = domain.DefaultArticleWindow
	}

	args := pgx.NamedArgs{
		"category":    f.Category,
		"destination": f.Destination,
		"tag":         f.Tag,
		"published":   f.Published, // nil becomes NULL
		"limit":       limit,
		"offset":      f.Offset,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.List: %w", err)
	}
	articles, err := collect(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.List: scan: %w", err)
	}
	return articles, nil
}

func (r *pgArticleRepo) GetPublishedBySlug(ctx context.Context, slug string) (domain.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE slug = @slug AND published = true`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug})
	a, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, fmt.Errorf("repo.ArticleRepo.GetPublishedBySlug: %w", err)
	}
	return a, nil
}

func (r *pgArticleRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	const q = `SELECT increment_article_views(@id)`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.ArticleRepo.IncrementViews: %w", err)
	}
	return nil
}

func (r *pgArticleRepo) ReadViewCount(ctx context.Context, id uuid.UUID) (int, error) {
	const q = `SELECT view_count FROM articles WHERE id = @id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.ArticleRepo.ReadViewCount: %w", notFound(err))
	}
	return n, nil
}

func (r *pgArticleRepo) SetViewCount(ctx context.Context, id uuid.UUID, n int) error {
	const q = `UPDATE articles SET view_count = @n WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "n": n})
	if err != nil {
		return fmt.Errorf("repo.ArticleRepo.SetViewCount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ArticleRepo.SetViewCount: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgArticleRepo) Search(ctx context.Context, term string, limit int) ([]domain.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE published = true
		  AND (title ILIKE @pattern OR excerpt ILIKE @pattern OR content ILIKE @pattern)
		ORDER BY view_count DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"pattern": likePattern(term), "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Search: %w", err)
	}
	articles, err := collect(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Search: scan: %w", err)
	}
	return articles, nil
}

func (r *pgArticleRepo) Featured(ctx context.Context, limit int) ([]domain.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE published = true
		ORDER BY view_count DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Featured: %w", err)
	}
	articles, err := collect(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Featured: scan: %w", err)
	}
	return articles, nil
}

func (r *pgArticleRepo) Categories(ctx context.Context) ([]string, error) {
	const q = `
		SELECT DISTINCT category
		FROM articles
		WHERE published = true AND category IS NOT NULL AND category <> ''
		ORDER BY category`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Categories: %w", err)
	}
	cats, err := collect(rows, func(s scanner) (string, error) {
		var c string
		err := s.Scan(&c)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Categories: scan: %w", err)
	}
	return cats, nil
}

func (r *pgArticleRepo) Related(ctx context.Context, id uuid.UUID, category string, limit int) ([]domain.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE published = true AND category = @category AND id <> @id
		ORDER BY created_at DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": id, "category": category, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Related: %w", err)
	}
	articles, err := collect(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.Related: scan: %w", err)
	}
	return articles, nil
}

func (r *pgArticleRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = @slug)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.ArticleRepo.ExistsBySlug: %w", err)
	}
	return exists, nil
}

func (r *pgArticleRepo) Create(ctx context.Context, a domain.Article) (domain.Article, error) {
	const q = `
		INSERT INTO articles (
			slug, title, subtitle, category, content, excerpt, author,
			featured_image_url, destination_name, tags, published, reading_time_minutes
		)
		VALUES (
			@slug, @title, NULLIF(@subtitle, ''), NULLIF(@category, ''), @content,
			NULLIF(@excerpt, ''), NULLIF(@author, ''), NULLIF(@featured_image_url, ''),
			NULLIF(@destination_name, ''), @tags, @published, NULLIF(@reading_time_minutes::int, 0)
		)
		RETURNING ` + articleColumns

	args := pgx.NamedArgs{
		"slug":                 a.Slug,
		"title":                a.Title,
		"subtitle":             a.Subtitle,
		"category":             a.Category,
		"content":              a.Content,
		"excerpt":              a.Excerpt,
		"author":               a.Author,
		"featured_image_url":   a.FeaturedImageURL,
		"destination_name":     a.DestinationName,
		"tags":                 nonNil(a.Tags),
		"published":            a.Published,
		"reading_time_minutes": a.ReadingTimeMinutes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, fmt.Errorf("repo.ArticleRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgArticleRepo) FindDuplicateSlugs(ctx context.Context) ([]DuplicateSlug, error) {
	const q = `SELECT slug, latest_id FROM find_duplicate_slugs()`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.FindDuplicateSlugs: %w", err)
	}
	dups, err := collect(rows, func(s scanner) (DuplicateSlug, error) {
		var (
			d  DuplicateSlug
			id pgtype.UUID
		)
		if err := s.Scan(&d.Slug, &id); err != nil {
			return DuplicateSlug{}, err
		}
		d.LatestID = uuid.UUID(id.Bytes)
		return d, nil
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.FindDuplicateSlugs: scan: %w", err)
	}
	return dups, nil
}

func (r *pgArticleRepo) DeleteDuplicates(ctx context.Context, slug string, keepID uuid.UUID) (int64, error) {
	const q = `DELETE FROM articles WHERE slug = @slug AND id <> @keep_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"slug": slug, "keep_id": keepID})
	if err != nil {
		return 0, fmt.Errorf("repo.ArticleRepo.DeleteDuplicates: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanArticle maps a single database row (in articleColumns order) into a
// domain.Article.
func scanArticle(s scanner) (domain.Article, error) {
	var (
		a  domain.Article
		id pgtype.UUID
	)

	err := s.Scan(
		&id, &a.Slug, &a.Title, &a.Subtitle, &a.Category, &a.Content,
		&a.Excerpt, &a.Author, &a.FeaturedImageURL, &a.DestinationName,
		&a.Tags, &a.Published, &a.ViewCount, &a.ReadingTimeMinutes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Article{}, notFound(err)
	}

	a.ID = uuid.UUID(id.Bytes)
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a, nil
}

// likePattern wraps term for a substring ILIKE match, escaping the LIKE
// metacharacters it contains.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
