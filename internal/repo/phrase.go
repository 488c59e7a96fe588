package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/european-living/internal/domain"
)

// PhraseRepo defines the read operations for the phrase reference.
type PhraseRepo interface {
	// Categories returns all phrase categories ordered by sort_order.
	Categories(ctx context.Context) ([]domain.PhraseCategory, error)

	// ByCategory returns every translation row in a category ordered by
	// sort_order.
	ByCategory(ctx context.Context, categoryID string) ([]domain.PhraseTranslation, error)

	// Search matches q against the English text and the translation. A
	// non-empty lang restricts matches to one language code.
	Search(ctx context.Context, q, lang string) ([]domain.PhraseTranslation, error)

	// ByEnglish returns every translation of one exact English phrase.
	ByEnglish(ctx context.Context, english string) ([]domain.PhraseTranslation, error)
}

// pgPhraseRepo is the Postgres implementation of PhraseRepo.
type pgPhraseRepo struct {
	db db
}

// NewPhraseRepo constructs a PhraseRepo backed by the provided db connection.
func NewPhraseRepo(db db) PhraseRepo {
	return &pgPhraseRepo{db: db}
}

const phraseColumns = `
	id::text, category_id, english, language_code, translation,
	pronunciation, COALESCE(icon, ''), sort_order`

func (r *pgPhraseRepo) Categories(ctx context.Context) ([]domain.PhraseCategory, error) {
	const q = `
		SELECT id, name, icon, sort_order
		FROM phrase_categories
		ORDER BY sort_order ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PhraseRepo.Categories: %w", err)
	}
	cats, err := collect(rows, func(s scanner) (domain.PhraseCategory, error) {
		var c domain.PhraseCategory
		err := s.Scan(&c.ID, &c.Name, &c.Icon, &c.SortOrder)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.PhraseRepo.Categories: scan: %w", err)
	}
	return cats, nil
}

func (r *pgPhraseRepo) ByCategory(ctx context.Context, categoryID string) ([]domain.PhraseTranslation, error) {
	const q = `
		SELECT ` + phraseColumns + `
		FROM phrases
		WHERE category_id = @category_id
		ORDER BY sort_order ASC, language_code ASC`

	return r.query(ctx, "ByCategory", q, pgx.NamedArgs{"category_id": categoryID})
}

func (r *pgPhraseRepo) Search(ctx context.Context, q, lang string) ([]domain.PhraseTranslation, error) {
	const query = `
		SELECT ` + phraseColumns + `
		FROM phrases
		WHERE (english ILIKE @pattern OR translation ILIKE @pattern)
		  AND (@lang::text = '' OR language_code = @lang)
		ORDER BY category_id ASC, sort_order ASC`

	return r.query(ctx, "Search", query, pgx.NamedArgs{"pattern": likePattern(q), "lang": lang})
}

func (r *pgPhraseRepo) ByEnglish(ctx context.Context, english string) ([]domain.PhraseTranslation, error) {
	const q = `
		SELECT ` + phraseColumns + `
		FROM phrases
		WHERE english = @english
		ORDER BY language_code ASC`

	return r.query(ctx, "ByEnglish", q, pgx.NamedArgs{"english": english})
}

// query runs a phrase select and names the calling method in errors.
func (r *pgPhraseRepo) query(ctx context.Context, method, q string, args pgx.NamedArgs) ([]domain.PhraseTranslation, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PhraseRepo.%s: %w", method, err)
	}
	phrases, err := collect(rows, scanPhrase)
	if err != nil {
		return nil, fmt.Errorf("repo.PhraseRepo.%s: scan: %w", method, err)
	}
	return phrases, nil
}

// scanPhrase maps a single database row into a domain.PhraseTranslation.
func scanPhrase(s scanner) (domain.PhraseTranslation, error) {
	var p domain.PhraseTranslation
	err := s.Scan(&p.ID, &p.CategoryID, &p.English, &p.LanguageCode, &p.Translation,
		&p.Pronunciation, &p.Icon, &p.SortOrder)
	if err != nil {
		return domain.PhraseTranslation{}, notFound(err)
	}
	return p, nil
}
