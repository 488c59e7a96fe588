package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
)

// PhraseService implements read access to the phrase reference.
type PhraseService struct {
	repo repo.PhraseRepo
}

// NewPhraseService constructs a PhraseService backed by the provided PhraseRepo.
func NewPhraseService(r repo.PhraseRepo) *PhraseService {
	return &PhraseService{repo: r}
}

// Categories returns all phrase categories ordered by sort_order.
func (s *PhraseService) Categories(ctx context.Context) ([]domain.PhraseCategory, error) {
	return s.repo.Categories(ctx)
}

// ByCategory returns the phrases of one category grouped by English text.
func (s *PhraseService) ByCategory(ctx context.Context, categoryID string) ([]domain.GroupedPhrase, error) {
	rows, err := s.repo.ByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return GroupPhrases(rows), nil
}

// Search matches q against English text and translations. A non-empty lang
// restricts the search to one language. A blank q returns no phrases.
func (s *PhraseService) Search(ctx context.Context, q, lang string) ([]domain.GroupedPhrase, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.GroupedPhrase{}, nil
	}
	rows, err := s.repo.Search(ctx, q, lang)
	if err != nil {
		return nil, err
	}
	return GroupPhrases(rows), nil
}

// ByEnglish returns every translation of one English phrase.
// Returns domain.ErrNotFound if the phrase has no translations.
func (s *PhraseService) ByEnglish(ctx context.Context, english string) (domain.GroupedPhrase, error) {
	rows, err := s.repo.ByEnglish(ctx, english)
	if err != nil {
		return domain.GroupedPhrase{}, err
	}
	grouped := GroupPhrases(rows)
	if len(grouped) == 0 {
		return domain.GroupedPhrase{}, fmt.Errorf("service.PhraseService.ByEnglish: %w", domain.ErrNotFound)
	}
	return grouped[0], nil
}

// GroupPhrases folds translation rows into one GroupedPhrase per English
// text, in order of first appearance. The icon and sort order come from the
// first row of each group.
func GroupPhrases(rows []domain.PhraseTranslation) []domain.GroupedPhrase {
	out := make([]domain.GroupedPhrase, 0)
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.English]
		if !ok {
			i = len(out)
			index[r.English] = i
			out = append(out, domain.GroupedPhrase{
				English:      r.English,
				Icon:         r.Icon,
				SortOrder:    r.SortOrder,
				Translations: map[string]domain.Translation{},
			})
		}
		out[i].Translations[r.LanguageCode] = domain.Translation{
			Text:          r.Translation,
			Pronunciation: r.Pronunciation,
		}
	}
	return out
}
