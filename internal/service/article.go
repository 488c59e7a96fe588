// Package service contains the business logic for the European Living API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/european-living/internal/cache"
	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
)

const (
	defaultFeaturedArticles = 5
	defaultRelatedArticles  = 3
	searchArticleLimit      = 20

	categoriesCacheKey = "articles:categories"
	categoriesCacheTTL = 10 * time.Minute

	// viewCountTimeout bounds a background view-count update.
	viewCountTimeout = 5 * time.Second
)

// ArticleService implements read access to articles and the best-effort
// view counter.
type ArticleService struct {
	repo  repo.ArticleRepo
	cache cache.Store
	log   *slog.Logger

	views sync.WaitGroup
}

// NewArticleService constructs an ArticleService. A nil store disables
// caching and a nil logger discards log output.
func NewArticleService(r repo.ArticleRepo, store cache.Store, log *slog.Logger) *ArticleService {
	if store == nil {
		store = cache.Noop{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ArticleService{repo: r, cache: store, log: log}
}

// List returns articles matching f, newest first.
func (s *ArticleService) List(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, error) {
	if f.Limit < 0 || f.Offset < 0 {
		return nil, fmt.Errorf("service.ArticleService.List: %w: limit and offset must not be negative", domain.ErrValidation)
	}
	return s.repo.List(ctx, f)
}

// GetBySlug returns a published article and schedules a view-count increment.
// Returns domain.ErrNotFound when no published article has that slug.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (domain.Article, error) {
	a, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return domain.Article{}, err
	}
	s.recordView(ctx, a.ID)
	return a, nil
}

// FindBySlug is GetBySlug with "not found" reported as a nil article and a
// nil error. Any other failure is returned.
func (s *ArticleService) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	a, err := s.GetBySlug(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// recordView bumps the view counter in the background. The update outlives
// the request (it runs on a detached context with its own deadline) and its
// failures are only logged.
func (s *ArticleService) recordView(ctx context.Context, id uuid.UUID) {
	s.views.Add(1)
	go func() {
		defer s.views.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), viewCountTimeout)
		defer cancel()

		err := s.repo.IncrementViews(ctx, id)
		if err == nil {
			return
		}
		s.log.WarnContext(ctx, "view counter function failed, falling back to read-then-write",
			"article_id", id, "error", err)

		// Not atomic: concurrent readers can lose an update here.
		n, err := s.repo.ReadViewCount(ctx, id)
		if err != nil {
			s.log.WarnContext(ctx, "read view count", "article_id", id, "error", err)
			return
		}
		if err := s.repo.SetViewCount(ctx, id, n+1); err != nil {
			s.log.WarnContext(ctx, "set view count", "article_id", id, "error", err)
		}
	}()
}

// Wait blocks until every scheduled view-count update has finished.
// Call it during shutdown after the HTTP server has stopped.
func (s *ArticleService) Wait() {
	s.views.Wait()
}

// Search returns up to 20 published articles whose title, excerpt, or content
// contains term, most viewed first. A blank term returns no articles.
func (s *ArticleService) Search(ctx context.Context, term string) ([]domain.Article, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.Article{}, nil
	}
	return s.repo.Search(ctx, term, searchArticleLimit)
}

// Featured returns the most viewed published articles. limit <= 0 means 5.
func (s *ArticleService) Featured(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = defaultFeaturedArticles
	}
	return s.repo.Featured(ctx, limit)
}

// Categories returns the distinct categories of published articles.
// The list changes rarely, so it is cached for a few minutes.
func (s *ArticleService) Categories(ctx context.Context) ([]string, error) {
	if cats, ok, err := cache.GetJSON[[]string](ctx, s.cache, categoriesCacheKey); err == nil && ok {
		return cats, nil
	} else if err != nil {
		s.log.WarnContext(ctx, "categories cache read", "error", err)
	}

	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, categoriesCacheKey, cats, categoriesCacheTTL); err != nil {
		s.log.WarnContext(ctx, "categories cache write", "error", err)
	}
	return cats, nil
}

// Related returns other published articles in the same category as the
// published article with the given slug. limit <= 0 means 3.
func (s *ArticleService) Related(ctx context.Context, slug string, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = defaultRelatedArticles
	}
	a, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a.Category == "" {
		return []domain.Article{}, nil
	}
	return s.repo.Related(ctx, a.ID, a.Category, limit)
}
