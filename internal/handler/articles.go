package handler

import (
	"net/http"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

// ListArticlesParams are the query parameters shared by GET /articles and
// GET /admin/articles.
type ListArticlesParams struct {
	Category    *string
	Destination *string
	Tag         *string
	Limit       *int
	Offset      *int
	Page        *int
}

// ListArticles handles GET /articles. Only published articles are listed.
// ?page= switches to page-based windows (limit defaults to 20);
// otherwise ?limit= and ?offset= are passed through. Limit is capped at
// domain.MaxPageLimit either way.
func (s *Server) ListArticles(w http.ResponseWriter, r *http.Request) {
	published := true
	s.listArticles(w, r, &published)
}

// AdminListArticles handles GET /admin/articles. ?published= filters on
// the flag; without it drafts and published articles are both listed.
func (s *Server) AdminListArticles(w http.ResponseWriter, r *http.Request) {
	var published *bool
	if err := bindQuery(r, param{"published", &published}); err != nil {
		badRequest(w, err)
		return
	}
	s.listArticles(w, r, published)
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request, published *bool) {
	var p ListArticlesParams
	if err := bindQuery(r,
		param{"category", &p.Category},
		param{"destination", &p.Destination},
		param{"tag", &p.Tag},
		param{"limit", &p.Limit},
		param{"offset", &p.Offset},
		param{"page", &p.Page},
	); err != nil {
		badRequest(w, err)
		return
	}

	f := domain.ArticleFilter{
		Category:    val(p.Category),
		Destination: val(p.Destination),
		Tag:         val(p.Tag),
		Published:   published,
		Limit:       min(max(val(p.Limit), 0), domain.MaxPageLimit),
		Offset:      max(val(p.Offset), 0),
	}

	var page *api.Pagination
	if p.Page != nil {
		pp := domain.NewPaginationParams(p.Page, p.Limit)
		f.Limit, f.Offset = pp.Limit, pp.Offset()
		page = &api.Pagination{Page: pp.Page, Limit: pp.Limit}
	}

	list, err := s.articles.List(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Article]{Data: mapSlice(list, articleToResponse), Pagination: page})
}

// GetArticle handles GET /articles/{slug}.
// A successful read schedules a view-count increment.
func (s *Server) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug, err := pathString(r, "slug")
	if err != nil {
		badRequest(w, err)
		return
	}
	a, err := s.articles.GetBySlug(r.Context(), slug)
	if err != nil {
		s.writeServiceError(w, r, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, articleToResponse(a))
}

// SearchArticles handles GET /articles/search?q=.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := queryParam(r, "q", &q); err != nil {
		badRequest(w, err)
		return
	}
	list, err := s.articles.Search(r.Context(), val(q))
	if err != nil {
		s.writeServiceError(w, r, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Article]{Data: mapSlice(list, articleToResponse)})
}

// FeaturedArticles handles GET /articles/featured?limit=.
func (s *Server) FeaturedArticles(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := queryParam(r, "limit", &limit); err != nil {
		badRequest(w, err)
		return
	}
	list, err := s.articles.Featured(r.Context(), val(limit))
	if err != nil {
		s.writeServiceError(w, r, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Article]{Data: mapSlice(list, articleToResponse)})
}

// ArticleCategories handles GET /articles/categories.
func (s *Server) ArticleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.articles.Categories(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, api.List[string]{Data: nonNil(cats)})
}

// RelatedArticles handles GET /articles/{slug}/related?limit=.
func (s *Server) RelatedArticles(w http.ResponseWriter, r *http.Request) {
	slug, err := pathString(r, "slug")
	if err != nil {
		badRequest(w, err)
		return
	}
	var limit *int
	if err := queryParam(r, "limit", &limit); err != nil {
		badRequest(w, err)
		return
	}
	list, err := s.articles.Related(r.Context(), slug, val(limit))
	if err != nil {
		s.writeServiceError(w, r, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Article]{Data: mapSlice(list, articleToResponse)})
}

func articleToResponse(a domain.Article) api.Article {
	return api.Article{
		ID:                 a.ID,
		Slug:               a.Slug,
		Title:              a.Title,
		Subtitle:           a.Subtitle,
		Category:           a.Category,
		Content:            a.Content,
		Excerpt:            a.Excerpt,
		Author:             a.Author,
		FeaturedImageURL:   a.FeaturedImageURL,
		DestinationName:    a.DestinationName,
		Tags:               nonNil(a.Tags),
		Published:          a.Published,
		ViewCount:          a.ViewCount,
		ReadingTimeMinutes: a.ReadingTimeMinutes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// mapSlice converts every element of in with f. The result is never nil so
// empty lists encode as [].
func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
