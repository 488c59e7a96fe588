// Package handler implements the HTTP handlers for the European Living API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (articles.go, businesses.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/european-living/internal/directory"
	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/geocode"
	"github.com/pkordes/european-living/internal/middleware"
	"github.com/pkordes/european-living/internal/service"
)

// ArticleServicer defines the article operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ArticleServicer interface {
	List(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (domain.Article, error)
	Search(ctx context.Context, term string) ([]domain.Article, error)
	Featured(ctx context.Context, limit int) ([]domain.Article, error)
	Categories(ctx context.Context) ([]string, error)
	Related(ctx context.Context, slug string, limit int) ([]domain.Article, error)
}

// BusinessServicer defines the directory operations, public and admin.
type BusinessServicer interface {
	List(ctx context.Context, q domain.BusinessQuery, f directory.Filter, opt directory.SortOption) ([]domain.Business, error)
	Detail(ctx context.Context, id uuid.UUID) (service.BusinessDetail, error)
	Submit(ctx context.Context, sub domain.BusinessSubmission) (domain.Business, error)
	Create(ctx context.Context, b domain.Business) (domain.Business, error)
	Update(ctx context.Context, id uuid.UUID, b domain.Business) (domain.Business, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Business, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	Featured(ctx context.Context, limit int) ([]domain.Business, error)
	Export(ctx context.Context) ([]domain.Business, error)
}

// ReviewServicer defines the review operations.
type ReviewServicer interface {
	Create(ctx context.Context, businessID uuid.UUID, rv domain.Review) (domain.Review, error)
	List(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error)
}

// DayTripServicer defines the day trip and saved-trip operations.
type DayTripServicer interface {
	List(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.DayTrip, error)
	GetBySlug(ctx context.Context, slug string) (domain.DayTrip, error)
	ListBases(ctx context.Context) ([]domain.Base, error)
	ToggleSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error)
	IsSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.DayTrip, error)
}

// TagServicer defines the tag lookup used for autocomplete.
type TagServicer interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// PhraseServicer defines the phrase reference operations.
type PhraseServicer interface {
	Categories(ctx context.Context) ([]domain.PhraseCategory, error)
	ByCategory(ctx context.Context, categoryID string) ([]domain.GroupedPhrase, error)
	Search(ctx context.Context, q, lang string) ([]domain.GroupedPhrase, error)
	ByEnglish(ctx context.Context, english string) (domain.GroupedPhrase, error)
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Result, error)
}

// Subscriber relays an email signup to the form relay.
type Subscriber interface {
	Subscribe(ctx context.Context, email, source string) error
}

// Services bundles the Server's dependencies. Nil entries are allowed in
// tests that only exercise some routes.
type Services struct {
	Articles   ArticleServicer
	Businesses BusinessServicer
	Reviews    ReviewServicer
	DayTrips   DayTripServicer
	Tags       TagServicer
	Phrases    PhraseServicer
	Geocoder   Geocoder
	Signup     Subscriber
}

// Server holds the services every handler method operates on.
type Server struct {
	articles   ArticleServicer
	businesses BusinessServicer
	reviews    ReviewServicer
	dayTrips   DayTripServicer
	tags       TagServicer
	phrases    PhraseServicer
	geocoder   Geocoder
	signup     Subscriber
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger discards output.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		articles:   svc.Articles,
		businesses: svc.Businesses,
		reviews:    svc.Reviews,
		dayTrips:   svc.DayTrips,
		tags:       svc.Tags,
		phrases:    svc.Phrases,
		geocoder:   svc.Geocoder,
		signup:     svc.Signup,
		log:        log,
	}
}

// RouterOptions configures the optional parts of the route table.
type RouterOptions struct {
	// AdminSecret signs admin bearer tokens. When empty the /admin routes
	// are not mounted.
	AdminSecret []byte

	// WriteLimiter throttles public write endpoints (submissions, reviews,
	// signups). Nil means unlimited.
	WriteLimiter func(http.Handler) http.Handler
}

// Routes returns the API route table. Global middleware (request id,
// logging, CORS, body limits, selected base) is applied by the caller.
func (s *Server) Routes(opts RouterOptions) http.Handler {
	limited := opts.WriteLimiter
	if limited == nil {
		limited = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", s.ListArticles)
		r.With(middleware.EchoRequestSeq).Get("/search", s.SearchArticles)
		r.Get("/featured", s.FeaturedArticles)
		r.Get("/categories", s.ArticleCategories)
		r.Get("/{slug}", s.GetArticle)
		r.Get("/{slug}/related", s.RelatedArticles)
	})

	r.Route("/businesses", func(r chi.Router) {
		r.With(middleware.EchoRequestSeq).Get("/", s.ListBusinesses)
		r.Get("/featured", s.FeaturedBusinesses)
		r.Get("/categories", s.BusinessCategories)
		r.With(limited).Post("/submit", s.SubmitBusiness)
		r.Get("/{id}", s.GetBusiness)
		r.Get("/{id}/reviews", s.ListReviews)
		r.With(limited).Post("/{id}/reviews", s.CreateReview)
	})

	r.Route("/day-trips", func(r chi.Router) {
		r.With(middleware.EchoRequestSeq).Get("/", s.ListDayTrips)
		r.Get("/bases", s.ListDayTripBases)
		r.Get("/tags", s.ListTags)
		r.Get("/saved", s.ListSavedDayTrips)
		r.Get("/{id}", s.GetDayTrip)
		r.Get("/{id}/saved", s.GetSavedState)
		r.Post("/{id}/saved/toggle", s.ToggleSaved)
	})

	r.Route("/phrases", func(r chi.Router) {
		r.Get("/categories", s.ListPhraseCategories)
		r.Get("/categories/{id}", s.ListPhrasesByCategory)
		r.Get("/languages", s.ListLanguages)
		r.With(middleware.EchoRequestSeq).Get("/search", s.SearchPhrases)
		r.Get("/lookup", s.LookupPhrase)
	})

	r.Get("/bases", s.ListBases)
	r.Get("/preferences/base", s.GetBasePreference)
	r.Put("/preferences/base", s.PutBasePreference)
	r.With(limited).Post("/signup", s.Signup)

	if len(opts.AdminSecret) > 0 {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NewAdminAuth(opts.AdminSecret))
			r.Get("/articles", s.AdminListArticles)
			r.Get("/businesses", s.AdminListBusinesses)
			r.Post("/businesses", s.AdminCreateBusiness)
			r.Put("/businesses/{id}", s.AdminUpdateBusiness)
			r.Patch("/businesses/{id}/status", s.AdminSetStatus)
			r.Delete("/businesses/{id}", s.AdminDeleteBusiness)
			r.Get("/export", s.GetExport)
			r.Post("/geocode", s.Geocode)
		})
	}

	return r
}
