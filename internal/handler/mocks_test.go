package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/european-living/internal/directory"
	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/geocode"
	"github.com/pkordes/european-living/internal/handler"
	"github.com/pkordes/european-living/internal/middleware"
	"github.com/pkordes/european-living/internal/service"
)

// ---- mock ArticleServicer ---------------------------------------------------

type mockArticleServicer struct {
	list       func(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, error)
	getBySlug  func(ctx context.Context, slug string) (domain.Article, error)
	search     func(ctx context.Context, term string) ([]domain.Article, error)
	featured   func(ctx context.Context, limit int) ([]domain.Article, error)
	categories func(ctx context.Context) ([]string, error)
	related    func(ctx context.Context, slug string, limit int) ([]domain.Article, error)
}

func (m *mockArticleServicer) List(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, error) {
	return m.list(ctx, f)
}

func (m *mockArticleServicer) GetBySlug(ctx context.Context, slug string) (domain.Article, error) {
	return m.getBySlug(ctx, slug)
}

func (m *mockArticleServicer) Search(ctx context.Context, term string) ([]domain.Article, error) {
	return m.search(ctx, term)
}

func (m *mockArticleServicer) Featured(ctx context.Context, limit int) ([]domain.Article, error) {
	return m.featured(ctx, limit)
}

func (m *mockArticleServicer) Categories(ctx context.Context) ([]string, error) {
	return m.categories(ctx)
}

func (m *mockArticleServicer) Related(ctx context.Context, slug string, limit int) ([]domain.Article, error) {
	return m.related(ctx, slug, limit)
}

// compile-time check: mockArticleServicer must satisfy handler.ArticleServicer.
var _ handler.ArticleServicer = (*mockArticleServicer)(nil)

// ---- mock BusinessServicer --------------------------------------------------

type mockBusinessServicer struct {
	list            func(ctx context.Context, q domain.BusinessQuery, f directory.Filter, opt directory.SortOption) ([]domain.Business, error)
	detail          func(ctx context.Context, id uuid.UUID) (service.BusinessDetail, error)
	submit          func(ctx context.Context, sub domain.BusinessSubmission) (domain.Business, error)
	create          func(ctx context.Context, b domain.Business) (domain.Business, error)
	update          func(ctx context.Context, id uuid.UUID, b domain.Business) (domain.Business, error)
	setStatus       func(ctx context.Context, id uuid.UUID, status string) (domain.Business, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	countByCategory func(ctx context.Context) ([]domain.CategoryCount, error)
	featured        func(ctx context.Context, limit int) ([]domain.Business, error)
	export          func(ctx context.Context) ([]domain.Business, error)
}

func (m *mockBusinessServicer) List(ctx context.Context, q domain.BusinessQuery, f directory.Filter, opt directory.SortOption) ([]domain.Business, error) {
	return m.list(ctx, q, f, opt)
}

func (m *mockBusinessServicer) Detail(ctx context.Context, id uuid.UUID) (service.BusinessDetail, error) {
	return m.detail(ctx, id)
}

func (m *mockBusinessServicer) Submit(ctx context.Context, sub domain.BusinessSubmission) (domain.Business, error) {
	return m.submit(ctx, sub)
}

func (m *mockBusinessServicer) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	return m.create(ctx, b)
}

func (m *mockBusinessServicer) Update(ctx context.Context, id uuid.UUID, b domain.Business) (domain.Business, error) {
	return m.update(ctx, id, b)
}

func (m *mockBusinessServicer) SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Business, error) {
	return m.setStatus(ctx, id, status)
}

func (m *mockBusinessServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

func (m *mockBusinessServicer) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	return m.countByCategory(ctx)
}

func (m *mockBusinessServicer) Featured(ctx context.Context, limit int) ([]domain.Business, error) {
	return m.featured(ctx, limit)
}

func (m *mockBusinessServicer) Export(ctx context.Context) ([]domain.Business, error) {
	return m.export(ctx)
}

// compile-time check: mockBusinessServicer must satisfy handler.BusinessServicer.
var _ handler.BusinessServicer = (*mockBusinessServicer)(nil)

// ---- mock ReviewServicer ----------------------------------------------------

type mockReviewServicer struct {
	create func(ctx context.Context, businessID uuid.UUID, rv domain.Review) (domain.Review, error)
	list   func(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error)
}

func (m *mockReviewServicer) Create(ctx context.Context, businessID uuid.UUID, rv domain.Review) (domain.Review, error) {
	return m.create(ctx, businessID, rv)
}

func (m *mockReviewServicer) List(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error) {
	return m.list(ctx, businessID)
}

// compile-time check: mockReviewServicer must satisfy handler.ReviewServicer.
var _ handler.ReviewServicer = (*mockReviewServicer)(nil)

// ---- mock DayTripServicer ---------------------------------------------------

type mockDayTripServicer struct {
	list        func(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.DayTrip, error)
	getBySlug   func(ctx context.Context, slug string) (domain.DayTrip, error)
	listBases   func(ctx context.Context) ([]domain.Base, error)
	toggleSaved func(ctx context.Context, userID, tripID uuid.UUID) (bool, error)
	isSaved     func(ctx context.Context, userID, tripID uuid.UUID) (bool, error)
	listSaved   func(ctx context.Context, userID uuid.UUID) ([]domain.DayTrip, error)
}

func (m *mockDayTripServicer) List(ctx context.Context, f domain.DayTripFilter) ([]domain.DayTrip, error) {
	return m.list(ctx, f)
}

func (m *mockDayTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.DayTrip, error) {
	return m.getByID(ctx, id)
}

func (m *mockDayTripServicer) GetBySlug(ctx context.Context, slug string) (domain.DayTrip, error) {
	return m.getBySlug(ctx, slug)
}

func (m *mockDayTripServicer) ListBases(ctx context.Context) ([]domain.Base, error) {
	return m.listBases(ctx)
}

func (m *mockDayTripServicer) ToggleSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error) {
	return m.toggleSaved(ctx, userID, tripID)
}

func (m *mockDayTripServicer) IsSaved(ctx context.Context, userID, tripID uuid.UUID) (bool, error) {
	return m.isSaved(ctx, userID, tripID)
}

func (m *mockDayTripServicer) ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.DayTrip, error) {
	return m.listSaved(ctx, userID)
}

// compile-time check: mockDayTripServicer must satisfy handler.DayTripServicer.
var _ handler.DayTripServicer = (*mockDayTripServicer)(nil)

// ---- mock TagServicer -------------------------------------------------------

type mockTagServicer struct {
	list func(ctx context.Context, prefix string) ([]string, error)
}

func (m *mockTagServicer) List(ctx context.Context, prefix string) ([]string, error) {
	return m.list(ctx, prefix)
}

// compile-time check: mockTagServicer must satisfy handler.TagServicer.
var _ handler.TagServicer = (*mockTagServicer)(nil)

// ---- mock PhraseServicer ----------------------------------------------------

type mockPhraseServicer struct {
	categories func(ctx context.Context) ([]domain.PhraseCategory, error)
	byCategory func(ctx context.Context, categoryID string) ([]domain.GroupedPhrase, error)
	search     func(ctx context.Context, q, lang string) ([]domain.GroupedPhrase, error)
	byEnglish  func(ctx context.Context, english string) (domain.GroupedPhrase, error)
}

func (m *mockPhraseServicer) Categories(ctx context.Context) ([]domain.PhraseCategory, error) {
	return m.categories(ctx)
}

func (m *mockPhraseServicer) ByCategory(ctx context.Context, categoryID string) ([]domain.GroupedPhrase, error) {
	return m.byCategory(ctx, categoryID)
}

func (m *mockPhraseServicer) Search(ctx context.Context, q, lang string) ([]domain.GroupedPhrase, error) {
	return m.search(ctx, q, lang)
}

func (m *mockPhraseServicer) ByEnglish(ctx context.Context, english string) (domain.GroupedPhrase, error) {
	return m.byEnglish(ctx, english)
}

// compile-time check: mockPhraseServicer must satisfy handler.PhraseServicer.
var _ handler.PhraseServicer = (*mockPhraseServicer)(nil)

// ---- mock Geocoder and Subscriber -------------------------------------------

type mockGeocoder struct {
	geocode func(ctx context.Context, address string) (geocode.Result, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (geocode.Result, error) {
	return m.geocode(ctx, address)
}

var _ handler.Geocoder = (*mockGeocoder)(nil)

type mockSubscriber struct {
	subscribe func(ctx context.Context, email, source string) error
}

func (m *mockSubscriber) Subscribe(ctx context.Context, email, source string) error {
	return m.subscribe(ctx, email, source)
}

var _ handler.Subscriber = (*mockSubscriber)(nil)

// ---- helpers ---------------------------------------------------------------

// testAdminSecret signs the admin tokens used by the handler tests.
var testAdminSecret = []byte("handler-test-secret")

// newHTTPHandler wires a Server with the given mocks behind the same
// selected-base middleware the API uses. Leave unused services nil.
func newHTTPHandler(svc handler.Services) http.Handler {
	srv := handler.NewServer(svc, nil)
	return middleware.SelectedBase(srv.Routes(handler.RouterOptions{AdminSecret: testAdminSecret}))
}

// adminToken returns a bearer header value accepted by the /admin routes.
func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := middleware.NewAdminToken(testAdminSecret, "test-admin", time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func ptr[T any](v T) *T { return &v }
