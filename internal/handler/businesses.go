package handler

import (
	"net/http"

	"github.com/pkordes/european-living/internal/directory"
	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

// ListBusinessesParams are the query parameters of GET /businesses.
type ListBusinessesParams struct {
	Category         *string
	Subcategory      *string
	Base             *string
	City             *string
	Fluency          *string
	MilitaryDiscount *bool
	SOFAFamiliar     *bool
	Price            *[]string
	MinRating        *float64
	Search           *string
	Sort             *string
}

// ListBusinesses handles GET /businesses.
// Category, subcategory and base narrow the store query (active listings
// only); the remaining parameters are applied in memory by the directory
// filter and sort. Without ?base= the caller's selected base is used.
func (s *Server) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	var p ListBusinessesParams
	if err := bindQuery(r,
		param{"category", &p.Category},
		param{"subcategory", &p.Subcategory},
		param{"base", &p.Base},
		param{"city", &p.City},
		param{"fluency", &p.Fluency},
		param{"military_discount", &p.MilitaryDiscount},
		param{"sofa_familiar", &p.SOFAFamiliar},
		param{"price", &p.Price},
		param{"min_rating", &p.MinRating},
		param{"search", &p.Search},
		param{"sort", &p.Sort},
	); err != nil {
		badRequest(w, err)
		return
	}

	q := domain.BusinessQuery{
		Category:    val(p.Category),
		Subcategory: val(p.Subcategory),
		BaseID:      val(p.Base),
	}
	f := directory.Filter{
		City:             val(p.City),
		EnglishFluency:   domain.EnglishFluency(val(p.Fluency)),
		MilitaryDiscount: val(p.MilitaryDiscount),
		SOFAFamiliar:     val(p.SOFAFamiliar),
		MinRating:        val(p.MinRating),
		Search:           val(p.Search),
	}
	for _, pr := range val(p.Price) {
		f.PriceRanges = append(f.PriceRanges, domain.PriceRange(pr))
	}

	list, err := s.businesses.List(r.Context(), q, f, directory.SortOption(val(p.Sort)))
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Business]{Data: mapSlice(list, businessToResponse)})
}

// GetBusiness handles GET /businesses/{id}. The listing and its reviews are
// returned together.
func (s *Server) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	d, err := s.businesses.Detail(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusOK, api.BusinessDetail{
		Business: businessToResponse(d.Business),
		Reviews:  mapSlice(d.Reviews, reviewToResponse),
	})
}

// FeaturedBusinesses handles GET /businesses/featured?limit=.
func (s *Server) FeaturedBusinesses(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := queryParam(r, "limit", &limit); err != nil {
		badRequest(w, err)
		return
	}
	list, err := s.businesses.Featured(r.Context(), val(limit))
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Business]{Data: mapSlice(list, businessToResponse)})
}

// BusinessCategories handles GET /businesses/categories.
func (s *Server) BusinessCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := s.businesses.CountByCategory(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.CategoryCount]{Data: mapSlice(counts, func(c domain.CategoryCount) api.CategoryCount {
		return api.CategoryCount{Category: c.Category, Count: c.Count}
	})})
}

// SubmitBusiness handles POST /businesses/submit.
// The listing is stored as pending until an admin activates it.
func (s *Server) SubmitBusiness(w http.ResponseWriter, r *http.Request) {
	var body api.BusinessSubmission
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	b, err := s.businesses.Submit(r.Context(), submissionFromRequest(body))
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusCreated, businessToResponse(b))
}

func submissionFromRequest(b api.BusinessSubmission) domain.BusinessSubmission {
	return domain.BusinessSubmission{
		BusinessName:     b.BusinessName,
		Category:         b.Category,
		Subcategory:      b.Subcategory,
		Description:      b.Description,
		Address:          b.Address,
		City:             b.City,
		PostalCode:       b.PostalCode,
		NearbyBases:      b.NearbyBases,
		Phone:            b.Phone,
		Email:            b.Email,
		Website:          b.Website,
		PriceRange:       b.PriceRange,
		EnglishFluency:   b.EnglishFluency,
		OtherLanguages:   b.OtherLanguages,
		SOFAFamiliar:     b.SOFAFamiliar,
		MilitaryDiscount: b.MilitaryDiscount,
		DiscountPercent:  b.DiscountPercent,
		OnBaseAccess:     b.OnBaseAccess,
		DeliveryToBase:   b.DeliveryToBase,
		Hours:            b.Hours,
		AdditionalNotes:  b.AdditionalNotes,
	}
}

func businessFromRequest(b api.BusinessInput) domain.Business {
	return domain.Business{
		Name:             b.Name,
		Category:         b.Category,
		Subcategory:      b.Subcategory,
		Description:      b.Description,
		Location:         b.Location,
		Address:          b.Address,
		City:             b.City,
		Phone:            b.Phone,
		Email:            b.Email,
		Website:          b.Website,
		EnglishFluency:   domain.EnglishFluency(b.EnglishFluency),
		Verified:         b.Verified,
		Featured:         b.Featured,
		FeaturedTier:     domain.FeaturedTier(b.FeaturedTier),
		BasesServed:      b.BasesServed,
		Status:           domain.BusinessStatus(b.Status),
		Rating:           b.Rating,
		PriceRange:       domain.PriceRange(b.PriceRange),
		MilitaryDiscount: b.MilitaryDiscount,
		SOFAFamiliar:     b.SOFAFamiliar,
		Specialties:      b.Specialties,
		Tags:             b.Tags,
		Latitude:         b.Latitude,
		Longitude:        b.Longitude,
		GoogleMapsURL:    b.GoogleMapsURL,
		ImageURL:         b.ImageURL,
		Notes:            b.Notes,
	}
}

func businessToResponse(b domain.Business) api.Business {
	return api.Business{
		ID:               b.ID,
		Name:             b.Name,
		Category:         b.Category,
		Subcategory:      b.Subcategory,
		Description:      b.Description,
		Location:         b.Location,
		Address:          b.Address,
		City:             b.City,
		Phone:            b.Phone,
		Email:            b.Email,
		Website:          b.Website,
		EnglishFluency:   string(b.EnglishFluency),
		Verified:         b.Verified,
		Featured:         b.Featured,
		FeaturedTier:     string(b.FeaturedTier),
		BasesServed:      nonNil(b.BasesServed),
		Status:           string(b.Status),
		Rating:           b.Rating,
		PriceRange:       string(b.PriceRange),
		MilitaryDiscount: b.MilitaryDiscount,
		SOFAFamiliar:     b.SOFAFamiliar,
		Specialties:      nonNil(b.Specialties),
		Tags:             nonNil(b.Tags),
		Latitude:         b.Latitude,
		Longitude:        b.Longitude,
		GoogleMapsURL:    b.GoogleMapsURL,
		ImageURL:         b.ImageURL,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
