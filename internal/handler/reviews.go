package handler

import (
	"net/http"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

// ListReviews handles GET /businesses/{id}/reviews, newest first.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	list, err := s.reviews.List(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Review]{Data: mapSlice(list, reviewToResponse)})
}

// CreateReview handles POST /businesses/{id}/reviews.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	var body api.ReviewInput
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	rv, err := s.reviews.Create(r.Context(), id, domain.Review{
		AuthorName: body.AuthorName,
		Rating:     body.Rating,
		Comment:    body.Comment,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusCreated, reviewToResponse(rv))
}

func reviewToResponse(rv domain.Review) api.Review {
	return api.Review{
		ID:         rv.ID,
		BusinessID: rv.BusinessID,
		AuthorName: rv.AuthorName,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		CreatedAt:  rv.CreatedAt,
	}
}
