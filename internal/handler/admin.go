package handler

import (
	"net/http"

	"github.com/pkordes/european-living/internal/handler/api"
)

// AdminListBusinesses handles GET /admin/businesses: every listing,
// whatever its status.
func (s *Server) AdminListBusinesses(w http.ResponseWriter, r *http.Request) {
	list, err := s.businesses.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Business]{Data: mapSlice(list, businessToResponse)})
}

// AdminCreateBusiness handles POST /admin/businesses.
func (s *Server) AdminCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var body api.BusinessInput
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	b, err := s.businesses.Create(r.Context(), businessFromRequest(body))
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	s.log.InfoContext(r.Context(), "business created", "business_id", b.ID, "status", b.Status)
	writeJSON(w, http.StatusCreated, businessToResponse(b))
}

// AdminUpdateBusiness handles PUT /admin/businesses/{id}.
func (s *Server) AdminUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	var body api.BusinessInput
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	b, err := s.businesses.Update(r.Context(), id, businessFromRequest(body))
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	writeJSON(w, http.StatusOK, businessToResponse(b))
}

// AdminSetStatus handles PATCH /admin/businesses/{id}/status.
// Any status may follow any other.
func (s *Server) AdminSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	var body api.StatusUpdate
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	b, err := s.businesses.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	s.log.InfoContext(r.Context(), "business status changed", "business_id", id, "status", b.Status)
	writeJSON(w, http.StatusOK, businessToResponse(b))
}

// AdminDeleteBusiness handles DELETE /admin/businesses/{id}.
func (s *Server) AdminDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	if err := s.businesses.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}
	s.log.InfoContext(r.Context(), "business deleted", "business_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Geocode handles POST /admin/geocode. Lookups are not retried; a failed
// lookup is reported to the caller.
func (s *Server) Geocode(w http.ResponseWriter, r *http.Request) {
	var body api.GeocodeRequest
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	res, err := s.geocoder.Geocode(r.Context(), body.Address)
	if err != nil {
		s.writeServiceError(w, r, err, "address")
		return
	}
	writeJSON(w, http.StatusOK, api.GeocodeResult{
		Latitude:      res.Latitude,
		Longitude:     res.Longitude,
		GoogleMapsURL: res.GoogleMapsURL,
	})
}
