package handler

import (
	"net/http"

	"github.com/pkordes/european-living/internal/handler/api"
)

// ListTags handles GET /day-trips/tags.
// Optional ?q= filters to tags whose name starts with the given prefix
// (case-insensitive). Used for autocomplete and the tag filter chips.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := queryParam(r, "q", &q); err != nil {
		badRequest(w, err)
		return
	}
	names, err := s.tags.List(r.Context(), val(q))
	if err != nil {
		s.writeServiceError(w, r, err, "tag")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Tag]{Data: mapSlice(names, func(n string) api.Tag {
		return api.Tag{Name: n}
	})})
}
