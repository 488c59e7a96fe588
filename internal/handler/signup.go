package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/european-living/internal/handler/api"
)

// defaultSignupSource tags signups that do not name the form they came from.
const defaultSignupSource = "website"

// Signup handles POST /signup. The email format is checked while decoding
// (openapi_types.Email); an absent email is rejected here.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SignupRequest
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	if body.Email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("Please enter a valid email address"))
		return
	}
	source := strings.TrimSpace(body.Source)
	if source == "" {
		source = defaultSignupSource
	}
	if err := s.signup.Subscribe(r.Context(), string(body.Email), source); err != nil {
		s.writeServiceError(w, r, err, "signup")
		return
	}
	writeJSON(w, http.StatusAccepted, api.SignupResponse{Status: "subscribed"})
}
