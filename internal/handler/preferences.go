package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
	"github.com/pkordes/european-living/internal/middleware"
	"github.com/pkordes/european-living/internal/repo"
)

// baseCookieMaxAge keeps the selected base for a year.
const baseCookieMaxAge = 365 * 24 * time.Hour

// ListBases handles GET /bases: every base a listing can serve.
func (s *Server) ListBases(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.List[api.Base]{Data: mapSlice(domain.KnownBases, baseToResponse)})
}

// GetBasePreference handles GET /preferences/base.
func (s *Server) GetBasePreference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.BasePreference{Base: domain.SelectedBase(r.Context())})
}

// PutBasePreference handles PUT /preferences/base. The base is remembered
// in a cookie; an empty base or "all" clears it.
func (s *Server) PutBasePreference(w http.ResponseWriter, r *http.Request) {
	var body api.BasePreference
	if err := decodeJSON(r, &body); err != nil {
		bodyError(w, err)
		return
	}

	cookie := &http.Cookie{
		Name:     middleware.BaseCookie,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	switch {
	case body.Base == "" || body.Base == repo.AllBases:
		body.Base = ""
		cookie.MaxAge = -1
	case domain.IsKnownBase(body.Base):
		cookie.Value = body.Base
		cookie.MaxAge = int(baseCookieMaxAge.Seconds())
	default:
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("unknown base: "+body.Base))
		return
	}

	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, body)
}
