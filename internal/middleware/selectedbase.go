package middleware

import (
	"net/http"

	"github.com/pkordes/european-living/internal/domain"
)

// BaseCookie holds the caller's selected military base.
const BaseCookie = "el_base"

// SelectedBase copies a known base from the el_base cookie into the request
// context, where list endpoints read it when no base is given explicitly.
// Unknown values are ignored.
func SelectedBase(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(BaseCookie); err == nil && domain.IsKnownBase(c.Value) {
			r = r.WithContext(domain.WithSelectedBase(r.Context(), c.Value))
		}
		next.ServeHTTP(w, r)
	})
}
