package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type adminSubjectKey struct{}

// AdminSubject returns the subject of the admin token that authorized the
// request, or "".
func AdminSubject(ctx context.Context) string {
	v, _ := ctx.Value(adminSubjectKey{}).(string)
	return v
}

// NewAdminAuth returns a middleware that requires an HS256 bearer token
// signed with secret and carrying the "admin" role claim.
func NewAdminAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			sub, err := parseAdminToken(raw, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), adminSubjectKey{}, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func parseAdminToken(raw string, secret []byte) (string, error) {
	var claims adminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.Role != "admin" {
		return "", errors.New("token lacks admin role")
	}
	return claims.Subject, nil
}

// NewAdminToken signs an admin token for subject valid for ttl.
func NewAdminToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString(secret)
}
