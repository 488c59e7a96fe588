package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/european-living/internal/middleware"
)

// pathUUID binds a required UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return id, nil
}

// pathString binds a required string path parameter.
func pathString(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return v, nil
}

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer (e.g. **int, **[]string). *dest stays nil
// when the parameter is absent.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

// param names a query parameter and the destination it binds into.
type param struct {
	name string
	dest any
}

// bindQuery binds each param with queryParam, stopping at the first failure.
func bindQuery(r *http.Request, params ...param) error {
	for _, p := range params {
		if err := queryParam(r, p.name, p.dest); err != nil {
			return err
		}
	}
	return nil
}

// val returns *p, or the zero value when p is nil.
func val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// userID reads the caller's id from the X-User-ID header.
func userID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(middleware.UserIDHeader)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s header is required", middleware.UserIDHeader)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s header must be a UUID", middleware.UserIDHeader)
	}
	return id, nil
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
