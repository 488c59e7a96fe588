package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed website URL).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMalformedRow is returned by repo functions when a stored row carries a
// value outside its enumerated domain (e.g. an unknown business status).
var ErrMalformedRow = errors.New("malformed row")

// ErrUpstream is returned when a third-party HTTP service (geocoder, form
// relay, object storage) answers with a failure.
// Handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream service error")
