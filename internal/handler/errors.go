package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}

func errorBody(code, message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "article not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) api.ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) api.ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) api.ErrorResponse {
	return errorBody("validation_error", message)
}

// badRequest writes a 400 for an unparseable path or query parameter.
func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody("bad_request", err.Error()))
}

// bodyError writes the response for a request body that failed to decode:
// 413 when it was cut off by the body size limit, 422 otherwise.
func bodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body too large"))
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body: "+err.Error()))
}

// writeServiceError maps a service error onto the HTTP response:
// ErrNotFound → 404, ErrValidation → 422, ErrUpstream → 502, anything
// else → 500. what names the looked-up resource for 404 messages.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(what+" not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrUpstream):
		s.log.WarnContext(r.Context(), "upstream failure", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody("upstream_error", "an upstream service failed, please try again later"))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.ReviewService.Create: validation error: Please enter your name"
// → "Please enter your name"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
