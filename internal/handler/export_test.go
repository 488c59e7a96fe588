package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

func exportServicer(list []domain.Business, err error) *mockBusinessServicer {
	return &mockBusinessServicer{
		export: func(_ context.Context) ([]domain.Business, error) {
			return list, err
		},
	}
}

// ---- GET /admin/export (JSON) ----------------------------------------------

func TestGetExport_DefaultJSON_EmptyResult(t *testing.T) {
	rec := httptest.NewRecorder()
	newBusinessHTTPHandler(exportServicer(nil, nil)).ServeHTTP(rec, newAdminRequest(t, http.MethodGet, "/admin/export", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body api.List[api.Business]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Empty(t, body.Data)
}

func TestGetExport_FormatJSON_ExplicitParam(t *testing.T) {
	b := businessFixture()
	rec := httptest.NewRecorder()
	newBusinessHTTPHandler(exportServicer([]domain.Business{b}, nil)).
		ServeHTTP(rec, newAdminRequest(t, http.MethodGet, "/admin/export?format=json", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.List[api.Business]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, b.ID, body.Data[0].ID)
}

func TestGetExport_400_UnknownFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	newBusinessHTTPHandler(exportServicer(nil, nil)).ServeHTTP(rec, newAdminRequest(t, http.MethodGet, "/admin/export?format=xml", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /admin/export (CSV) -----------------------------------------------

func TestGetExport_CSV_EmptyResult_HasHeaderRow(t *testing.T) {
	rec := httptest.NewRecorder()
	newBusinessHTTPHandler(exportServicer(nil, nil)).ServeHTTP(rec, newAdminRequest(t, http.MethodGet, "/admin/export?format=csv", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "businesses.csv")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "id,name,category,"), "CSV should start with header row, got: %q", body)
}

func TestGetExport_CSV_OneRow(t *testing.T) {
	b := businessFixture()
	b.BasesServed = []string{"stuttgart", "ramstein"}
	b.Longitude = nil

	rec := httptest.NewRecorder()
	newBusinessHTTPHandler(exportServicer([]domain.Business{b}, nil)).
		ServeHTTP(rec, newAdminRequest(t, http.MethodGet, "/admin/export?format=csv", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// Header + 1 data row.
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], b.Name)
	assert.Contains(t, lines[1], "stuttgart|ramstein")
	assert.Contains(t, lines[1], ",4.5,")
	assert.Contains(t, lines[1], ",48.68,,")
	assert.Contains(t, lines[1], "2024-05-01T12:00:00Z")
}

func TestGetExport_ServiceError_Returns500(t *testing.T) {
	rec := httptest.NewRecorder()
	newBusinessHTTPHandler(exportServicer(nil, fmt.Errorf("database unavailable"))).
		ServeHTTP(rec, newAdminRequest(t, http.MethodGet, "/admin/export", ""))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
