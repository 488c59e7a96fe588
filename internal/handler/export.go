package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "name", "category", "subcategory", "status", "location", "city",
	"address", "phone", "email", "website", "english_fluency", "verified",
	"featured", "featured_tier", "bases_served", "rating", "price_range",
	"military_discount", "sofa_familiar", "latitude", "longitude",
	"google_maps_url", "notes", "created_at",
}

// GetExport handles GET /admin/export.
// It returns every listing regardless of status.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		badRequest(w, err)
		return
	}
	if f := val(format); f != "" && f != "json" && f != "csv" {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "format must be json or csv"))
		return
	}

	list, err := s.businesses.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "business")
		return
	}

	if val(format) == "csv" {
		body := buildCSV(list)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="businesses.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		body.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Business]{Data: mapSlice(list, businessToResponse)})
}

// buildCSV encodes listings as CSV.
// Served bases within a row are pipe-separated ("|") to keep each listing on
// a single CSV line.
func buildCSV(list []domain.Business) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, b := range list {
		//nolint:errcheck
		w.Write(businessToCSVRecord(b))
	}
	w.Flush()
	return &buf
}

// businessToCSVRecord encodes a listing as a flat string slice.
// Missing coordinates are encoded as empty strings.
func businessToCSVRecord(b domain.Business) []string {
	return []string{
		b.ID.String(),
		b.Name,
		b.Category,
		b.Subcategory,
		string(b.Status),
		b.Location,
		b.City,
		b.Address,
		b.Phone,
		b.Email,
		b.Website,
		string(b.EnglishFluency),
		strconv.FormatBool(b.Verified),
		strconv.FormatBool(b.Featured),
		string(b.FeaturedTier),
		strings.Join(b.BasesServed, "|"),
		strconv.FormatFloat(b.Rating, 'f', 1, 64),
		string(b.PriceRange),
		strconv.FormatBool(b.MilitaryDiscount),
		strconv.FormatBool(b.SOFAFamiliar),
		formatOptionalFloat(b.Latitude),
		formatOptionalFloat(b.Longitude),
		b.GoogleMapsURL,
		b.Notes,
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// formatOptionalFloat returns f in shortest form, or "" if f is nil.
func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
