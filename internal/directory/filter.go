// Package directory holds the pure, in-memory filter and sort used by the
// business directory. Nothing here touches the database; the handler fetches
// a list from the store and then narrows and orders it with these functions.
package directory

import (
	"slices"
	"strings"

	"github.com/pkordes/european-living/internal/domain"
)

// Filter is the client-facing filter over a business list.
// Zero values disable a predicate. Set predicates combine with AND.
type Filter struct {
	Category         string
	Subcategory      string
	City             string
	NearbyBase       string
	EnglishFluency   domain.EnglishFluency
	MilitaryDiscount bool
	SOFAFamiliar     bool
	PriceRanges      []domain.PriceRange
	MinRating        float64
	Search           string
}

// Apply returns the businesses in list that satisfy every set predicate of f,
// preserving input order. The input slice is not modified.
func Apply(list []domain.Business, f Filter) []domain.Business {
	query := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.Business, 0, len(list))
	for _, b := range list {
		if f.matches(b, query) {
			out = append(out, b)
		}
	}
	return out
}

func (f Filter) matches(b domain.Business, query string) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && b.Subcategory != f.Subcategory {
		return false
	}
	if f.City != "" && !strings.EqualFold(b.City, f.City) {
		return false
	}
	if f.NearbyBase != "" && !b.ServesBase(f.NearbyBase) {
		return false
	}
	if f.EnglishFluency != "" && b.EnglishFluency != f.EnglishFluency {
		return false
	}
	if f.MilitaryDiscount && !b.MilitaryDiscount {
		return false
	}
	if f.SOFAFamiliar && !b.SOFAFamiliar {
		return false
	}
	// Listings without a recognised price range are never excluded by price.
	if len(f.PriceRanges) > 0 && b.PriceRange.Rank() > 0 && !slices.Contains(f.PriceRanges, b.PriceRange) {
		return false
	}
	if f.MinRating > 0 && b.Rating < f.MinRating {
		return false
	}
	if query != "" && !strings.Contains(searchableText(b), query) {
		return false
	}
	return true
}

// searchableText joins the free-text fields of b, lower-cased.
func searchableText(b domain.Business) string {
	parts := make([]string, 0, 4+len(b.Specialties)+len(b.Tags))
	for _, s := range []string{b.Name, b.Description, b.City, b.Subcategory} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, b.Specialties...)
	parts = append(parts, b.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
