package directory

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pkordes/european-living/internal/domain"
)

// SortOption names one of the directory orderings.
type SortOption string

const (
	SortRatingDesc SortOption = "rating-desc"
	SortRatingAsc  SortOption = "rating-asc"
	SortPriceAsc   SortOption = "price-asc"
	SortPriceDesc  SortOption = "price-desc"
	SortNameAsc    SortOption = "name-asc"
	SortNameDesc   SortOption = "name-desc"
	SortNewest     SortOption = "newest"
	SortFeatured   SortOption = "featured"
)

// Valid reports whether o is a known sort option.
func (o SortOption) Valid() bool {
	switch o {
	case SortRatingDesc, SortRatingAsc, SortPriceAsc, SortPriceDesc,
		SortNameAsc, SortNameDesc, SortNewest, SortFeatured:
		return true
	}
	return false
}

// Sort returns a reordered copy of list. The sort is stable, so elements that
// compare equal keep their input order. An unknown option returns an
// unchanged copy.
func Sort(list []domain.Business, opt SortOption) []domain.Business {
	out := slices.Clone(list)
	if out == nil {
		out = []domain.Business{}
	}

	switch opt {
	case SortRatingDesc:
		slices.SortStableFunc(out, func(a, b domain.Business) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortRatingAsc:
		slices.SortStableFunc(out, func(a, b domain.Business) int { return cmp.Compare(a.Rating, b.Rating) })
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Business) int { return comparePrice(a, b, false) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Business) int { return comparePrice(a, b, true) })
	case SortNameAsc, SortNameDesc:
		// collate.Collator keeps internal buffers and is not safe for
		// concurrent use, so each call builds its own.
		c := collate.New(language.English, collate.IgnoreCase)
		if opt == SortNameAsc {
			slices.SortStableFunc(out, func(a, b domain.Business) int { return c.CompareString(a.Name, b.Name) })
		} else {
			slices.SortStableFunc(out, func(a, b domain.Business) int { return c.CompareString(b.Name, a.Name) })
		}
	case SortNewest:
		slices.SortStableFunc(out, func(a, b domain.Business) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case SortFeatured:
		slices.SortStableFunc(out, compareFeatured)
	}
	return out
}

// comparePrice orders by price rank. Listings with no price range sort last
// in both directions.
func comparePrice(a, b domain.Business, desc bool) int {
	ra, rb := a.PriceRange.Rank(), b.PriceRange.Rank()
	if c := cmp.Compare(boolRank(ra == 0), boolRank(rb == 0)); c != 0 {
		return c
	}
	if desc {
		return cmp.Compare(rb, ra)
	}
	return cmp.Compare(ra, rb)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// compareFeatured puts featured listings first, then orders by rating desc.
func compareFeatured(a, b domain.Business) int {
	if a.Featured != b.Featured {
		if a.Featured {
			return -1
		}
		return 1
	}
	return cmp.Compare(b.Rating, a.Rating)
}
