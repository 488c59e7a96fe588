package repo_test

import "github.com/pkordes/european-living/internal/domain"

// articleFixture returns a published domain.Article with sensible defaults.
// Callers can override individual fields after calling this function.
func articleFixture(slug string) domain.Article {
	return domain.Article{
		Slug:               slug,
		Title:              "Munich Guide",
		Category:           "Destinations",
		Content:            "# Munich\n\nBeer gardens and the English Garden.",
		Excerpt:            "Beer gardens and the English Garden.",
		Author:             "European Living",
		DestinationName:    "Munich",
		Tags:               []string{"Destinations", "bavaria"},
		Published:          true,
		ReadingTimeMinutes: 1,
	}
}

// businessFixture returns an active domain.Business serving Stuttgart.
func businessFixture(name string) domain.Business {
	return domain.Business{
		Name:           name,
		Category:       "healthcare",
		Subcategory:    "dentist",
		Description:    "English-speaking family dentist",
		Location:       "Stuttgart, 70173",
		City:           "Stuttgart",
		Phone:          "+49 711 000000",
		Email:          "praxis@example.de",
		EnglishFluency: domain.FluencyFluent,
		BasesServed:    []string{"stuttgart"},
		Status:         domain.StatusActive,
		Rating:         4.5,
		PriceRange:     "$$",
	}
}

// dayTripFixture returns an Easy, $-cost domain.DayTrip from Stuttgart.
func dayTripFixture(name string) domain.DayTrip {
	return domain.DayTrip{
		BaseID:      "stuttgart",
		BaseName:    "Stuttgart",
		Name:        name,
		Distance:    "120 km",
		DriveTime:   "1h 30m",
		Description: "Half-timbered old town on the Neckar",
		BestFor:     []string{"families"},
		Difficulty:  domain.DifficultyEasy,
		Cost:        "$",
	}
}

func ptr[T any](v T) *T { return &v }

