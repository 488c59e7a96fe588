// Package api holds the JSON request and response bodies of the European
// Living HTTP API. The shapes mirror the schemas in spec/openapi.yaml; field
// names are snake_case to match the stored columns.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// List wraps every collection response.
type List[T any] struct {
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination echoes the page window used for a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Article is a published guide.
type Article struct {
	ID                 openapi_types.UUID `json:"id"`
	Slug               string             `json:"slug"`
	Title              string             `json:"title"`
	Subtitle           string             `json:"subtitle,omitempty"`
	Category           string             `json:"category,omitempty"`
	Content            string             `json:"content"`
	Excerpt            string             `json:"excerpt,omitempty"`
	Author             string             `json:"author,omitempty"`
	FeaturedImageURL   string             `json:"featured_image_url,omitempty"`
	DestinationName    string             `json:"destination_name,omitempty"`
	Tags               []string           `json:"tags"`
	Published          bool               `json:"published"`
	ViewCount          int                `json:"view_count"`
	ReadingTimeMinutes int                `json:"reading_time_minutes,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Business is a directory listing.
type Business struct {
	ID               openapi_types.UUID `json:"id"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	Subcategory      string             `json:"subcategory,omitempty"`
	Description      string             `json:"description,omitempty"`
	Location         string             `json:"location"`
	Address          string             `json:"address,omitempty"`
	City             string             `json:"city,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	Email            string             `json:"email,omitempty"`
	Website          string             `json:"website,omitempty"`
	EnglishFluency   string             `json:"english_fluency,omitempty"`
	Verified         bool               `json:"verified"`
	Featured         bool               `json:"featured"`
	FeaturedTier     string             `json:"featured_tier,omitempty"`
	BasesServed      []string           `json:"bases_served"`
	Status           string             `json:"status"`
	Rating           float64            `json:"rating"`
	PriceRange       string             `json:"price_range,omitempty"`
	MilitaryDiscount bool               `json:"military_discount"`
	SOFAFamiliar     bool               `json:"sofa_familiar"`
	Specialties      []string           `json:"specialties"`
	Tags             []string           `json:"tags"`
	Latitude         *float64           `json:"latitude,omitempty"`
	Longitude        *float64           `json:"longitude,omitempty"`
	GoogleMapsURL    string             `json:"google_maps_url,omitempty"`
	ImageURL         string             `json:"image_url,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// BusinessDetail is a listing with its reviews.
type BusinessDetail struct {
	Business
	Reviews []Review `json:"reviews"`
}

// BusinessInput is the admin create/update body.
type BusinessInput struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	Website          string   `json:"website"`
	EnglishFluency   string   `json:"english_fluency"`
	Verified         bool     `json:"verified"`
	Featured         bool     `json:"featured"`
	FeaturedTier     string   `json:"featured_tier"`
	BasesServed      []string `json:"bases_served"`
	Status           string   `json:"status"`
	Rating           float64  `json:"rating"`
	PriceRange       string   `json:"price_range"`
	MilitaryDiscount bool     `json:"military_discount"`
	SOFAFamiliar     bool     `json:"sofa_familiar"`
	Specialties      []string `json:"specialties"`
	Tags             []string `json:"tags"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	GoogleMapsURL    string   `json:"google_maps_url"`
	ImageURL         string   `json:"image_url"`
	Notes            string   `json:"notes"`
}

// BusinessSubmission is the public "add your business" form.
type BusinessSubmission struct {
	BusinessName     string   `json:"business_name"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Description      string   `json:"description"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	PostalCode       string   `json:"postal_code"`
	NearbyBases      []string `json:"nearby_bases"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	Website          string   `json:"website"`
	PriceRange       string   `json:"price_range"`
	EnglishFluency   string   `json:"english_fluency"`
	OtherLanguages   string   `json:"other_languages"`
	SOFAFamiliar     bool     `json:"sofa_familiar"`
	MilitaryDiscount bool     `json:"military_discount"`
	DiscountPercent  string   `json:"discount_percent"`
	OnBaseAccess     bool     `json:"on_base_access"`
	DeliveryToBase   bool     `json:"delivery_to_base"`
	Hours            string   `json:"hours"`
	AdditionalNotes  string   `json:"additional_notes"`
}

// StatusUpdate is the body of PATCH /admin/businesses/{id}/status.
type StatusUpdate struct {
	Status string `json:"status"`
}

// CategoryCount is the number of active listings in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Review is a user rating of a business.
type Review struct {
	ID         openapi_types.UUID `json:"id"`
	BusinessID openapi_types.UUID `json:"business_id"`
	AuthorName string             `json:"author_name"`
	Rating     int                `json:"rating"`
	Comment    string             `json:"comment"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ReviewInput is the body of POST /businesses/{id}/reviews.
type ReviewInput struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// GeocodeRequest is the body of POST /admin/geocode.
type GeocodeRequest struct {
	Address string `json:"address"`
}

// GeocodeResult is the coordinate lookup for an address.
type GeocodeResult struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	GoogleMapsURL string  `json:"google_maps_url"`
}

// DayTrip is a recommended excursion from a base.
type DayTrip struct {
	ID                  openapi_types.UUID `json:"id"`
	BaseID              string             `json:"base_id"`
	BaseName            string             `json:"base_name"`
	Name                string             `json:"name"`
	Slug                string             `json:"slug,omitempty"`
	Distance            string             `json:"distance,omitempty"`
	DriveTime           string             `json:"drive_time,omitempty"`
	TrainTime           string             `json:"train_time,omitempty"`
	Description         string             `json:"description,omitempty"`
	ShortDescription    string             `json:"short_description,omitempty"`
	FullDescription     string             `json:"full_description,omitempty"`
	BestFor             []string           `json:"best_for"`
	Difficulty          string             `json:"difficulty,omitempty"`
	Cost                string             `json:"cost,omitempty"`
	ImageURL            string             `json:"image_url,omitempty"`
	HeroImageURL        string             `json:"hero_image_url,omitempty"`
	Rating              *float64           `json:"rating,omitempty"`
	IsMustSee           bool               `json:"is_must_see"`
	RecommendedDuration string             `json:"recommended_duration,omitempty"`
	Featured            bool               `json:"featured"`
	Latitude            *float64           `json:"latitude,omitempty"`
	Longitude           *float64           `json:"longitude,omitempty"`
	Tags                []Tag              `json:"tags"`
	Photos              []Photo            `json:"photos,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// Tag is the flattened tag form.
type Tag struct {
	Name string `json:"name"`
}

// Photo is one gallery image of a day trip.
type Photo struct {
	ImageURL     string `json:"image_url"`
	Caption      string `json:"caption,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// Base is a military installation.
type Base struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SavedState reports whether a user has saved a day trip.
type SavedState struct {
	Saved bool `json:"saved"`
}

// PhraseCategory groups phrases.
type PhraseCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// Translation is one language's rendering of a phrase.
type Translation struct {
	Text          string `json:"text"`
	Pronunciation string `json:"pronunciation"`
}

// GroupedPhrase is an English phrase with translations keyed by language code.
type GroupedPhrase struct {
	English      string                 `json:"english"`
	Icon         string                 `json:"icon,omitempty"`
	SortOrder    int                    `json:"sort_order"`
	Translations map[string]Translation `json:"translations"`
}

// Language is a supported translation language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Email  openapi_types.Email `json:"email"`
	Source string              `json:"source"`
}

// SignupResponse acknowledges a relayed signup.
type SignupResponse struct {
	Status string `json:"status"`
}

// BasePreference is the selected base of the caller.
type BasePreference struct {
	Base string `json:"base"`
}
