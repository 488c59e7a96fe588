package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BusinessStatus is the moderation flag on a directory listing.
// It is a plain flag: any status may be set to any other.
type BusinessStatus string

const (
	StatusPending  BusinessStatus = "pending"
	StatusActive   BusinessStatus = "active"
	StatusInactive BusinessStatus = "inactive"
)

// Valid reports whether s is one of the three enumerated statuses.
func (s BusinessStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}

// ParseBusinessStatus converts a raw string into a BusinessStatus.
func ParseBusinessStatus(s string) (BusinessStatus, error) {
	st := BusinessStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: status must be one of pending, active, inactive", ErrValidation)
	}
	return st, nil
}

// EnglishFluency describes how well the staff speak English.
type EnglishFluency string

const (
	FluencyFluent         EnglishFluency = "fluent"
	FluencyConversational EnglishFluency = "conversational"
	FluencyBasic          EnglishFluency = "basic"
)

// Valid reports whether f is a known fluency level.
func (f EnglishFluency) Valid() bool {
	switch f {
	case FluencyFluent, FluencyConversational, FluencyBasic:
		return true
	}
	return false
}

// FeaturedTier is the admin-assigned listing tier.
type FeaturedTier string

const (
	TierFree      FeaturedTier = "free"
	TierVerified  FeaturedTier = "verified"
	TierFeatured  FeaturedTier = "featured"
	TierSponsored FeaturedTier = "sponsored"
)

// Valid reports whether t is a known tier. The empty tier is allowed.
func (t FeaturedTier) Valid() bool {
	switch t {
	case "", TierFree, TierVerified, TierFeatured, TierSponsored:
		return true
	}
	return false
}

// PriceRange is one to four dollar signs.
type PriceRange string

// priceOrder ranks price ranges for sorting. Unknown values rank 0.
var priceOrder = map[PriceRange]int{"$": 1, "$$": 2, "$$$": 3, "$$$$": 4}

// Rank returns 1..4 for a known range and 0 otherwise.
func (p PriceRange) Rank() int { return priceOrder[p] }

// Business is an English-speaking local business listed in the directory.
// The validate tags describe an admin-entered record.
type Business struct {
	ID               uuid.UUID
	Name             string `validate:"required"`
	Category         string `validate:"required"`
	Subcategory      string
	Description      string
	Location         string `validate:"required"`
	Address          string
	City             string
	Phone            string
	Email            string         `validate:"omitempty,email"`
	Website          string         `validate:"omitempty,weburl"`
	EnglishFluency   EnglishFluency `validate:"omitempty,oneof=fluent conversational basic"`
	Verified         bool
	Featured         bool
	FeaturedTier     FeaturedTier   `validate:"omitempty,oneof=free verified featured sponsored"`
	BasesServed      []string       `validate:"dive,base"`
	Status           BusinessStatus `validate:"required,oneof=pending active inactive"`
	Rating           float64        `validate:"gte=0,lte=5"`
	PriceRange       PriceRange     `validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	MilitaryDiscount bool
	SOFAFamiliar     bool
	Specialties      []string
	Tags             []string
	Latitude         *float64 `validate:"required,gte=-90,lte=90"`
	Longitude        *float64 `validate:"required,gte=-180,lte=180"`
	GoogleMapsURL    string   `validate:"omitempty,weburl"`
	ImageURL         string   `validate:"omitempty,weburl"`
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ServesBase reports whether baseID is in the business's served bases.
func (b Business) ServesBase(baseID string) bool {
	for _, id := range b.BasesServed {
		if id == baseID {
			return true
		}
	}
	return false
}

// BusinessQuery is the store-side filter for business listings.
// An empty Status means "active only"; BaseID "all" means no base filter.
type BusinessQuery struct {
	Category    string
	Subcategory string
	BaseID      string
	Status      BusinessStatus
	Search      string
}

// BusinessSubmission is the public "add your business" form.
type BusinessSubmission struct {
	BusinessName     string `validate:"required"`
	Category         string `validate:"required"`
	Subcategory      string
	Description      string
	Address          string
	City             string `validate:"required"`
	PostalCode       string
	NearbyBases      []string `validate:"min=1,dive,base"`
	Phone            string   `validate:"required"`
	Email            string   `validate:"required,email"`
	Website          string   `validate:"omitempty,weburl"`
	PriceRange       string   `validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	EnglishFluency   string   `validate:"required,oneof=fluent conversational basic"`
	OtherLanguages   string
	SOFAFamiliar     bool
	MilitaryDiscount bool
	DiscountPercent  string `validate:"omitempty,numeric"`
	OnBaseAccess     bool
	DeliveryToBase   bool
	Hours            string
	AdditionalNotes  string
}

// CategoryCount is the number of active businesses in one category.
type CategoryCount struct {
	Category string
	Count    int
}
