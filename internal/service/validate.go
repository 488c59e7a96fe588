package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/european-living/internal/domain"
)

// newValidator returns a validator with the project's custom tags:
//
//	weburl  an absolute URL with a scheme and a host
//	base    one of domain.KnownBases
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		return isValidURL(fl.Field().String())
	})
	_ = v.RegisterValidation("base", func(fl validator.FieldLevel) bool {
		return domain.IsKnownBase(fl.Field().String())
	})
	return v
}

// isValidURL reports whether raw parses as an absolute URL. The empty string
// counts as valid: it means "not provided".
func isValidURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// fieldMessages holds the user-facing text for specific field/tag failures.
// Keys are "Field.tag"; "*.required" covers every other required field.
var fieldMessages = map[string]string{
	"*.required":              "Please fill in all required fields (marked with *)",
	"NearbyBases.min":         "Please select at least one nearby military base",
	"NearbyBases.base":        "Please select bases from the list",
	"BasesServed.base":        "Please select bases from the list",
	"Email.email":             "Please enter a valid email address",
	"Website.weburl":          "Website URL is invalid.",
	"GoogleMapsURL.weburl":    "Google Maps URL is invalid.",
	"ImageURL.weburl":         "Image URL is invalid.",
	"Latitude.required":       "Coordinates (Latitude/Longitude) are required for map link generation.",
	"Longitude.required":      "Coordinates (Latitude/Longitude) are required for map link generation.",
	"DiscountPercent.numeric": "Military discount must be a number",
	"AuthorName.required":     "Please enter your name",
	"Rating.min":              "Please select a star rating",
	"Rating.max":              "Please select a star rating",
	"Comment.min":             "Review must be at least 10 characters long",
}

// validationError converts a validator error into a domain.ErrValidation
// wrapped under op. Messages are de-duplicated and joined with "; ".
func validationError(op string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrValidation, err)
	}

	seen := map[string]bool{}
	var msgs []string
	for _, fe := range verrs {
		msg := messageFor(fe)
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, strings.Join(msgs, "; "))
}

// adminRequired is the message for a missing core field on an admin-entered
// listing.
const adminRequired = "Name, Location, and Category are required fields."

func messageFor(fe validator.FieldError) string {
	// Dive errors report the element ("NearbyBases[0]"); key on the slice.
	field := fe.StructField()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if fe.Tag() == "required" && strings.HasPrefix(fe.StructNamespace(), "Business.") {
		switch field {
		case "Name", "Location", "Category":
			return adminRequired
		}
	}
	if msg, ok := fieldMessages[field+"."+fe.Tag()]; ok {
		return msg
	}
	if fe.Tag() == "required" {
		return fieldMessages["*.required"]
	}
	return fmt.Sprintf("%s is invalid", strings.ToLower(field))
}
