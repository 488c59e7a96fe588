package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/european-living/internal/service"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Rocky Mountains", "rocky-mountains"},
		{"WALMART", "walmart"},
		{"Rocky  Mountains!", "rocky-mountains"},
		{"Tübingen & Bebenhausen", "tubingen-bebenhausen"},
		{"Straßburg", "strassburg"},
		{"--Guide to Paris--", "guide-to-paris"},
		{"!!! ---", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, service.Slugify(tc.in))
		})
	}
}

func TestSlugFromFilename(t *testing.T) {
	assert.Equal(t, "munich-guide", service.SlugFromFilename("content/Munich_Guide.md"))
	assert.Equal(t, "staying-connected", service.SlugFromFilename("staying-connected.md"))
}
