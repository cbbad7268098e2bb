package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandsAreWellFormed(t *testing.T) {
	assert.Len(t, Bands, 5)

	seen := map[string]string{}
	for _, band := range Bands {
		assert.NotEmpty(t, band.Keyword, "band %s needs a region keyword", band.Name)
		assert.NotEmpty(t, band.Localities, "band %s needs localities", band.Name)

		for _, locality := range band.Localities {
			// Matching is lowercase-normalized on the area side only, so
			// the tables themselves must already be lowercase.
			assert.Equal(t, strings.ToLower(locality), locality,
				"locality %q in band %s must be lowercase", locality, band.Name)

			if owner, dup := seen[locality]; dup {
				t.Errorf("locality %q appears in bands %s and %s", locality, owner, band.Name)
			}
			seen[locality] = band.Name
		}
	}
}

func TestGetBandByName(t *testing.T) {
	tests := []struct {
		name     string
		band     string
		expected bool
	}{
		{"Known band", "harbour", true},
		{"Unknown band", "eastern", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := GetBandByName(tt.band)
			if tt.expected {
				assert.NotNil(t, band)
				assert.Equal(t, tt.band, band.Name)
			} else {
				assert.Nil(t, band)
			}
		})
	}
}
