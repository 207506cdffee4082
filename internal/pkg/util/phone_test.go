package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"local format", "0551234567", "+213551234567"},
		{"international 00 prefix", "00213551234567", "+213551234567"},
		{"already international", "+213551234567", "+213551234567"},
		{"bare country code", "213551234567", "+213551234567"},
		{"no prefix at all", "551234567", "+213551234567"},
		{"with separators", "0551 23-45(67)", "+213551234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizePhone(tt.phone))
		})
	}
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "mountain-honey-500g", Slugify("Mountain Honey 500g"))
	require.Equal(t, "pure-beeswax", Slugify("  Pure   Beeswax!  "))
	require.Equal(t, "", Slugify("---"))
}
