package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInternational(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"brazilian mobile with formatting", "+55 11 91234-5678", "+5511912345678"},
		{"already canonical", "+5511912345678", "+5511912345678"},
		{"us number with punctuation", "+1 650-253-0000", "+16502530000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, "")
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	for _, raw := range []string{
		"not a number",
		"+123",
		"12345",
		"+55 11 0000",
		"++5511912345678",
	} {
		t.Run(raw, func(t *testing.T) {
			_, ok := Normalize(raw, "")
			assert.False(t, ok)
		})
	}
}

func TestNormalizeBlankMeansNoPhone(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		got, ok := Normalize(raw, "")
		assert.True(t, ok)
		assert.Empty(t, got)
	}
}

func TestNormalizeWithRegionHint(t *testing.T) {
	got, ok := Normalize("11 91234-5678", "BR")
	assert.True(t, ok)
	assert.Equal(t, "+5511912345678", got)

	// Without a region only international format resolves.
	_, ok = Normalize("11 91234-5678", "")
	assert.False(t, ok)
}
