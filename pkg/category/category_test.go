package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_DefaultTable(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		expected string
	}{
		{
			name:     "TitleMatch",
			metadata: map[string]string{"title": "Deep Space Nebula"},
			expected: "space",
		},
		{
			name:     "MultipleKeywordsAccumulate",
			metadata: map[string]string{"title": "Misty forest", "description": "mountain landscape at sunset"},
			expected: "nature",
		},
		{
			name:     "AltOnly",
			metadata: map[string]string{"alt": "a sleeping dog"},
			expected: "animals",
		},
		{
			name:     "URLContributes",
			metadata: map[string]string{"url": "https://img.example.com/galaxy/004.jpg"},
			expected: "space",
		},
		{
			name:     "CaseInsensitive",
			metadata: map[string]string{"title": "CYBERPUNK Skyline"},
			expected: "city", // 1-1 tie between city and tech, city is earlier in the table
		},
		{
			name:     "SubstringContainment",
			metadata: map[string]string{"title": "concatenation"},
			expected: "animals", // "cat" matches inside "concatenation"
		},
		{
			name:     "NoMatch",
			metadata: map[string]string{"title": "zzz", "alt": "qqq"},
			expected: Fallback,
		},
		{
			name:     "EmptyMetadata",
			metadata: map[string]string{},
			expected: Fallback,
		},
		{
			name:     "NilMetadata",
			metadata: nil,
			expected: Fallback,
		},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Categorize(tt.metadata))
		})
	}
}

func TestCategorize_TieBreaksByTableOrder(t *testing.T) {
	c := Default()

	// One nature keyword (sunset) and one space keyword (star, inside
	// "stars"); nature precedes space in the table.
	got := c.Categorize(map[string]string{"title": "sunset stars"})
	assert.Equal(t, "nature", got)
}

func TestCategorize_HigherScoreWinsOverOrder(t *testing.T) {
	c := Default()

	// nature scores 1 (ocean), space scores 2 (galaxy, star).
	got := c.Categorize(map[string]string{"title": "ocean of stars", "alt": "galaxy"})
	assert.Equal(t, "space", got)
}

func TestCategorize_Deterministic(t *testing.T) {
	c := Default()
	metadata := map[string]string{"title": "city street at night", "alt": "urban skyline"}

	first := c.Categorize(metadata)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Categorize(metadata))
	}
	assert.Equal(t, "city", first)
}

func TestCategorize_CustomTable(t *testing.T) {
	c := New([]Entry{
		{Label: "first", Keywords: []string{"alpha"}},
		{Label: "second", Keywords: []string{"alpha", "beta"}},
	})

	// Tie on "alpha" alone resolves to the earlier entry.
	assert.Equal(t, "first", c.Categorize(map[string]string{"title": "alpha"}))
	// "second" wins when it outscores.
	assert.Equal(t, "second", c.Categorize(map[string]string{"title": "alpha beta"}))
}

func TestCategorize_Disabled(t *testing.T) {
	c := Disabled()

	got := c.Categorize(map[string]string{"title": "Deep Space Nebula over the forest"})
	assert.Equal(t, Fallback, got)
}
