// Package category assigns topical labels to image candidates by scoring
// keyword occurrences in their text metadata.
package category

import "strings"

// Fallback is the label given to candidates matching no category.
const Fallback = "uncategorized"

// Entry pairs a category label with the keywords that vote for it.
type Entry struct {
	Label    string
	Keywords []string
}

// DefaultTable returns the built-in wallpaper category table in its canonical
// order. Order matters: score ties resolve to the earliest entry.
func DefaultTable() []Entry {
	return []Entry{
		{Label: "nature", Keywords: []string{"nature", "landscape", "mountain", "forest", "ocean", "beach", "sunset", "sunrise"}},
		{Label: "space", Keywords: []string{"space", "galaxy", "nebula", "planet", "star", "cosmos", "astronomy"}},
		{Label: "abstract", Keywords: []string{"abstract", "pattern", "geometric", "minimalist", "artistic"}},
		{Label: "city", Keywords: []string{"city", "urban", "skyline", "architecture", "building", "street"}},
		{Label: "animals", Keywords: []string{"animal", "wildlife", "cat", "dog", "bird", "lion", "tiger"}},
		{Label: "tech", Keywords: []string{"technology", "computer", "digital", "cyberpunk", "futuristic"}},
		{Label: "fantasy", Keywords: []string{"fantasy", "dragon", "magic", "medieval", "artwork"}},
	}
}

// Categorizer scores metadata text against an ordered category table.
type Categorizer struct {
	table []Entry
}

// New builds a Categorizer over the given table. The slice is used as-is and
// must not be mutated afterwards.
func New(table []Entry) *Categorizer {
	return &Categorizer{table: table}
}

// Default returns a Categorizer over DefaultTable.
func Default() *Categorizer {
	return New(DefaultTable())
}

// Disabled returns a Categorizer that labels everything Fallback without
// scoring. Used when categorization is switched off.
func Disabled() *Categorizer {
	return New(nil)
}

// Categorize returns the label of the best-scoring category for the given
// metadata, or Fallback when nothing matches. Keywords match by substring
// containment over the lower-cased title, description, alt, and url fields,
// so "cat" also matches "category"; word boundaries are intentionally not
// considered. Ties resolve to the first maximal entry in table order.
func (c *Categorizer) Categorize(metadata map[string]string) string {
	text := searchText(metadata)

	best := Fallback
	bestScore := 0
	for _, entry := range c.table {
		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best = entry.Label
			bestScore = score
		}
	}
	return best
}

// searchText joins the metadata fields used for scoring, lower-cased, in a
// fixed order. Missing keys contribute nothing.
func searchText(metadata map[string]string) string {
	fields := make([]string, 0, 4)
	for _, key := range []string{"title", "description", "alt", "url"} {
		if v, ok := metadata[key]; ok {
			fields = append(fields, strings.ToLower(v))
		}
	}
	return strings.Join(fields, " ")
}
