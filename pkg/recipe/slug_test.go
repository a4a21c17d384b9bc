package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Nasi Goreng Spesial":   "nasi-goreng-spesial",
		"Mom's  Apple   Pie!":   "mom-s-apple-pie",
		"  Trim Me  ":           "trim-me",
		"100% Chocolate Cake":   "100-chocolate-cake",
		"UPPERCASE":             "uppercase",
		"tabs\tand\nnewlines":   "tabs-and-newlines",
		"---already--hyphens--": "already-hyphens",
		"!!!":                   "",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, Slugify(input), "input: %q", input)
	}
}

func TestUniqueSlug_NoCollision(t *testing.T) {
	slug, err := UniqueSlug("Nasi Goreng", func(string) (bool, error) {
		return false, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "nasi-goreng", slug)
}

func TestUniqueSlug_AppendsSuffixOnCollision(t *testing.T) {
	taken := map[string]bool{
		"nasi-goreng":   true,
		"nasi-goreng-2": true,
	}

	slug, err := UniqueSlug("Nasi Goreng", func(candidate string) (bool, error) {
		return taken[candidate], nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "nasi-goreng-3", slug)
}

func TestUniqueSlug_EmptyNameFallsBack(t *testing.T) {
	slug, err := UniqueSlug("!!!", func(string) (bool, error) {
		return false, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "recipe", slug)
}
