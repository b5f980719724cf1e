package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Mariage Test", "mariage-test"},
		{"accents", "Élise & Théo", "elise-theo"},
		{"punctuation runs", "Summer --- 2026!!", "summer-2026"},
		{"leading and trailing junk", "  ~Portraits~  ", "portraits"},
		{"digits kept", "Bapteme 2026 06", "bapteme-2026-06"},
		{"already a slug", "mariage-test", "mariage-test"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}
