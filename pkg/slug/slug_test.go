package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Unisex Long Sleeve Tee", "unisex-long-sleeve-tee"},
		{"punctuation", "Hello   World!", "hello-world"},
		{"accents", "Café Crème", "cafe-creme"},
		{"leading and trailing junk", "  --Mesh Back Cap--  ", "mesh-back-cap"},
		{"numbers", "Poster 24x36", "poster-24x36"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}
