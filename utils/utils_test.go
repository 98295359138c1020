package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Wireless Mouse", "wireless-mouse"},
		{"  Trimmed  ", "trimmed"},
		{"Café & Croissant!", "caf-croissant"},
		{"already-slugged", "already-slugged"},
		{"Multi   Space", "multi-space"},
		{"---edges---", "edges"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Wireless Mouse", "Electronics")
	assert.Regexp(t, regexp.MustCompile(`^ELE-WIRELESS-\d{3}$`), sku)
}

func TestGenerateSKUEmptyCategory(t *testing.T) {
	sku := GenerateSKU("Gadget", "")
	assert.Regexp(t, regexp.MustCompile(`^GEN-GADGET-\d{3}$`), sku)
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(6)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), s)
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(45, 2, 20)
	assert.Equal(t, int64(3), pg.TotalPages)
	assert.Equal(t, 2, pg.Page)

	pg = NewPagination(40, 1, 20)
	assert.Equal(t, int64(2), pg.TotalPages)

	pg = NewPagination(0, 1, 20)
	assert.Equal(t, int64(0), pg.TotalPages)
}
