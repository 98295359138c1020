package utils

import (
	rndm "math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var digitRunes = []rune("0123456789")

// GenerateRandomDigitString creates a random numeric string of length n.
func GenerateRandomDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rndm.Intn(len(digitRunes))]
	}
	return string(b)
}

// NewID returns a fresh entity identifier.
func NewID() string {
	return uuid.NewString()
}

var (
	nonWordRe      = regexp.MustCompile(`[^\w\-]+`)
	multiDashRe    = regexp.MustCompile(`\-\-+`)
	alphaNumericRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Slugify lowercases, replaces whitespace with dashes and strips everything
// that is not a word character.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Join(strings.Fields(s), "-")
	s = nonWordRe.ReplaceAllString(s, "")
	s = multiDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateSKU builds `<CAT>-<NAME>-<3 digits>` from the first characters of
// the cleaned category and product names.
func GenerateSKU(productName, categoryName string) string {
	name := strings.ToUpper(alphaNumericRe.ReplaceAllString(productName, ""))
	if len(name) > 8 {
		name = name[:8]
	}
	cat := strings.ToUpper(alphaNumericRe.ReplaceAllString(categoryName, ""))
	if len(cat) > 3 {
		cat = cat[:3]
	}
	if cat == "" {
		cat = "GEN"
	}
	return cat + "-" + name + "-" + GenerateRandomDigitString(3)
}
