package orders

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{13}-\d{3}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateOrderNumber())
	}
}
