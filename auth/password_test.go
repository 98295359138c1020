package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	ok, problems := ValidatePassword("Passw0rd")
	assert.True(t, ok)
	assert.Empty(t, problems)
}

func TestValidatePasswordTooShort(t *testing.T) {
	ok, problems := ValidatePassword("Pw1")
	assert.False(t, ok)
	assert.Contains(t, problems, "Password must be at least 8 characters long")
}

func TestValidatePasswordMissingClasses(t *testing.T) {
	ok, problems := ValidatePassword("alllowercase")
	assert.False(t, ok)
	assert.Len(t, problems, 2) // no uppercase, no digit

	ok, problems = ValidatePassword("12345678")
	assert.False(t, ok)
	assert.Len(t, problems, 2) // no uppercase, no lowercase
}
