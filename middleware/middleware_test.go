package middleware

import (
	"testing"
	"time"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuth(expiry time.Duration) *Auth {
	return NewAuth(nil, []byte("test-secret"), expiry)
}

func TestTokenRoundTrip(t *testing.T) {
	a := testAuth(time.Hour)

	token, err := a.IssueToken(models.User{
		UserID: "usr_1",
		Email:  "jane@example.com",
		Role:   models.RoleCustomer,
	})
	require.NoError(t, err)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestParseTokenExpired(t *testing.T) {
	a := testAuth(-time.Minute)

	token, err := a.IssueToken(models.User{UserID: "usr_1"})
	require.NoError(t, err)

	_, err = a.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := testAuth(time.Hour).IssueToken(models.User{UserID: "usr_1"})
	require.NoError(t, err)

	other := NewAuth(nil, []byte("other-secret"), time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := testAuth(time.Hour).ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(models.RoleAdmin, models.RoleAdmin))
	assert.True(t, Allowed(models.RoleCustomer, models.RoleAdmin, models.RoleCustomer))
	assert.False(t, Allowed(models.RoleCustomer, models.RoleAdmin))
	assert.False(t, Allowed(models.RoleCustomer))
}
