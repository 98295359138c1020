package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	secret := "whsec_test"
	now := time.Now()

	header := SignPayload(payload, secret, now)
	require.NoError(t, VerifySignature(payload, header, secret, DefaultTolerance, now))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Now()

	header := SignPayload(payload, "whsec_a", now)
	err := VerifySignature(payload, header, "whsec_b", DefaultTolerance, now)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignatureTamperedPayload(t *testing.T) {
	now := time.Now()
	header := SignPayload([]byte(`{"amount":100}`), "whsec_test", now)

	err := VerifySignature([]byte(`{"amount":999}`), header, "whsec_test", DefaultTolerance, now)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	signedAt := time.Now().Add(-10 * time.Minute)

	header := SignPayload(payload, "whsec_test", signedAt)
	err := VerifySignature(payload, header, "whsec_test", DefaultTolerance, time.Now())
	assert.ErrorIs(t, err, ErrSignatureExpired)
}

func TestVerifySignatureMissingHeader(t *testing.T) {
	err := VerifySignature([]byte(`{}`), "", "whsec_test", DefaultTolerance, time.Now())
	assert.ErrorIs(t, err, ErrSignatureMissing)
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	err := VerifySignature([]byte(`{}`), "t=abc,v1=zzzz", "whsec_test", DefaultTolerance, time.Now())
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}
