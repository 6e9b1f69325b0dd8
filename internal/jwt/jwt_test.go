package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	s := NewJWTService("secret", time.Hour)

	token, err := s.GenerateToken("abc123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sid, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sid)
}

func TestJWTService_Expired(t *testing.T) {
	s := NewJWTService("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Minute)
	s.now = func() time.Time { return issued }

	token, err := s.GenerateToken("abc123")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateToken("abc123")
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	s := NewJWTService("secret", time.Hour)
	exp := gojwt.NewNumericDate(time.Now().Add(time.Hour))

	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: exp},
		SessionID:        "abc123",
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{SessionID: "abc123"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	noSession, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: exp},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":      "",
		"garbage":    "not-a-token",
		"alg none":   unsigned,
		"no expiry":  noExpiry,
		"no session": noSession,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
