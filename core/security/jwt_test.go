package security_test

import (
	"testing"
	"time"

	"dropsync/core/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() security.Config {
	return security.Config{JWTSecret: "unit-test-secret", TokenTTLHours: 1}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tokens := security.NewTokenManager(testConfig())

	token, err := tokens.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenManager_Validate(t *testing.T) {
	tokens := security.NewTokenManager(testConfig())

	t.Run("Expired", func(t *testing.T) {
		// Sign an already-expired token with the same secret.
		claims := security.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
			UserID: 42,
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
		require.NoError(t, err)

		_, err = tokens.Validate(expired)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("Tampered", func(t *testing.T) {
		token, err := tokens.Generate(42)
		require.NoError(t, err)

		_, err = tokens.Validate(token + "x")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tokens.Validate("not-a-token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := security.NewTokenManager(security.Config{JWTSecret: "different-secret", TokenTTLHours: 1})
		token, err := other.Generate(42)
		require.NoError(t, err)

		_, err = tokens.Validate(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("UnsignedAlgorithm", func(t *testing.T) {
		claims := security.Claims{UserID: 42}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tokens.Validate(unsigned)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	// Zero or negative lifetimes fall back to the 7 day default, so the
	// generated token must still validate.
	tokens := security.NewTokenManager(security.Config{JWTSecret: "s", TokenTTLHours: 0})

	token, err := tokens.Generate(1)
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(security.DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix(), 5)
}
