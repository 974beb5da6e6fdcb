package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	t.Run("Happy path - issued token verifies", func(t *testing.T) {
		tokens := NewTokenService("top-secret", time.Hour)

		signed, err := tokens.Issue("judge-1", RoleJudge)
		require.NoError(t, err)

		claims, err := tokens.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "judge-1", claims.UserID)
		assert.Equal(t, RoleJudge, claims.Role)
		assert.Equal(t, "judge-1", claims.Subject)
	})

	t.Run("Unhappy path - expired token", func(t *testing.T) {
		tokens := NewTokenService("top-secret", time.Hour)
		issuedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
		tokens.now = func() time.Time { return issuedAt }

		signed, err := tokens.Issue("admin-1", RoleAdmin)
		require.NoError(t, err)

		tokens.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
		_, err = tokens.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - signed with another secret", func(t *testing.T) {
		signed, err := NewTokenService("other-secret", time.Hour).Issue("admin-1", RoleAdmin)
		require.NoError(t, err)

		_, err = NewTokenService("top-secret", time.Hour).Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - unsigned token", func(t *testing.T) {
		claims := Claims{
			UserID: "admin-1",
			Role:   RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewTokenService("top-secret", time.Hour).Verify(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - token without expiry", func(t *testing.T) {
		claims := Claims{UserID: "admin-1", Role: RoleAdmin}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("top-secret"))
		require.NoError(t, err)

		_, err = NewTokenService("top-secret", time.Hour).Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - garbage", func(t *testing.T) {
		_, err := NewTokenService("top-secret", time.Hour).Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(4)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := hasher.Verify("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Verify("correct horse", "not-a-bcrypt-hash")
	assert.Error(t, err)

	assert.Equal(t, 10, NewPasswordHasher(0).Cost)
}
