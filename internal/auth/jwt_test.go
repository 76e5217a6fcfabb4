package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Generate("user-1", "a@example.com", "customer")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestManager_Errors(t *testing.T) {
	t.Run("Missing secret", func(t *testing.T) {
		m := NewManager("", 0)

		_, err := m.Generate("user-1", "", "")
		assert.ErrorIs(t, err, ErrMissingSecret)

		_, err = m.Parse("anything")
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token, err := NewManager("one", time.Hour).Generate("user-1", "", "customer")
		require.NoError(t, err)

		_, err = NewManager("two", time.Hour).Parse(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		m := NewManager("secret", time.Minute)
		m.now = func() time.Time { return time.Now().Add(-time.Hour) }

		token, err := m.Generate("user-1", "", "customer")
		require.NoError(t, err)

		_, err = NewManager("secret", time.Minute).Parse(token)
		assert.Error(t, err)
	})

	t.Run("Missing user id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "customer",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = NewManager("secret", time.Hour).Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unexpected signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "user-1"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewManager("secret", time.Hour).Parse(signed)
		assert.Error(t, err)
	})
}
