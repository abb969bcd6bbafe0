package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestExtractAccessToken(t *testing.T) {
	t.Run("From cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("From bearer header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "header-token", ExtractAccessToken(r))
	})

	t.Run("Cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("Missing", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		assert.Equal(t, "", ExtractAccessToken(r))
	})
}

func TestParseClaims(t *testing.T) {
	t.Run("Valid user token", func(t *testing.T) {
		tokenStr := signToken(t, jwt.MapClaims{"user_id": "user-1"})

		claims, err := ParseClaims(tokenStr, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("Valid admin token", func(t *testing.T) {
		tokenStr := signToken(t, jwt.MapClaims{"user_id": "admin-1", "is_admin": true})

		claims, err := ParseClaims(tokenStr, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, "admin-1", claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		tokenStr := signToken(t, jwt.MapClaims{"user_id": "user-1"})

		claims, err := ParseClaims(tokenStr, []byte("other-secret"))
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Missing user id", func(t *testing.T) {
		tokenStr := signToken(t, jwt.MapClaims{"is_admin": true})

		claims, err := ParseClaims(tokenStr, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Garbage token", func(t *testing.T) {
		claims, err := ParseClaims("not-a-token", testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})
}
