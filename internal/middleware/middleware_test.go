package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shopfront-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middleware-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestAuth(t *testing.T) {
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetUserIDFromContext(r.Context())
		w.Header().Set("X-Test-User", userID)
		if utils.IsAdminFromContext(r.Context()) {
			w.Header().Set("X-Test-Admin", "1")
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("No token passes through anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Test-User"))
	})

	t.Run("Valid token sets user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "user-1"}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "user-1", w.Header().Get("X-Test-User"))
		assert.Empty(t, w.Header().Get("X-Test-Admin"))
	})

	t.Run("Admin claim propagates", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "admin-1", "is_admin": true}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "admin-1", w.Header().Get("X-Test-User"))
		assert.Equal(t, "1", w.Header().Get("X-Test-Admin"))
	})

	t.Run("Invalid token passes through anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Test-User"))
	})
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Anonymous rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin allowed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		req = req.WithContext(utils.WithAdmin(req.Context(), true))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Strict tier exhausts after burst", func(t *testing.T) {
		var lastCode int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/api/payments/checkout", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			lastCode = w.Code
		}
		assert.Equal(t, http.StatusTooManyRequests, lastCode)
	})

	t.Run("Separate identities have separate buckets", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/payments/checkout", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("General tier allows more", func(t *testing.T) {
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("GET", "/api/cart", nil)
			req.RemoteAddr = "10.0.0.3:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestResolveRateTier(t *testing.T) {
	strictReq := httptest.NewRequest("POST", "/api/webhook/stripe", nil)
	_, _, tier := resolveRateTier(strictReq)
	assert.Equal(t, "strict", tier)

	generalReq := httptest.NewRequest("GET", "/api/orders", nil)
	_, _, tier = resolveRateTier(generalReq)
	assert.Equal(t, "general", tier)
}
