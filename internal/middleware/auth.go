package middleware

import (
	"net/http"

	"shopfront-be/internal/auth"
	"shopfront-be/internal/utils"
)

// Auth attaches the authenticated user (if any) to the request context.
// Requests without a token, or with an invalid one, pass through anonymous;
// handlers that need an identity enforce it themselves.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseClaims(tokenStr, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.WithUserID(r.Context(), claims.UserID)
			ctx = utils.WithAdmin(ctx, claims.IsAdmin)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards the admin surface.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsAdminFromContext(r.Context()) {
			utils.WriteJSONError(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
