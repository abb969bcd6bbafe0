package httpapi

import (
	"net/http"

	"shopfront-be/internal/identity"
	"shopfront-be/internal/utils"
)

// identityFrom resolves who the cart belongs to. A JWT-authenticated user id
// always wins; anonymous callers identify themselves with the session_id
// query parameter.
func identityFrom(r *http.Request) identity.Identity {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return identity.FromUser(userID)
	}
	return identity.FromSession(r.URL.Query().Get("session_id"))
}
