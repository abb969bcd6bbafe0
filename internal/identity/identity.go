package identity

import "errors"

var ErrIdentityRequired = errors.New("session ID or authentication required")

// Identity keys a cart: an authenticated user id, an anonymous session id,
// or both. When both are present the authenticated id wins.
type Identity struct {
	UserID    string
	SessionID string
}

func FromUser(userID string) Identity {
	return Identity{UserID: userID}
}

func FromSession(sessionID string) Identity {
	return Identity{SessionID: sessionID}
}

func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// Validate fails when neither a user id nor a session id is present.
func (id Identity) Validate() error {
	if id.UserID == "" && id.SessionID == "" {
		return ErrIdentityRequired
	}
	return nil
}
