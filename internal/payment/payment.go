package payment

import "context"

// Gateway abstracts the hosted-checkout provider. CreateSession opens a
// provider-hosted payment page; GetSessionStatus polls it; VerifyWebhook
// checks a callback's signature against the raw request body.
type Gateway interface {
	CreateSession(ctx context.Context, orderNumber string, amount float64, currency string) (*Session, error)
	GetSessionStatus(ctx context.Context, sessionID string) (Status, error)
	VerifyWebhook(signatureHeader string, body []byte) error
}
