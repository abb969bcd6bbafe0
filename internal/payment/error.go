package payment

import "errors"

var (
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrUpstreamPayment     = errors.New("payment provider error")
)
