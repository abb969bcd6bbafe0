package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shopfront-be/internal/logger"

	"go.uber.org/zap"
)

const (
	stripeBaseURL      = "https://api.stripe.com"
	signatureTolerance = 5 * time.Minute
)

type stripeGateway struct {
	apiKey        string
	webhookSecret string
	successURL    string
	cancelURL     string
	httpClient    *http.Client
	now           func() time.Time
}

func NewStripeGateway(apiKey, webhookSecret, successURL, cancelURL string) Gateway {
	if apiKey == "" {
		logger.L().Warn("Stripe API key is empty")
	}

	return &stripeGateway{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

// CreateSession opens a hosted checkout session for the full order amount.
// The success URL carries {CHECKOUT_SESSION_ID} so the storefront can poll
// the session after redirect.
func (s *stripeGateway) CreateSession(ctx context.Context, orderNumber string, amount float64, currency string) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_number", orderNumber),
		zap.Float64("amount", amount),
		zap.String("currency", currency),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", s.successURL+"?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", s.cancelURL)
	form.Set("client_reference_id", orderNumber)
	form.Set("line_items[0][price_data][currency]", strings.ToLower(currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(toMinorUnits(amount), 10))
	form.Set("line_items[0][price_data][product_data][name]", "Order "+orderNumber)
	form.Set("line_items[0][quantity]", "1")

	req, err := http.NewRequestWithContext(ctx, "POST", stripeBaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(s.apiKey, "")
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	log.Info("Creating Stripe checkout session")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("Stripe request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Stripe returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: %s", ErrUpstreamPayment, string(bodyBytes))
	}

	var res struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding Stripe response", zap.Error(err))
		return nil, err
	}

	log.Info("Stripe checkout session created", zap.String("session_id", res.ID))

	return &Session{ID: res.ID, URL: res.URL}, nil
}

// GetSessionStatus polls the session and folds Stripe's two status fields
// into ours: payment_status=paid wins, an expired session is failed,
// everything else stays pending.
func (s *stripeGateway) GetSessionStatus(ctx context.Context, sessionID string) (Status, error) {
	log := logger.FromCtx(ctx).With(zap.String("session_id", sessionID))

	req, err := http.NewRequestWithContext(ctx, "GET", stripeBaseURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		log.Error("Failed building request", zap.Error(err))
		return "", err
	}

	req.SetBasicAuth(s.apiKey, "")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("Request to Stripe failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return "", fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Stripe returned error",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", fmt.Errorf("%w: %s", ErrUpstreamPayment, string(bodyBytes))
	}

	var res struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding session", zap.Error(err))
		return "", err
	}

	switch {
	case res.PaymentStatus == "paid":
		return StatusPaid, nil
	case res.Status == "expired":
		return StatusFailed, nil
	default:
		return StatusPending, nil
	}
}

// VerifyWebhook checks the Stripe-Signature header (t=...,v1=...) against
// HMAC-SHA256(secret, "<t>.<body>"). Stale timestamps are rejected.
func (s *stripeGateway) VerifyWebhook(signatureHeader string, body []byte) error {
	if s.webhookSecret == "" {
		return nil // skip in dev
	}

	var ts string
	var sigs []string
	for _, part := range strings.Split(signatureHeader, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == "" || len(sigs) == 0 {
		return ErrInvalidSignature
	}

	epoch, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	if s.now().Sub(time.Unix(epoch, 0)) > signatureTolerance {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range sigs {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}

	return ErrInvalidSignature
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
