package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

// SignatureHeader carries the webhook signature in the form
// "t=<unix>,v1=<hex hmac-sha256>". The signed payload is "<t>.<body>".
const SignatureHeader = "Webhook-Signature"

// EventTypeSessionCompleted is the only event type the storefront acts on.
// All other types are acknowledged and ignored.
const EventTypeSessionCompleted = "checkout.session.completed"

// DefaultTolerance bounds the age of a signed webhook timestamp.
const DefaultTolerance = 5 * time.Minute

// ErrSignatureInvalid rejects a webhook whose signature cannot be verified.
// Verification failure is fatal for the request; the provider owns retries.
var ErrSignatureInvalid = &apperrors.AppError{
	Code:    "WEBHOOK_SIGNATURE_INVALID",
	Message: "webhook signature verification failed",
	Status:  http.StatusBadRequest,
}

// Event is the provider's webhook envelope.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object Session `json:"object"`
	} `json:"data"`
}

// ComputeSignature returns the hex HMAC-SHA256 of "<t>.<payload>" under secret.
func ComputeSignature(t time.Time, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(t.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignHeader builds a complete signature header value for the given payload.
// Used by the mock provider and tests to produce verifiable deliveries.
func SignHeader(t time.Time, payload []byte, secret string) string {
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), ComputeSignature(t, payload, secret))
}

// ConstructEvent verifies the signature header against the raw payload and
// secret, enforcing the timestamp tolerance, and unmarshals the event.
// Any verification failure returns ErrSignatureInvalid.
func ConstructEvent(payload []byte, sigHeader, secret string, tolerance time.Duration) (*Event, error) {
	ts, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, ErrSignatureInvalid
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			return nil, ErrSignatureInvalid
		}
	}

	expected := ComputeSignature(time.Unix(ts, 0), payload, secret)
	valid := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrSignatureInvalid
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("unmarshal webhook event: %w", err)
	}

	return &event, nil
}

// parseSignatureHeader extracts the timestamp and v1 signatures from a header
// of the form "t=1712000000,v1=abc...,v1=def...".
func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("empty signature header")
	}

	var (
		ts         int64
		tsSeen     bool
		signatures []string
	)

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, nil, fmt.Errorf("malformed signature part %q", part)
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("malformed timestamp: %w", err)
			}
			ts = parsed
			tsSeen = true
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if !tsSeen || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("signature header missing t or v1")
	}

	return ts, signatures, nil
}
