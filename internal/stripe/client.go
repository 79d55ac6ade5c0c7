// Package stripe defines the interface for Stripe webhook verification and
// customer lookup, and provides helpers used by the api package.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Event is a parsed Stripe webhook event. DataRaw contains the raw JSON of the
// event's data.object so handlers can unmarshal only what they need.
type Event struct {
	ID      string
	Type    string
	DataRaw json.RawMessage
}

// PaymentIntent is the subset of a Stripe PaymentIntent the webhook handler
// needs: the amount gate, the two email-resolution paths, and the store name.
type PaymentIntent struct {
	ID           string
	Amount       int64  // minor currency units (cents)
	ReceiptEmail string // may be empty
	CustomerID   string // may be empty
	Description  string // used as the customer's store name in the report
}

// ─── CLIENT INTERFACE ─────────────────────────────────────────────────────────

// Client is the interface the api package uses for all Stripe calls.
// The concrete implementation wraps the official stripe-go SDK.
// Tests inject a stub.
type Client interface {
	// VerifyWebhook validates the Stripe-Signature header and returns the
	// parsed event. Returns an error if the signature is invalid or expired.
	VerifyWebhook(payload []byte, sigHeader string, secret string) (Event, error)

	// GetCustomerEmail resolves a Stripe customer ID to the customer's email
	// address. Used when a succeeded payment carries no receipt_email.
	GetCustomerEmail(ctx context.Context, customerID string) (string, error)
}

// ─── HELPERS USED BY api/ ────────────────────────────────────────────────────

// ExtractPaymentIntent pulls the fields the handler needs from the event's
// data.object. Works for payment_intent.* events.
func ExtractPaymentIntent(event Event) (PaymentIntent, error) {
	var obj struct {
		ID           string `json:"id"`
		Amount       int64  `json:"amount"`
		ReceiptEmail string `json:"receipt_email"`
		Customer     string `json:"customer"`
		Description  string `json:"description"`
	}
	if err := json.Unmarshal(event.DataRaw, &obj); err != nil {
		return PaymentIntent{}, fmt.Errorf("stripe: unmarshal payment intent: %w", err)
	}
	if obj.ID == "" {
		return PaymentIntent{}, fmt.Errorf("stripe: payment intent id is empty in event %s", event.ID)
	}
	return PaymentIntent{
		ID:           obj.ID,
		Amount:       obj.Amount,
		ReceiptEmail: obj.ReceiptEmail,
		CustomerID:   obj.Customer,
		Description:  obj.Description,
	}, nil
}
