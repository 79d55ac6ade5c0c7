package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/webhook"
)

// stripeClient is the concrete implementation of Client backed by the
// official stripe-go SDK. Construct it with NewClient.
type stripeClient struct {
	apiKey string
}

// NewClient returns a Client backed by the Stripe SDK.
// apiKey is your STRIPE_API_KEY env var.
func NewClient(apiKey string) Client {
	return &stripeClient{apiKey: apiKey}
}

// VerifyWebhook validates the Stripe-Signature header and returns the parsed
// event. Returns an error if the signature is invalid or the tolerance window
// (300 seconds by default in the Stripe SDK) has expired.
func (c *stripeClient) VerifyWebhook(payload []byte, sigHeader string, secret string) (Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return Event{}, fmt.Errorf("stripe: webhook verification failed: %w", err)
	}

	return Event{
		ID:      stripeEvent.ID,
		Type:    string(stripeEvent.Type),
		DataRaw: stripeEvent.Data.Raw,
	}, nil
}

// GetCustomerEmail retrieves a Customer by ID and returns its email address.
// An existing customer with no email is an error — the caller has nowhere to
// send the report.
func (c *stripeClient) GetCustomerEmail(ctx context.Context, customerID string) (string, error) {
	stripe.Key = c.apiKey

	params := &stripe.CustomerParams{}
	params.Context = ctx

	cust, err := customer.Get(customerID, params)
	if err != nil {
		return "", fmt.Errorf("stripe: get customer %s: %w", customerID, err)
	}
	if cust.Email == "" {
		return "", fmt.Errorf("stripe: customer %s has no email", customerID)
	}

	return cust.Email, nil
}
