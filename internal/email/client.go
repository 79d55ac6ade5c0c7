// Package email renders the tariff impact report and delivers it over
// authenticated SMTP.
package email

import (
	"context"

	"github.com/tariffsnap/tariffsnap-backend/internal/report"
)

// ReportParams holds the data needed to send one report email.
type ReportParams struct {
	To        string       // recipient email address
	StoreName string       // from the payment description; may be empty
	Rows      []report.Row // one table row per product
}

// Sender is the interface the webhook handler uses to send the report.
// Tests inject a stub that records calls without opening an SMTP connection.
type Sender interface {
	// SendReport renders the report HTML and sends it as a single email.
	// One SMTPS connection per call — opened, authenticated, and closed
	// inside the call.
	SendReport(ctx context.Context, p ReportParams) error
}
