// Package sheets fetches a customer's pre-computed report rows from the
// TariffSnap results spreadsheet.
package sheets

import (
	"context"

	"github.com/tariffsnap/tariffsnap-backend/internal/report"
)

// Client is the interface the api package uses to look up report rows.
// Tests inject a stub that returns canned rows without hitting Google.
type Client interface {
	// CustomerRows returns the ordered report rows belonging to email.
	// An empty slice with a nil error means the customer genuinely has no
	// rows; a non-nil error means the lookup itself failed (auth, network,
	// missing sheet). Callers decide how to collapse the two — the webhook
	// handler answers no_sheet_data for both, but logs them differently.
	CustomerRows(ctx context.Context, email string) ([]report.Row, error)
}
