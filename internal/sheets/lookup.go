package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tariffsnap/tariffsnap-backend/internal/report"
)

// Worksheet names, in lookup order. The Products tab is the current layout
// (one row per product, Email column); Results is the older layout reached
// through the form-submission timestamp join.
const (
	primaryWorksheet   = "Products"
	secondaryWorksheet = "Results"
	formWorksheet      = "Form Responses 1"
)

// WorksheetReader fetches one worksheet as header-keyed records. The Google
// client implements it over the Sheets API; tests inject a stub so the lookup
// strategy can be exercised without the network.
type WorksheetReader interface {
	Records(ctx context.Context, worksheet string) ([]report.Row, error)
}

// LookupRows implements the two-tier customer lookup against r:
//
//  1. Read all records from Products (falling back to Results when the tab
//     does not exist). If the records carry an Email column, filter on it —
//     terminal, even when the result is empty.
//  2. Otherwise find the customer's submission in Form Responses 1 and filter
//     the records by its Timestamp. No submission → empty result.
func LookupRows(ctx context.Context, r WorksheetReader, logger *slog.Logger, email string) ([]report.Row, error) {
	rows, err := r.Records(ctx, primaryWorksheet)
	if err != nil {
		logger.Info("sheets: primary worksheet unavailable, falling back",
			"primary", primaryWorksheet,
			"fallback", secondaryWorksheet,
			"error", err,
		)
		rows, err = r.Records(ctx, secondaryWorksheet)
		if err != nil {
			return nil, fmt.Errorf("sheets: read records: %w", err)
		}
	}

	if report.HasEmailColumn(rows) {
		matched := report.FilterByEmail(rows, email)
		logger.Info("sheets: direct email filter", "email", email, "rows", len(matched))
		return matched, nil
	}

	// No Email column — join through the raw form submissions.
	formRows, err := r.Records(ctx, formWorksheet)
	if err != nil {
		return nil, fmt.Errorf("sheets: read form responses: %w", err)
	}

	ts, ok := report.TimestampFor(formRows, email)
	if !ok {
		logger.Warn("sheets: customer not found in form responses", "email", email)
		return []report.Row{}, nil
	}

	matched := report.FilterByTimestamp(rows, ts)
	logger.Info("sheets: timestamp join filter",
		"email", email,
		"timestamp", ts,
		"rows", len(matched),
	)
	return matched, nil
}
