// Package report holds the domain types and pure filtering logic for tariff
// impact reports. It has no external dependencies so the row-matching rules
// can be tested without touching the Sheets API or the network.
package report

import "strings"

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Row is one product-level tariff-impact result line as it comes out of the
// spreadsheet: a header-keyed record. Expected keys are Product, Old Cost,
// Tariff%, New Cost and Action, plus either Email or Timestamp depending on
// which worksheet layout the sheet uses. Rows are read-only to this service.
type Row map[string]string

// Placeholder is rendered for any cell the spreadsheet left blank.
const Placeholder = "N/A"

// Get returns the value for key, or Placeholder when the cell is missing or
// empty.
func (r Row) Get(key string) string {
	if v, ok := r[key]; ok && v != "" {
		return v
	}
	return Placeholder
}

// HasEmailColumn reports whether the row set carries a direct Email column.
// The original sheet layouts differ: the Products tab has one row per product
// with an Email column, while older Results tabs only carry the form
// submission Timestamp.
func HasEmailColumn(rows []Row) bool {
	if len(rows) == 0 {
		return false
	}
	_, ok := rows[0]["Email"]
	return ok
}

// ─── FILTERS ──────────────────────────────────────────────────────────────────

// FilterByEmail returns the rows whose Email column matches email
// case-insensitively, preserving source order. An empty result is a valid
// outcome, not an error.
func FilterByEmail(rows []Row, email string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if strings.EqualFold(row["Email"], email) {
			out = append(out, row)
		}
	}
	return out
}

// TimestampFor scans the raw form submissions for the first row whose Email
// matches case-insensitively and returns its Timestamp. The second return
// value is false when the customer never submitted the form.
func TimestampFor(formRows []Row, email string) (string, bool) {
	for _, row := range formRows {
		if strings.EqualFold(row["Email"], email) {
			return row["Timestamp"], true
		}
	}
	return "", false
}

// FilterByTimestamp returns the rows whose Timestamp equals ts exactly,
// preserving source order. Used when the product data has no Email column and
// the customer is joined through their form submission instead.
func FilterByTimestamp(rows []Row, ts string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row["Timestamp"] == ts {
			out = append(out, row)
		}
	}
	return out
}

// ─── ACTION STYLING ───────────────────────────────────────────────────────────

// ActionClass maps an Action cell to the CSS class used in the report email.
// Matching is a case-insensitive substring check with fixed precedence:
// KILL beats PRICE beats KEEP. Anything else renders unstyled.
func ActionClass(action string) string {
	upper := strings.ToUpper(action)
	switch {
	case strings.Contains(upper, "KILL"):
		return "action-kill"
	case strings.Contains(upper, "PRICE"):
		return "action-price"
	case strings.Contains(upper, "KEEP"):
		return "action-keep"
	default:
		return ""
	}
}
