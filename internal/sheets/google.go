package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tariffsnap/tariffsnap-backend/internal/report"
)

// googleClient is the concrete Client backed by the Google Sheets API.
// The service is built per call: credentials problems stay scoped to the
// request that hits them, and the process never holds a connection open.
type googleClient struct {
	sheetID   string
	credsJSON string // inline service-account key; preferred when set
	credsFile string // fallback key file path
	logger    *slog.Logger
}

// NewGoogleClient returns a Client that reads the spreadsheet identified by
// sheetID using a service-account key, taken from credsJSON when non-empty or
// read from credsFile otherwise.
func NewGoogleClient(sheetID, credsJSON, credsFile string, logger *slog.Logger) Client {
	return &googleClient{
		sheetID:   sheetID,
		credsJSON: credsJSON,
		credsFile: credsFile,
		logger:    logger,
	}
}

// CustomerRows authenticates, then runs the two-tier lookup (see LookupRows)
// over the live spreadsheet.
func (c *googleClient) CustomerRows(ctx context.Context, email string) ([]report.Row, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	reader := &apiReader{svc: svc, sheetID: c.sheetID}
	return LookupRows(ctx, reader, c.logger, email)
}

// service builds an authenticated read-only Sheets service for this call.
func (c *googleClient) service(ctx context.Context) (*sheetsapi.Service, error) {
	keyData := []byte(c.credsJSON)
	if c.credsJSON == "" {
		data, err := os.ReadFile(c.credsFile)
		if err != nil {
			return nil, fmt.Errorf("sheets: read credentials file: %w", err)
		}
		keyData = data
	}

	creds, err := google.CredentialsFromJSON(ctx, keyData, sheetsapi.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("sheets: build service: %w", err)
	}
	return svc, nil
}

// apiReader is the WorksheetReader over one authenticated Sheets service.
type apiReader struct {
	svc     *sheetsapi.Service
	sheetID string
}

// Records fetches an entire worksheet and converts it to records. Using the
// bare worksheet name as the range returns all populated cells.
func (r *apiReader) Records(ctx context.Context, worksheet string) ([]report.Row, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.sheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", worksheet, err)
	}
	return RecordsFromValues(resp.Values), nil
}

// RecordsFromValues converts a raw value grid into header-keyed records.
// The first row is the header; data rows shorter than the header are padded
// with empty cells so every record carries every column key.
func RecordsFromValues(values [][]any) []report.Row {
	if len(values) < 2 {
		return []report.Row{}
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = fmt.Sprint(h)
	}

	rows := make([]report.Row, 0, len(values)-1)
	for _, cells := range values[1:] {
		row := make(report.Row, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = fmt.Sprint(cells[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
