// Package config loads and validates all environment variables at startup.
// Every other package receives typed values — nothing reads os.Getenv directly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// defaultSheetID is the production TariffSnap results spreadsheet. Override
// with GOOGLE_SHEET_ID for staging sheets.
const defaultSheetID = "17t8iwdkzCdXBev13lRmERSH5v1OFaWUfFF8-5Ac8GTU"

// Config is the fully-parsed application configuration. It is constructed
// once in main and passed by value into each component — nothing mutates it
// after startup.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port string // default "5000"
	Env  string // "development" | "staging" | "production"

	// ── Stripe ────────────────────────────────────────────────────────────────
	StripeAPIKey        string
	StripeWebhookSecret string

	// ReportPriceCents is the exact amount of the fixed-price report offer.
	// Payment events with any other amount are acknowledged but ignored so
	// unrelated charges on the same Stripe account never trigger a report.
	ReportPriceCents int64 // default 5900 ($59.00)

	// ── Google Sheets ─────────────────────────────────────────────────────────
	SheetID string // spreadsheet key, default production sheet

	// GoogleCredentialsJSON is the inline service-account key. When empty the
	// sheets client falls back to reading GoogleCredentialsFile from disk.
	GoogleCredentialsJSON string
	GoogleCredentialsFile string // default "credentials.json"

	// ── SMTP (Gmail) ──────────────────────────────────────────────────────────
	SMTPHost     string // default "smtp.gmail.com"
	SMTPPort     string // default "465" (implicit TLS)
	GmailUser    string // sender address and SMTP login
	GmailAppPass string // Gmail app password, not the account password
}

// Load reads all environment variables and returns a validated Config.
// A .env file in the working directory is loaded first when present; real
// environment variables always take precedence because godotenv.Load never
// overwrites existing keys.
func Load() (*Config, error) {
	_ = godotenv.Load() // file absent — that's fine

	c := &Config{
		Port:                  getEnv("PORT", "5000"),
		Env:                   getEnv("ENV", "development"),
		StripeAPIKey:          os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ReportPriceCents:      getEnvAsInt64("REPORT_PRICE_CENTS", 5900),
		SheetID:               getEnv("GOOGLE_SHEET_ID", defaultSheetID),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		SMTPHost:              getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:              getEnv("SMTP_PORT", "465"),
		GmailUser:             os.Getenv("GMAIL_USER"),
		GmailAppPass:          os.Getenv("GMAIL_APP_PASSWORD"),
	}

	return c, c.validate()
}

// validate only enforces the values the server cannot limp along without.
// Sheets and SMTP credentials are deliberately not required here: their
// absence surfaces when the dependent call runs, and the webhook endpoint
// must stay up regardless.
func (c *Config) validate() error {
	var errs []error

	required := map[string]string{
		"STRIPE_WEBHOOK_SECRET": c.StripeWebhookSecret,
		"STRIPE_API_KEY":        c.StripeAPIKey,
	}

	for name, val := range required {
		if val == "" {
			errs = append(errs, fmt.Errorf("missing required env var: %s", name))
		}
	}

	if c.ReportPriceCents <= 0 {
		errs = append(errs, fmt.Errorf("REPORT_PRICE_CENTS must be positive, got %d", c.ReportPriceCents))
	}

	return errors.Join(errs...)
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return defaultValue
}
