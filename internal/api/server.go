// Package api implements the HTTP layer for the TariffSnap webhook server.
// Handlers are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tariffsnap/tariffsnap-backend/internal/email"
	"github.com/tariffsnap/tariffsnap-backend/internal/sheets"
	stripeinternal "github.com/tariffsnap/tariffsnap-backend/internal/stripe"
)

// ServiceName and ServiceVersion are reported by the health endpoint.
const (
	ServiceName    = "TariffSnap Webhook Server"
	ServiceVersion = "1.0.0"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// StripeWebhookSecret is the signing secret from the Stripe dashboard.
	StripeWebhookSecret string

	// ReportPriceCents is the exact amount that identifies a report purchase.
	ReportPriceCents int64

	// Env is "production", "staging", or "development".
	Env string
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// stripe verifies webhook signatures and resolves customer emails.
	stripe stripeinternal.Client

	// sheets looks up a customer's pre-computed report rows.
	sheets sheets.Client

	// mailer renders and sends the report email.
	mailer email.Sender

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(
	stripeClient stripeinternal.Client,
	sheetsClient sheets.Client,
	mailer email.Sender,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		stripe: stripeClient,
		sheets: sheetsClient,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	// A request performs up to three sequential external calls; give the slowest
	// chain room before the framework cuts it off.
	r.Use(middleware.Timeout(60 * time.Second))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/", s.handleHealth)

	// ── Stripe webhook — no auth (signature verification inside handler) ──────
	r.Post("/webhook/stripe", s.handleStripeWebhook)

	return r
}

// handleHealth reports that the process is up. It does not probe Stripe,
// Sheets, or SMTP — those fail per-request by design.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}
