package api

import (
	"io"
	"net/http"

	"github.com/tariffsnap/tariffsnap-backend/internal/email"
	stripeinternal "github.com/tariffsnap/tariffsnap-backend/internal/stripe"
)

// ─── POST /webhook/stripe ─────────────────────────────────────────────────────

// handleStripeWebhook is the entry point for all Stripe webhook deliveries.
//
// The flow is strictly linear, terminal at the first matching branch:
// verify signature → filter event type → filter amount → resolve email →
// look up rows → send report → respond. There is no persistence and no
// dedup: a re-delivered event re-sends the email, and redelivery on failure
// is left to Stripe.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	// Read the raw body before anything else so the signature check runs
	// against the exact bytes Stripe signed.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB — Stripe events never approach this
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	// ── 1. Verify the Stripe-Signature header ─────────────────────────────────
	sig := r.Header.Get("Stripe-Signature")
	event, err := s.stripe.VerifyWebhook(payload, sig, s.cfg.StripeWebhookSecret)
	if err != nil {
		s.logger.Warn("webhook: invalid signature", "error", err, logField(r))
		respondError(w, http.StatusBadRequest, "invalid_signature")
		return
	}

	s.logger.Info("webhook: event received", "event_id", event.ID, "type", event.Type, logField(r))

	// ── 2. Filter event type ──────────────────────────────────────────────────
	// Anything that isn't a succeeded payment is acknowledged without side
	// effects so Stripe stops retrying.
	if event.Type != "payment_intent.succeeded" {
		respond(w, http.StatusOK, map[string]any{"status": "success", "processed": false})
		return
	}

	pi, err := stripeinternal.ExtractPaymentIntent(event)
	if err != nil {
		s.logger.Error("webhook: malformed payment intent", "event_id", event.ID, "error", err, logField(r))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// ── 3. Filter amount ──────────────────────────────────────────────────────
	// Only the fixed-price report offer triggers a send. Other charges on the
	// same account are acknowledged but ignored.
	if pi.Amount != s.cfg.ReportPriceCents {
		s.logger.Warn("webhook: amount mismatch",
			"amount", pi.Amount,
			"expected", s.cfg.ReportPriceCents,
			logField(r),
		)
		respond(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "amount_mismatch"})
		return
	}

	// ── 4. Resolve the customer email ─────────────────────────────────────────
	// receipt_email wins; the customer object is only consulted when it is
	// absent. No resolvable email is a data problem upstream — Stripe's own
	// redelivery is the only retry.
	customerEmail := pi.ReceiptEmail
	if customerEmail == "" && pi.CustomerID != "" {
		customerEmail, err = s.stripe.GetCustomerEmail(r.Context(), pi.CustomerID)
		if err != nil {
			s.logger.Error("webhook: customer lookup failed",
				"customer_id", pi.CustomerID,
				"error", err,
				logField(r),
			)
			customerEmail = ""
		}
	}
	if customerEmail == "" {
		s.logger.Error("webhook: no customer email on payment intent", "pi", pi.ID, logField(r))
		respondError(w, http.StatusBadRequest, "no_email")
		return
	}

	s.logger.Info("webhook: processing payment", "email", customerEmail, "pi", pi.ID, logField(r))

	// ── 5. Look up the customer's report rows ─────────────────────────────────
	// A failed lookup and a customer with no rows produce the same response;
	// the log line is the only place the two are told apart.
	rows, err := s.sheets.CustomerRows(r.Context(), customerEmail)
	if err != nil {
		s.logger.Error("webhook: sheet lookup failed", "email", customerEmail, "error", err, logField(r))
		rows = nil
	}
	if len(rows) == 0 {
		s.logger.Error("webhook: no sheet data for customer", "email", customerEmail, logField(r))
		respondError(w, http.StatusInternalServerError, "no_sheet_data")
		return
	}

	// ── 6. Send the report ────────────────────────────────────────────────────
	err = s.mailer.SendReport(r.Context(), email.ReportParams{
		To:        customerEmail,
		StoreName: pi.Description,
		Rows:      rows,
	})
	if err != nil {
		s.logger.Error("webhook: email send failed", "email", customerEmail, "error", err, logField(r))
		respondError(w, http.StatusInternalServerError, "email_failed")
		return
	}

	respond(w, http.StatusOK, map[string]any{"status": "success", "email_sent": true})
}
