package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tariffsnap/tariffsnap-backend/internal/api"
	"github.com/tariffsnap/tariffsnap-backend/internal/config"
	"github.com/tariffsnap/tariffsnap-backend/internal/email"
	"github.com/tariffsnap/tariffsnap-backend/internal/sheets"
	stripeinternal "github.com/tariffsnap/tariffsnap-backend/internal/stripe"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port, "sheet_id", cfg.SheetID)

	// ── Stripe ────────────────────────────────────────────────────────────────
	stripeClient := stripeinternal.NewClient(cfg.StripeAPIKey)

	// ── Google Sheets ─────────────────────────────────────────────────────────
	sheetsClient := sheets.NewGoogleClient(
		cfg.SheetID,
		cfg.GoogleCredentialsJSON,
		cfg.GoogleCredentialsFile,
		logger,
	)
	if cfg.GoogleCredentialsJSON == "" {
		logger.Info("sheets: using credentials file", "path", cfg.GoogleCredentialsFile)
	}

	// ── Email (SMTP) ──────────────────────────────────────────────────────────
	mailer := email.NewSMTPSender(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.GmailUser,
		cfg.GmailAppPass,
		logger,
	)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(
		stripeClient,
		sheetsClient,
		mailer,
		api.Config{
			StripeWebhookSecret: cfg.StripeWebhookSecret,
			ReportPriceCents:    cfg.ReportPriceCents,
			Env:                 cfg.Env,
		},
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second, // generous — a webhook request chains three external calls
		IdleTimeout:  120 * time.Second,
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	// Root context cancelled by OS signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until either a signal arrives or the server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Give in-flight webhook requests time to finish their external calls.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
