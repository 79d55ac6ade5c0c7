package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	jwemail "github.com/jordan-wright/email"
)

// smtpSender is the concrete Sender delivering via Gmail's SMTPS endpoint
// (implicit TLS on port 465, plain auth with an app password).
type smtpSender struct {
	host   string
	port   string
	user   string // sender address and login
	pass   string
	logger *slog.Logger
}

// NewSMTPSender returns a Sender that delivers email over SMTPS.
func NewSMTPSender(host, port, user, pass string, logger *slog.Logger) Sender {
	return &smtpSender{
		host:   host,
		port:   port,
		user:   user,
		pass:   pass,
		logger: logger,
	}
}

// SendReport renders and sends the report. The connection lives only for the
// duration of this call.
//
// jordan-wright/email has no context-aware send, so ctx cannot cancel a dial
// already in flight; it is checked before the connection is opened, and a
// hung exchange is bounded by the server's write timeout instead.
func (s *smtpSender) SendReport(ctx context.Context, p ReportParams) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("email: %w", err)
	}

	html, err := renderReport(p.StoreName, p.Rows, time.Now())
	if err != nil {
		return err
	}

	// Stable per-send ID for correlating the SMTP exchange in logs.
	sendID := uuid.NewString()

	e := jwemail.NewEmail()
	e.From = s.user
	e.To = []string{p.To}
	e.Subject = reportSubject
	e.HTML = []byte(html)
	e.Headers.Set("Message-Id", fmt.Sprintf("<%s@%s>", sendID, s.host))

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	s.logger.Info("email: sending report",
		"send_id", sendID,
		"to", p.To,
		"rows", len(p.Rows),
	)

	if err := e.SendWithTLS(addr, auth, &tls.Config{ServerName: s.host}); err != nil {
		return fmt.Errorf("email: smtp send: %w", err)
	}

	s.logger.Info("email: report sent", "send_id", sendID, "to", p.To)
	return nil
}
