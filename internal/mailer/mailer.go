// Package mailer sends transactional email over SMTP. The sender is
// configured once at startup; when configuration is missing or the initial
// verification dial fails, it degrades to a disabled no-op whose capability
// is visible through Enabled() rather than silently pretending success.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/callowaylaw/backend/internal/config"
)

// Mailer is the outbound mail capability exposed to services.
type Mailer interface {
	// Enabled reports whether mail delivery is configured and verified.
	Enabled() bool
	// Send delivers an HTML email to a single recipient.
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer is the production Mailer backed by an SMTP server.
type SMTPMailer struct {
	cfg     config.SMTPConfig
	enabled bool
}

// Ensure SMTPMailer implements Mailer at compile time.
var _ Mailer = (*SMTPMailer)(nil)

// NewSMTP builds an SMTPMailer from configuration and verifies it with a
// single dial. On missing configuration or a failed dial the returned mailer
// is disabled; the outcome is logged either way.
func NewSMTP(cfg config.SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg}

	if cfg.Host == "" || cfg.From == "" {
		slog.Warn("mail disabled: SMTP_HOST or MAIL_FROM not configured")
		return m
	}
	if err := m.verify(); err != nil {
		slog.Warn("mail disabled: SMTP verification failed", "host", cfg.Host, "error", err)
		return m
	}

	m.enabled = true
	slog.Info("mail enabled", "host", cfg.Host, "port", cfg.Port, "secure", cfg.Secure)
	return m
}

// Enabled reports whether delivery is available.
func (m *SMTPMailer) Enabled() bool { return m.enabled }

// Send delivers an HTML email to the given recipient. Calling Send on a
// disabled mailer is a logged no-op.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.enabled {
		slog.Info("mail disabled, skipping send", "to", to, "subject", subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c, err := m.dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer c.Close()

	if m.cfg.User != "" {
		if err := c.Auth(sasl.NewPlainClient("", m.cfg.User, m.cfg.Password)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(m.cfg.From, nil); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to, nil); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write(BuildMessage(m.cfg.From, to, subject, htmlBody)); err != nil {
		wc.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return c.Quit()
}

// dial connects to the configured server: implicit TLS when Secure is set
// (465-style), otherwise STARTTLS.
func (m *SMTPMailer) dial() (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if m.cfg.Secure {
		return smtp.DialTLS(addr, nil)
	}
	return smtp.DialStartTLS(addr, nil)
}

// verify dials the server once to confirm the configuration is usable.
func (m *SMTPMailer) verify() error {
	c, err := m.dial()
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.Noop(); err != nil {
		return err
	}
	return c.Quit()
}

// BuildMessage assembles an RFC 5322 message with an HTML body.
func BuildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
