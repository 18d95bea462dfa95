package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/callowaylaw/backend/internal/config"
)

func TestNewSMTP_MissingHost_Disabled(t *testing.T) {
	m := NewSMTP(config.SMTPConfig{From: "noreply@callowaylaw.example"})
	if m.Enabled() {
		t.Error("expected mailer to be disabled without SMTP_HOST")
	}
}

func TestNewSMTP_MissingFrom_Disabled(t *testing.T) {
	m := NewSMTP(config.SMTPConfig{Host: "smtp.example.com"})
	if m.Enabled() {
		t.Error("expected mailer to be disabled without MAIL_FROM")
	}
}

func TestSend_Disabled_IsNoOp(t *testing.T) {
	m := NewSMTP(config.SMTPConfig{})
	err := m.Send(context.Background(), "someone@example.com", "Hello", "<p>Hi</p>")
	if err != nil {
		t.Errorf("disabled Send should be a no-op, got error: %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := string(BuildMessage("noreply@callowaylaw.example", "client@example.com",
		"Re: Consultation", "<p>Thanks for reaching out.</p>"))

	for _, want := range []string{
		"From: noreply@callowaylaw.example\r\n",
		"To: client@example.com\r\n",
		"Subject: Re: Consultation\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"<p>Thanks for reaching out.</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}

	// Headers and body must be separated by a blank line.
	if !strings.Contains(msg, "\r\n\r\n<p>") {
		t.Error("expected blank line between headers and body")
	}
}
