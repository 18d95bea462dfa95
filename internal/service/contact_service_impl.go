package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/callowaylaw/backend/internal/mailer"
	"github.com/callowaylaw/backend/internal/model"
	"github.com/callowaylaw/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
	mail mailer.Mailer
	// notifyTo receives the operator notification for each submission.
	notifyTo string
}

// NewContactService creates a ContactService backed by the given repository
// and mailer.
func NewContactService(repo repository.ContactRepository, mail mailer.Mailer, notifyTo string) ContactService {
	if mail.Enabled() && notifyTo == "" {
		slog.Warn("MAIL_TO not configured, contact notifications will be skipped")
	}
	return &contactServiceImpl{repo: repo, mail: mail, notifyTo: notifyTo}
}

// Submit sends the operator notification and persists the contact with
// status "new". A failed send fails the whole submission; a disabled mailer
// skips the notification and still persists.
func (s *contactServiceImpl) Submit(ctx context.Context, c *model.Contact) error {
	c.Status = model.StatusNew

	if s.mail.Enabled() && s.notifyTo != "" {
		subject := "New contact form submission: " + c.Subject
		if err := s.mail.Send(ctx, s.notifyTo, subject, notificationHTML(c)); err != nil {
			slog.Error("contact notification failed", "error", err)
			return fmt.Errorf("send notification: %w", err)
		}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	slog.Info("contact submitted", "contact_id", c.ID, "subject", c.Subject)
	return nil
}

// List returns contacts according to the given filter/pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	return s.repo.List(ctx, opts)
}

// History returns a contact and its replies, oldest reply first.
func (s *contactServiceImpl) History(ctx context.Context, id int64) (*model.Contact, []*model.Reply, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	replies, err := s.repo.ListReplies(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return c, replies, nil
}

// UpdateStatus sets an arbitrary status string on a contact.
func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id int64, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a contact and its replies.
func (s *contactServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("contact deleted", "contact_id", id)
	return nil
}

// Reply emails the recipient when mail is enabled, then records the Reply and
// marks the contact "replied" atomically. A disabled mailer skips the send
// (mailSent=false) but still records the reply.
func (s *contactServiceImpl) Reply(ctx context.Context, in ReplyInput) (bool, error) {
	if _, err := s.repo.FindByID(ctx, in.ContactID); err != nil {
		return false, err
	}

	mailSent := false
	if s.mail.Enabled() {
		if err := s.mail.Send(ctx, in.Email, in.Subject, replyHTML(in.Message)); err != nil {
			slog.Error("reply email failed", "contact_id", in.ContactID, "error", err)
			return false, fmt.Errorf("send reply: %w", err)
		}
		mailSent = true
	} else {
		slog.Info("mail disabled, reply recorded without sending", "contact_id", in.ContactID)
	}

	if _, err := s.repo.CreateReplyAndMarkReplied(ctx, in.ContactID, in.Message); err != nil {
		return mailSent, err
	}
	slog.Info("reply recorded", "contact_id", in.ContactID, "mail_sent", mailSent)
	return mailSent, nil
}

// notificationHTML renders the operator notification for a new submission.
func notificationHTML(c *model.Contact) string {
	var b strings.Builder
	b.WriteString("<h2>New contact form submission</h2><table>")
	row := func(label, value string) {
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			label, html.EscapeString(value))
	}
	row("Name", c.Name)
	row("Email", c.Email)
	if c.Phone != "" {
		row("Phone", c.Phone)
	}
	row("Subject", c.Subject)
	b.WriteString("</table><p>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(c.Message), "\n", "<br>"))
	b.WriteString("</p>")
	return b.String()
}

// replyHTML renders an admin reply message as a simple HTML body.
func replyHTML(message string) string {
	return "<p>" + strings.ReplaceAll(html.EscapeString(message), "\n", "<br>") + "</p>"
}
