package service

import (
	"context"

	"github.com/callowaylaw/backend/internal/model"
)

// ReplyInput carries the parameters of an admin reply.
type ReplyInput struct {
	ContactID int64
	// Email is the recipient address (usually the contact's own address,
	// but the admin may override it).
	Email   string
	Subject string
	Message string
}

// ContactService defines the business logic for contact submissions and
// their admin management.
type ContactService interface {
	// Submit stores a new contact and sends the operator notification email.
	// The c.ID, c.Status, and c.CreatedAt fields are populated by the
	// implementation.
	Submit(ctx context.Context, c *model.Contact) error

	// List returns contacts according to the given options, newest first.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)

	// History returns a contact and its replies, oldest reply first.
	// Returns repository.ErrNotFound for an unknown id.
	History(ctx context.Context, id int64) (*model.Contact, []*model.Reply, error)

	// UpdateStatus sets an arbitrary status string on a contact.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Delete removes a contact and, by cascade, its replies.
	Delete(ctx context.Context, id int64) error

	// Reply emails the given address and records a Reply row, marking the
	// contact "replied" in the same transaction. mailSent reports whether
	// the email actually went out (false when the mailer is disabled).
	Reply(ctx context.Context, in ReplyInput) (mailSent bool, err error)
}
