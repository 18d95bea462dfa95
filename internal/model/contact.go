package model

import "time"

// Contact statuses. StatusReplied is the only transition driven by system
// logic (the admin reply action); admins may set any other free-text value.
const (
	StatusNew     = "new"
	StatusReplied = "replied"
)

// Contact is a stored contact-form submission from a site visitor.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Reply is an admin-authored response to a Contact, paired with an outbound
// email. Replies are append-only and are removed only when their contact is
// deleted (cascade).
type Reply struct {
	ID        int64     `json:"id"`
	ContactID int64     `json:"contact_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListOptions carries filter and pagination parameters for the admin
// contact listing.
type ContactListOptions struct {
	// Status filters by contact status. Empty string and "all" return all rows.
	Status string
	// Limit caps the number of rows returned; zero or negative means no cap.
	Limit  int
	Offset int
}
