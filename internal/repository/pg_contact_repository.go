package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/callowaylaw/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository defines the persistence interface for contacts and their
// replies. It is defined here (in repository) to avoid an import cycle with
// service.
type ContactRepository interface {
	Create(ctx context.Context, c *model.Contact) error
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	FindByID(ctx context.Context, id int64) (*model.Contact, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	ListReplies(ctx context.Context, contactID int64) ([]*model.Reply, error)
	CreateReplyAndMarkReplied(ctx context.Context, contactID int64, message string) (*model.Reply, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Create inserts a new contacts row and populates c.ID and c.CreatedAt from
// the RETURNING clause.
func (r *PgContactRepository) Create(ctx context.Context, c *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, phone, subject, message, status)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		 RETURNING id, created_at`,
		c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
}

// List returns contacts newest-first, optionally filtered by status and
// paginated. Status "" or "all" returns all rows; Limit <= 0 returns all rows.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	query := `SELECT id, name, email, COALESCE(phone, ''), subject, message, status, created_at
	          FROM contacts`
	var args []any

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		query += ` WHERE status = $1`
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if opts.Limit > 0 {
		args = append(args, opts.Limit, opts.Offset)
		if len(args) == 3 {
			query += ` LIMIT $2 OFFSET $3`
		} else {
			query += ` LIMIT $1 OFFSET $2`
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// FindByID returns the contact with the given id, or ErrNotFound.
func (r *PgContactRepository) FindByID(ctx context.Context, id int64) (*model.Contact, error) {
	var c model.Contact
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(phone, ''), subject, message, status, created_at
		 FROM contacts WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatus sets an arbitrary status string on a contact.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	ct, err := r.pool.Exec(ctx, `UPDATE contacts SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a contact. Its replies go with it via ON DELETE CASCADE.
func (r *PgContactRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReplies returns the replies for a contact, oldest first.
func (r *PgContactRepository) ListReplies(ctx context.Context, contactID int64) ([]*model.Reply, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, contact_id, message, created_at
		 FROM replies WHERE contact_id = $1
		 ORDER BY created_at ASC, id ASC`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []*model.Reply
	for rows.Next() {
		var rep model.Reply
		if err := rows.Scan(&rep.ID, &rep.ContactID, &rep.Message, &rep.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, &rep)
	}
	return replies, rows.Err()
}

// CreateReplyAndMarkReplied records a reply and sets the contact's status to
// "replied" in a single transaction, so the two writes cannot diverge.
// Returns ErrNotFound when the contact does not exist.
func (r *PgContactRepository) CreateReplyAndMarkReplied(ctx context.Context, contactID int64, message string) (*model.Reply, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rep := &model.Reply{ContactID: contactID, Message: message}
	err = tx.QueryRow(ctx,
		`INSERT INTO replies (contact_id, message) VALUES ($1, $2)
		 RETURNING id, created_at`,
		contactID, message,
	).Scan(&rep.ID, &rep.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, ErrNotFound
		}
		return nil, err
	}

	ct, err := tx.Exec(ctx, `UPDATE contacts SET status = $1 WHERE id = $2`,
		model.StatusReplied, contactID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rep, nil
}
