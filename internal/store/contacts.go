package store

import (
	"context"
	"database/sql"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
)

// CreateContact inserts a contact-form submission.
func (s *Store) CreateContact(ctx context.Context, contact *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (first_name, last_name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, contact, query,
		contact.FirstName, contact.LastName, contact.Email,
		contact.Subject, contact.Message, contact.Status)
}

// GetContactByID retrieves a contact message, soft-deleted rows included.
func (s *Store) GetContactByID(ctx context.Context, id int64) (*models.ContactMessage, error) {
	var contact models.ContactMessage
	err := s.db.GetContext(ctx, &contact, "SELECT * FROM contact_messages WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("contact message", id)
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListActiveContacts retrieves inbox messages, newest first.
func (s *Store) ListActiveContacts(ctx context.Context) ([]models.ContactMessage, error) {
	var contacts []models.ContactMessage
	err := s.db.SelectContext(ctx, &contacts,
		"SELECT * FROM contact_messages WHERE deleted_at IS NULL ORDER BY created_at DESC")
	return contacts, err
}

// ListDeletedContacts retrieves the recycle bin, most recently deleted first.
func (s *Store) ListDeletedContacts(ctx context.Context) ([]models.ContactMessage, error) {
	var contacts []models.ContactMessage
	err := s.db.SelectContext(ctx, &contacts,
		"SELECT * FROM contact_messages WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC")
	return contacts, err
}

// SoftDeleteContact moves a message to the recycle bin; idempotent.
func (s *Store) SoftDeleteContact(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE contact_messages SET deleted_at = COALESCE(deleted_at, NOW()) WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "contact message", id)
}

// RestoreContact brings a message back from the recycle bin.
func (s *Store) RestoreContact(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE contact_messages SET deleted_at = NULL WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "contact message", id)
}

// UpdateContactStatus sets the read/unread flag, independent of deletion.
func (s *Store) UpdateContactStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE contact_messages SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	return requireRow(res, "contact message", id)
}
