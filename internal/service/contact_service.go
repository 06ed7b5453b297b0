package service

import (
	"context"
	"fmt"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// ContactStore is the persistence surface the contact inbox needs.
type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.ContactMessage) error
	GetContactByID(ctx context.Context, id int64) (*models.ContactMessage, error)
	ListActiveContacts(ctx context.Context) ([]models.ContactMessage, error)
	ListDeletedContacts(ctx context.Context) ([]models.ContactMessage, error)
	SoftDeleteContact(ctx context.Context, id int64) error
	RestoreContact(ctx context.Context, id int64) error
	UpdateContactStatus(ctx context.Context, id int64, status string) error
}

// ContactService is the contact-form inbox: the shared soft-delete lifecycle
// plus a read/unread toggle that is independent of deletion.
type ContactService struct {
	store  ContactStore
	logger *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(store ContactStore) *ContactService {
	return &ContactService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// SubmitContactRequest carries a public contact-form submission.
type SubmitContactRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// SubmitContact validates and stores a submission as unread.
func (s *ContactService) SubmitContact(ctx context.Context, req *SubmitContactRequest) (*models.ContactMessage, error) {
	ctx, span := util.StartSpan(ctx, "ContactService.SubmitContact")
	defer span.End()

	for field, value := range map[string]string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"subject":    req.Subject,
		"message":    req.Message,
	} {
		if value == "" {
			return nil, apperr.Invalid(field, "required")
		}
	}

	contact := &models.ContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.ContactStatusUnread,
	}

	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	util.ContactMessagesTotal.Inc()
	s.logger.Info("Contact message received", zap.Int64("contact_id", contact.ID))
	return contact, nil
}

// ListActiveContacts retrieves inbox messages, newest first.
func (s *ContactService) ListActiveContacts(ctx context.Context) ([]models.ContactMessage, error) {
	return s.store.ListActiveContacts(ctx)
}

// ListDeletedContacts retrieves the recycle bin, most recently deleted first.
func (s *ContactService) ListDeletedContacts(ctx context.Context) ([]models.ContactMessage, error) {
	return s.store.ListDeletedContacts(ctx)
}

// SoftDeleteContact moves a message to the recycle bin; idempotent.
func (s *ContactService) SoftDeleteContact(ctx context.Context, id int64) error {
	return s.store.SoftDeleteContact(ctx, id)
}

// RestoreContact brings a message back from the recycle bin.
func (s *ContactService) RestoreContact(ctx context.Context, id int64) error {
	return s.store.RestoreContact(ctx, id)
}

// ToggleReadStatus flips a message between read and unread. The toggle works
// on recycle-bin messages too; read state and deletion are independent.
func (s *ContactService) ToggleReadStatus(ctx context.Context, id int64) (*models.ContactMessage, error) {
	contact, err := s.store.GetContactByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := models.ContactStatusRead
	if contact.Status == models.ContactStatusRead {
		next = models.ContactStatusUnread
	}

	if err := s.store.UpdateContactStatus(ctx, id, next); err != nil {
		return nil, err
	}

	contact.Status = next
	return contact, nil
}
