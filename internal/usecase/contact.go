package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rogerjeasy/bav-roger/internal/domain"
)

const (
	minNameLen    = 2
	minSubjectLen = 5
	minMessageLen = 10
)

// ContactStore persists contact-form submissions.
type ContactStore interface {
	SaveContact(ctx context.Context, sub domain.ContactSubmission) error
}

// ContactService validates and persists contact-form submissions.
type ContactService struct {
	store ContactStore
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactOutput struct {
	ID string
}

func NewContactService(s ContactStore) (*ContactService, error) {
	if s == nil {
		return nil, errors.New("usecase: contact store must not be nil")
	}
	return &ContactService{store: s}, nil
}

// Submit validates the submission and persists it, returning the generated
// identifier.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (ContactOutput, error) {
	if utf8.RuneCountInString(in.Name) < minNameLen {
		return ContactOutput{}, newError(ErrorInvalidInput, "name_too_short", nil)
	}
	if !validEmail(in.Email) {
		return ContactOutput{}, newError(ErrorInvalidInput, "invalid_email", nil)
	}
	if utf8.RuneCountInString(in.Subject) < minSubjectLen {
		return ContactOutput{}, newError(ErrorInvalidInput, "subject_too_short", nil)
	}
	if utf8.RuneCountInString(in.Message) < minMessageLen {
		return ContactOutput{}, newError(ErrorInvalidInput, "message_too_short", nil)
	}

	sub := domain.ContactSubmission{
		ID:        newUUID(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveContact(ctx, sub); err != nil {
		return ContactOutput{}, newError(ErrorInternal, "dynamodb_write_error", err)
	}

	return ContactOutput{ID: sub.ID}, nil
}

// validEmail accepts bare addresses only, not RFC 5322 name-and-address
// forms.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
