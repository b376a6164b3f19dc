package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	EventContactCreated = "contact.created"
	EventContactDigest  = "contact.digest"
)

// EventPublisher fans events out to connected admin sessions.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

type ContactInput struct {
	FullName string
	Email    string
	Message  string
}

type ContactService interface {
	ListContacts(unreadOnly bool) ([]model.Contact, error)
	GetContactByID(id uint) (*model.Contact, error)
	CreateContact(input ContactInput) (*model.Contact, error)
	MarkRead(id uint, isRead bool) (*model.Contact, error)
	CountUnread() (int64, error)
	DeleteContact(id uint) error
}

type contactService struct {
	repo   repository.ContactRepository
	events EventPublisher
}

// NewContactService builds the service. events may be nil.
func NewContactService(repo repository.ContactRepository, events EventPublisher) ContactService {
	return &contactService{repo: repo, events: events}
}

func (s *contactService) ListContacts(unreadOnly bool) ([]model.Contact, error) {
	return s.repo.FindAll(repository.ContactFilter{UnreadOnly: unreadOnly})
}

func (s *contactService) GetContactByID(id uint) (*model.Contact, error) {
	contact, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *contactService) CreateContact(input ContactInput) (*model.Contact, error) {
	if blank(input.FullName) {
		return nil, required("full_name", "Full name")
	}
	if blank(input.Email) {
		return nil, required("email", "Email")
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(input.Email))
	if err != nil {
		return nil, invalid("email", "Email is not valid")
	}
	if blank(input.Message) {
		return nil, required("message", "Message")
	}

	contact := &model.Contact{
		FullName: strings.TrimSpace(input.FullName),
		Email:    addr.Address,
		Message:  strings.TrimSpace(input.Message),
	}
	if err := s.repo.Create(contact); err != nil {
		return nil, err
	}

	logger.Info("Contact message received", map[string]interface{}{
		"contact_id": contact.ID,
	})

	if s.events != nil {
		s.events.Publish(EventContactCreated, contact)
	}
	return contact, nil
}

func (s *contactService) MarkRead(id uint, isRead bool) (*model.Contact, error) {
	if err := s.repo.SetRead(id, isRead); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return s.GetContactByID(id)
}

func (s *contactService) CountUnread() (int64, error) {
	return s.repo.CountUnread()
}

func (s *contactService) DeleteContact(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}

	logger.Info("Contact message deleted", map[string]interface{}{
		"contact_id": id,
	})
	return nil
}
