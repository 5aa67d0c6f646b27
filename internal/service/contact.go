package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/guardian/internal/models"
	"github.com/sirupsen/logrus"
)

// ContactRepository определяет контракт хранилища профилей.
// Список контактов пишется только целиком через WriteField.
type ContactRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	WriteField(ctx context.Context, userID, field string, value any) error
	GetContactsFromCache(ctx context.Context, userID string) (models.ContactList, error)
	SetContactsCache(ctx context.Context, userID string, list models.ContactList) error
	InvalidateContactsCache(ctx context.Context, userID string) error
}

// ContactListener получает подтверждённый список после каждой успешной записи
// и ошибку каждой неудачной мутации
type ContactListener interface {
	OnContactListChanged(userID string, list models.ContactList)
	OnContactError(userID string, kind models.ErrorKind, message string)
}

// ContactService определяет контракт управления экстренными контактами
type ContactService interface {
	ListContacts(ctx context.Context, id models.Identity) (models.ContactList, error)
	AddContact(ctx context.Context, id models.Identity, fields models.ContactFields) (models.ContactList, error)
	EditContact(ctx context.Context, id models.Identity, contactID string, fields models.ContactFields) (models.ContactList, error)
	DeleteContact(ctx context.Context, id models.Identity, contactID string) (models.ContactList, error)
	PrimaryContact(ctx context.Context, id models.Identity) (*models.EmergencyContact, error)
}

type contactService struct {
	repo     ContactRepository
	listener ContactListener
	logger   *logrus.Logger
	newID    func() string
}

func NewContactService(repo ContactRepository, listener ContactListener, logger *logrus.Logger) ContactService {
	return &contactService{
		repo:     repo,
		listener: listener,
		logger:   logger,
		newID:    newContactID,
	}
}

// newContactID - UUIDv7, упорядочен по времени генерации
func newContactID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ListContacts возвращает подтверждённый список контактов
func (s *contactService) ListContacts(ctx context.Context, id models.Identity) (models.ContactList, error) {
	if !id.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "contact",
		"method":  "ListContacts",
		"user_id": id.UserID,
	})

	list, err := s.load(ctx, id.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load contacts")
		return nil, fmt.Errorf("service: could not list contacts: %w", err)
	}
	return list, nil
}

// AddContact добавляет контакт. Основной контакт снимает флаг со всех остальных.
func (s *contactService) AddContact(ctx context.Context, id models.Identity, fields models.ContactFields) (models.ContactList, error) {
	if !id.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":    "contact",
		"method":     "AddContact",
		"user_id":    id.UserID,
		"is_primary": fields.IsPrimary,
	})
	log.Info("Attempting to add emergency contact")

	current, err := s.load(ctx, id.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load contacts")
		s.reportError(id.UserID, err)
		return nil, fmt.Errorf("service: could not add contact: %w", err)
	}

	contact := models.EmergencyContact{
		ID:           s.newID(),
		Name:         fields.Name,
		Phone:        fields.Phone,
		Relationship: fields.Relationship,
		IsPrimary:    fields.IsPrimary,
	}
	next := current.Add(contact)
	if err := s.commit(ctx, id.UserID, next); err != nil {
		log.WithError(err).Error("Failed to persist contacts")
		s.reportError(id.UserID, err)
		return nil, fmt.Errorf("service: could not add contact: %w", err)
	}

	log.WithField("contact_id", contact.ID).Info("Emergency contact added successfully")
	return next, nil
}

// EditContact заменяет поля контакта. При IsPrimary остальные контакты теряют флаг.
func (s *contactService) EditContact(ctx context.Context, id models.Identity, contactID string, fields models.ContactFields) (models.ContactList, error) {
	if !id.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":    "contact",
		"method":     "EditContact",
		"user_id":    id.UserID,
		"contact_id": contactID,
	})
	log.Info("Attempting to edit emergency contact")

	current, err := s.load(ctx, id.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load contacts")
		s.reportError(id.UserID, err)
		return nil, fmt.Errorf("service: could not edit contact: %w", err)
	}

	next, ok := current.Edit(contactID, fields)
	if !ok {
		log.Warn("Attempted to edit a non-existent contact")
		err = fmt.Errorf("service: contact with id %s not found for edit: %w", contactID, models.ErrNotFound)
		s.reportError(id.UserID, err)
		return nil, err
	}
	if err := s.commit(ctx, id.UserID, next); err != nil {
		log.WithError(err).Error("Failed to persist contacts")
		s.reportError(id.UserID, err)
		return nil, fmt.Errorf("service: could not edit contact: %w", err)
	}

	log.Info("Emergency contact edited successfully")
	return next, nil
}

// DeleteContact удаляет контакт. Удаление основного контакта допустимо.
func (s *contactService) DeleteContact(ctx context.Context, id models.Identity, contactID string) (models.ContactList, error) {
	if !id.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":    "contact",
		"method":     "DeleteContact",
		"user_id":    id.UserID,
		"contact_id": contactID,
	})
	log.Info("Attempting to delete emergency contact")

	current, err := s.load(ctx, id.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load contacts")
		s.reportError(id.UserID, err)
		return nil, fmt.Errorf("service: could not delete contact: %w", err)
	}

	next, ok := current.Remove(contactID)
	if !ok {
		log.Warn("Attempted to delete a non-existent contact")
		err = fmt.Errorf("service: contact with id %s not found for delete: %w", contactID, models.ErrNotFound)
		s.reportError(id.UserID, err)
		return nil, err
	}
	if err := s.commit(ctx, id.UserID, next); err != nil {
		log.WithError(err).Error("Failed to persist contacts")
		s.reportError(id.UserID, err)
		return nil, fmt.Errorf("service: could not delete contact: %w", err)
	}

	log.Info("Emergency contact deleted successfully")
	return next, nil
}

// PrimaryContact возвращает основной контакт или nil
func (s *contactService) PrimaryContact(ctx context.Context, id models.Identity) (*models.EmergencyContact, error) {
	list, err := s.ListContacts(ctx, id)
	if err != nil {
		return nil, err
	}
	primary, ok := list.Primary()
	if !ok {
		return nil, nil
	}
	return &primary, nil
}

// load читает список: сначала кэш, затем профиль
func (s *contactService) load(ctx context.Context, userID string) (models.ContactList, error) {
	cached, err := s.repo.GetContactsFromCache(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to read contacts cache")
	}
	if cached != nil {
		return cached, nil
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStorageFailure, err)
	}
	list := profile.EmergencyContacts
	if list == nil {
		list = models.ContactList{}
	}

	if err := s.repo.SetContactsCache(ctx, userID, list); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to set contacts cache")
	}
	return list, nil
}

// commit записывает весь список одной операцией. Кэш и слушатель обновляются
// только после подтверждения записи.
func (s *contactService) commit(ctx context.Context, userID string, list models.ContactList) error {
	if err := s.repo.WriteField(ctx, userID, models.FieldEmergencyContacts, list); err != nil {
		return fmt.Errorf("%w: %w", models.ErrStorageFailure, err)
	}

	if err := s.repo.SetContactsCache(ctx, userID, list); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to refresh contacts cache, invalidating")
		if err := s.repo.InvalidateContactsCache(ctx, userID); err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Error("Failed to invalidate contacts cache")
		}
	}

	if s.listener != nil {
		s.listener.OnContactListChanged(userID, list)
	}
	return nil
}

// reportError сообщает слушателю об ошибке мутации. Список при этом не меняется.
func (s *contactService) reportError(userID string, err error) {
	if s.listener == nil {
		return
	}
	if kind, ok := models.KindOf(err); ok {
		s.listener.OnContactError(userID, kind, err.Error())
	}
}
