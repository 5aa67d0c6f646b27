package service

import (
	"context"
	"fmt"

	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/session"
	"github.com/sirupsen/logrus"
)

// FixSink принимает фиксы и ошибки датчика от устройства
type FixSink interface {
	Push(ctx context.Context, userID string, c models.Coordinate) error
	PushFault(ctx context.Context, userID, message string) error
}

// SafetyService определяет контракт работы с сессией безопасности
type SafetyService interface {
	OpenSession(ctx context.Context, id models.Identity) (*models.SessionView, error)
	GetSession(ctx context.Context, id models.Identity) (*models.SessionView, error)
	CloseSession(ctx context.Context, id models.Identity) error
	StartTracking(ctx context.Context, id models.Identity) (*models.SessionView, error)
	StopTracking(ctx context.Context, id models.Identity) (*models.SessionView, error)
	PressBegin(ctx context.Context, id models.Identity) (*models.SessionView, error)
	PressEnd(ctx context.Context, id models.Identity) (*models.SessionView, error)
	ResolveAlert(ctx context.Context, id models.Identity) (*models.SessionView, error)
	ReportFix(ctx context.Context, id models.Identity, c models.Coordinate) error
	ReportFault(ctx context.Context, id models.Identity, message string) error
}

type safetyService struct {
	sessions *session.Manager
	contacts ContactService
	fixes    FixSink
	logger   *logrus.Logger
}

func NewSafetyService(sessions *session.Manager, contacts ContactService, fixes FixSink, logger *logrus.Logger) SafetyService {
	return &safetyService{
		sessions: sessions,
		contacts: contacts,
		fixes:    fixes,
		logger:   logger,
	}
}

func (s *safetyService) log(method string, id models.Identity) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"service": "safety",
		"method":  method,
		"user_id": id.UserID,
	})
}

// OpenSession открывает дашборд: создает сессию, если её ещё нет
func (s *safetyService) OpenSession(ctx context.Context, id models.Identity) (*models.SessionView, error) {
	ctrl, err := s.sessions.Open(id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, id, ctrl), nil
}

func (s *safetyService) GetSession(ctx context.Context, id models.Identity) (*models.SessionView, error) {
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, id, ctrl), nil
}

// CloseSession уходит с дашборда: подписка снимается, сессия уничтожается
func (s *safetyService) CloseSession(_ context.Context, id models.Identity) error {
	if err := s.sessions.Close(id); err != nil {
		return err
	}
	s.log("CloseSession", id).Info("Safety session closed")
	return nil
}

func (s *safetyService) StartTracking(ctx context.Context, id models.Identity) (*models.SessionView, error) {
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ctrl.StartTracking(); err != nil {
		s.log("StartTracking", id).WithError(err).Warn("Failed to start tracking")
		return nil, fmt.Errorf("service: could not start tracking: %w", err)
	}
	return s.view(ctx, id, ctrl), nil
}

func (s *safetyService) StopTracking(ctx context.Context, id models.Identity) (*models.SessionView, error) {
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	ctrl.StopTracking()
	return s.view(ctx, id, ctrl), nil
}

func (s *safetyService) PressBegin(ctx context.Context, id models.Identity) (*models.SessionView, error) {
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ctrl.PressBegin(); err != nil {
		return nil, err
	}
	return s.view(ctx, id, ctrl), nil
}

func (s *safetyService) PressEnd(ctx context.Context, id models.Identity) (*models.SessionView, error) {
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ctrl.PressEnd(); err != nil {
		return nil, err
	}
	return s.view(ctx, id, ctrl), nil
}

func (s *safetyService) ResolveAlert(ctx context.Context, id models.Identity) (*models.SessionView, error) {
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ctrl.ResolveAlert(); err != nil {
		return nil, err
	}
	s.log("ResolveAlert", id).Info("Alert resolved by user")
	return s.view(ctx, id, ctrl), nil
}

// ReportFix передает фикс устройства в поток геолокации пользователя
func (s *safetyService) ReportFix(ctx context.Context, id models.Identity, c models.Coordinate) error {
	if !id.Authenticated() {
		return models.ErrUnauthenticated
	}
	if err := s.fixes.Push(ctx, id.UserID, c); err != nil {
		s.log("ReportFix", id).WithError(err).Error("Failed to relay location fix")
		return fmt.Errorf("service: could not relay location fix: %w", err)
	}
	return nil
}

// ReportFault передает ошибку датчика, о которой сообщило устройство
func (s *safetyService) ReportFault(ctx context.Context, id models.Identity, message string) error {
	if !id.Authenticated() {
		return models.ErrUnauthenticated
	}
	if err := s.fixes.PushFault(ctx, id.UserID, message); err != nil {
		s.log("ReportFault", id).WithError(err).Error("Failed to relay sensor fault")
		return fmt.Errorf("service: could not relay sensor fault: %w", err)
	}
	return nil
}

// view собирает снимок сессии и основной контакт для отображения
func (s *safetyService) view(ctx context.Context, id models.Identity, ctrl *session.Controller) *models.SessionView {
	view := ctrl.View()
	primary, err := s.contacts.PrimaryContact(ctx, id)
	if err != nil {
		s.log("view", id).WithError(err).Warn("Failed to read primary contact")
		return view
	}
	view.PrimaryContact = primary
	return view
}
