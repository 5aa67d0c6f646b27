package session

import (
	"sync"
	"time"

	"github.com/shenikar/guardian/internal/location"
	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/sos"
	"github.com/sirupsen/logrus"
)

// ListenerFactory возвращает слушателя событий для пользователя
type ListenerFactory func(userID string) Listener

// ManagerConfig - общие параметры всех сессий
type ManagerConfig struct {
	Provider     location.Provider
	Options      location.Options
	Threshold    time.Duration
	Scheduler    sos.Scheduler
	HistoryLimit int
	Listeners    ListenerFactory
	Notifier     AlertNotifier
}

// Manager хранит не более одной сессии на пользователя
type Manager struct {
	cfg    ManagerConfig
	logger *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewManager(cfg ManagerConfig, logger *logrus.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		logger:   logger,
		sessions: map[string]*Controller{},
	}
}

// Open возвращает существующую сессию пользователя или создаёт новую
func (m *Manager) Open(id models.Identity) (*Controller, error) {
	if !id.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.sessions[id.UserID]; ok {
		return c, nil
	}

	var listener Listener
	if m.cfg.Listeners != nil {
		listener = m.cfg.Listeners(id.UserID)
	}
	c := NewController(Config{
		UserID:       id.UserID,
		Provider:     m.cfg.Provider,
		Options:      m.cfg.Options,
		Threshold:    m.cfg.Threshold,
		Scheduler:    m.cfg.Scheduler,
		HistoryLimit: m.cfg.HistoryLimit,
		Listener:     listener,
		Notifier:     m.cfg.Notifier,
		Logger:       m.logger,
	})
	m.sessions[id.UserID] = c
	m.logger.WithField("user_id", id.UserID).Info("Safety session opened")
	return c, nil
}

// Get возвращает открытую сессию пользователя
func (m *Manager) Get(id models.Identity) (*Controller, error) {
	if !id.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.sessions[id.UserID]
	if !ok {
		return nil, models.ErrNoActiveSession
	}
	return c, nil
}

// Close уничтожает сессию пользователя. Отсутствующая сессия - не ошибка.
func (m *Manager) Close(id models.Identity) error {
	if !id.Authenticated() {
		return models.ErrUnauthenticated
	}

	m.mu.Lock()
	c, ok := m.sessions[id.UserID]
	delete(m.sessions, id.UserID)
	m.mu.Unlock()

	if ok {
		c.Close()
	}
	return nil
}

// CloseAll закрывает все сессии, используется при остановке сервера
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = map[string]*Controller{}
	m.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
