// Package session содержит автомат сессии безопасности: отслеживание, SOS и статус.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shenikar/guardian/internal/location"
	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/sos"
	"github.com/sirupsen/logrus"
)

const notifyTimeout = 10 * time.Second

// Listener получает исходящие события сессии. Вызывается под блокировкой контроллера,
// поэтому не должен обращаться к контроллеру и не должен блокироваться.
type Listener interface {
	OnStatusChanged(status models.SafetyStatus)
	OnCoordinate(c models.Coordinate)
	OnError(kind models.ErrorKind, message string)
}

// AlertNotifier передает срабатывание SOS дальше (заглушка рассылки)
type AlertNotifier interface {
	NotifyAlert(ctx context.Context, alert models.Alert) error
}

// Config - зависимости контроллера
type Config struct {
	UserID       string
	Provider     location.Provider
	Options      location.Options
	Threshold    time.Duration
	Scheduler    sos.Scheduler
	HistoryLimit int
	Listener     Listener
	Notifier     AlertNotifier
	Logger       *logrus.Logger
}

// Controller - автомат одной сессии безопасности.
// Состояния: Safe (нет отслеживания), Monitoring (отслеживание), Alert (сработал SOS).
// Все переходы сериализованы мьютексом.
type Controller struct {
	userID   string
	adapter  *location.Adapter
	history  *location.History
	detector *sos.Detector
	listener Listener
	notifier AlertNotifier
	logger   *logrus.Entry
	now      func() time.Time

	mu        sync.Mutex
	tracking  bool
	alert     bool
	alertedAt time.Time
	handle    location.Handle
	closed    bool
}

func NewController(cfg Config) *Controller {
	c := &Controller{
		userID:   cfg.UserID,
		adapter:  location.NewAdapter(cfg.Provider, cfg.UserID, cfg.Options, cfg.Logger),
		history:  location.NewHistory(cfg.HistoryLimit),
		listener: cfg.Listener,
		notifier: cfg.Notifier,
		logger: cfg.Logger.WithFields(logrus.Fields{
			"component": "safety_session",
			"user_id":   cfg.UserID,
		}),
		now: time.Now,
	}
	c.detector = sos.NewDetector(cfg.Threshold, cfg.Scheduler, func() { c.Activate() })
	return c
}

// Status - чистая функция от состояния
func (c *Controller) Status() models.SafetyStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() models.SafetyStatus {
	switch {
	case c.alert:
		return models.StatusAlert
	case c.tracking:
		return models.StatusMonitoring
	default:
		return models.StatusSafe
	}
}

// StartTracking: Safe -> Monitoring. История очищается. Повторный вызов ничего не делает.
// Ошибка датчика сообщается через OnError, состояние не меняется.
func (c *Controller) StartTracking() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return models.ErrNoActiveSession
	}
	if c.tracking {
		return nil
	}

	before := c.statusLocked()
	h, err := c.adapter.Start(c.handleCoordinate, c.handleFault)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to start location tracking")
		c.emitError(models.KindSensorFault, err.Error())
		return err
	}

	c.handle = h
	c.tracking = true
	c.history.Clear()
	c.logger.WithField("handle", h).Info("Tracking started")
	c.emitStatus(before)
	return nil
}

// StopTracking: Monitoring -> Safe. После возврата ни один колбэк старой подписки не изменит сессию.
func (c *Controller) StopTracking() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTrackingLocked()
}

func (c *Controller) stopTrackingLocked() {
	if !c.tracking {
		return
	}
	before := c.statusLocked()
	c.adapter.Stop(c.handle)
	c.handle = location.NoHandle
	c.tracking = false
	c.logger.Info("Tracking stopped")
	c.emitStatus(before)
}

// PressBegin начинает удержание SOS-кнопки
func (c *Controller) PressBegin() error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return models.ErrNoActiveSession
	}
	if c.detector.PressBegin() {
		c.logger.Debug("SOS press started")
	}
	return nil
}

// PressEnd отпускает SOS-кнопку. До порога активации не будет.
func (c *Controller) PressEnd() error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return models.ErrNoActiveSession
	}
	if c.detector.PressEnd() {
		c.logger.Debug("SOS press canceled before threshold")
	}
	return nil
}

func (c *Controller) Pressing() bool {
	return c.detector.State() == sos.StatePressing
}

// Activate переводит сессию в Alert. Вызывается детектором по истечении порога.
// Возвращает false, если сессия уже в Alert или закрыта.
func (c *Controller) Activate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.alert {
		return false
	}
	before := c.statusLocked()
	c.alert = true
	c.alertedAt = c.now()
	c.logger.Warn("SOS activated")
	c.emitStatus(before)

	alert := models.Alert{UserID: c.userID, TriggeredAt: c.alertedAt}
	if latest, ok := c.history.Latest(); ok {
		alert.Location = &latest
	}
	c.notify(alert)
	return true
}

// ResolveAlert снимает тревогу явным действием пользователя.
// Статус возвращается к Monitoring или Safe в зависимости от отслеживания.
func (c *Controller) ResolveAlert() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return models.ErrNoActiveSession
	}
	if !c.alert {
		return nil
	}
	before := c.statusLocked()
	c.alert = false
	c.alertedAt = time.Time{}
	c.logger.Info("SOS alert resolved")
	c.emitStatus(before)
	return nil
}

// Latest возвращает последнюю координату
func (c *Controller) Latest() (models.Coordinate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Latest()
}

// View возвращает снимок сессии
func (c *Controller) View() *models.SessionView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := &models.SessionView{
		Status:   c.statusLocked(),
		Tracking: c.tracking,
		Pressing: c.detector.State() == sos.StatePressing,
		History:  c.history.Points(),
	}
	if latest, ok := c.history.Latest(); ok {
		view.Latest = &latest
	}
	if c.alert {
		at := c.alertedAt
		view.AlertedAt = &at
	}
	return view
}

// Close уничтожает сессию: снимает подписку и отменяет незавершённое нажатие
func (c *Controller) Close() {
	c.detector.PressEnd()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTrackingLocked()
	c.closed = true
	c.logger.Info("Safety session closed")
}

func (c *Controller) handleCoordinate(h location.Handle, coord models.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.tracking || h != c.handle {
		c.logger.WithField("handle", h).Debug("Discarding coordinate from stale subscription")
		return
	}
	c.history.Record(coord)
	if c.listener != nil {
		c.listener.OnCoordinate(coord)
	}
}

func (c *Controller) handleFault(h location.Handle, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.tracking || h != c.handle {
		return
	}
	// без повторов и без перехода в Safe: решение за вызывающей стороной
	c.logger.WithError(err).Warn("Location sensor fault")
	c.emitError(models.KindSensorFault, err.Error())
}

func (c *Controller) emitStatus(before models.SafetyStatus) {
	after := c.statusLocked()
	if after == before || c.listener == nil {
		return
	}
	c.listener.OnStatusChanged(after)
}

func (c *Controller) emitError(kind models.ErrorKind, message string) {
	if c.listener != nil {
		c.listener.OnError(kind, message)
	}
}

func (c *Controller) notify(alert models.Alert) {
	if c.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := c.notifier.NotifyAlert(ctx, alert); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.WithError(err).Error("Failed to dispatch SOS alert")
		}
	}()
}
