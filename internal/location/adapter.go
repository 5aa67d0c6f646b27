package location

import (
	"fmt"
	"sync"

	"github.com/shenikar/guardian/internal/models"
	"github.com/sirupsen/logrus"
)

// Handle - непрозрачный дескриптор подписки. NoHandle означает отсутствие подписки.
type Handle uint64

const NoHandle Handle = 0

type (
	CoordinateFunc func(h Handle, c models.Coordinate)
	ErrorFunc      func(h Handle, err error)
)

// Adapter превращает подписку провайдера в поток колбэков с жизненным циклом start/stop.
// Одновременно активна не более одной подписки.
type Adapter struct {
	provider Provider
	userID   string
	opts     Options
	logger   *logrus.Entry

	mu      sync.Mutex
	seq     uint64
	current Handle
	sub     Subscription
}

func NewAdapter(provider Provider, userID string, opts Options, logger *logrus.Logger) *Adapter {
	return &Adapter{
		provider: provider,
		userID:   userID,
		opts:     opts,
		logger: logger.WithFields(logrus.Fields{
			"component": "location_adapter",
			"user_id":   userID,
		}),
	}
}

// Start подписывается на провайдер. Предыдущая подписка, если есть, снимается до создания новой.
// Ошибки датчика после подписки приходят в onError, повторных попыток адаптер не делает.
func (a *Adapter) Start(onCoordinate CoordinateFunc, onError ErrorFunc) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != NoHandle {
		a.logger.WithField("handle", a.current).Debug("Retiring previous subscription")
		a.releaseLocked()
	}

	sub, err := a.provider.Subscribe(a.userID, a.opts)
	if err != nil {
		return NoHandle, fmt.Errorf("location: could not subscribe: %w: %w", models.ErrSensorFault, err)
	}

	a.seq++
	h := Handle(a.seq)
	a.current = h
	a.sub = sub
	go a.deliver(h, sub, onCoordinate, onError)

	a.logger.WithField("handle", h).Info("Location subscription started")
	return h, nil
}

// Stop снимает подписку. Неизвестный или уже остановленный дескриптор игнорируется.
func (a *Adapter) Stop(h Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h == NoHandle || h != a.current {
		return
	}
	a.releaseLocked()
	a.logger.WithField("handle", h).Info("Location subscription stopped")
}

// Active возвращает текущий дескриптор или NoHandle
func (a *Adapter) Active() Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *Adapter) releaseLocked() {
	a.sub.Unsubscribe()
	a.sub = nil
	a.current = NoHandle
}

func (a *Adapter) isCurrent(h Handle) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current == h
}

func (a *Adapter) deliver(h Handle, sub Subscription, onCoordinate CoordinateFunc, onError ErrorFunc) {
	for fix := range sub.Fixes() {
		if !a.isCurrent(h) {
			return
		}
		if fix.Err != nil {
			if onError != nil {
				onError(h, fix.Err)
			}
			continue
		}
		if onCoordinate != nil {
			onCoordinate(h, fix.Coordinate)
		}
	}
}
