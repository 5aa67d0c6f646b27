package location

import (
	"errors"
	"time"

	"github.com/shenikar/guardian/internal/models"
)

var (
	ErrUnsupported = errors.New("geolocation is not supported on this device")
	ErrFixTimeout  = errors.New("timed out waiting for a location fix")
)

// Options - параметры подписки на геолокацию
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxAge       time.Duration
}

// DefaultOptions: высокая точность, 15 секунд на фикс, без закэшированных фиксов
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      15 * time.Second,
		MaxAge:       0,
	}
}

// Fix - элемент потока: либо координата, либо ошибка датчика
type Fix struct {
	Coordinate models.Coordinate
	Err        error
}

// Subscription - активная подписка на поток фиксов
type Subscription interface {
	Fixes() <-chan Fix
	Unsubscribe()
}

// Provider - внешний источник геолокации
type Provider interface {
	Subscribe(userID string, opts Options) (Subscription, error)
}
