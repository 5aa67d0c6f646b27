package stream

import (
	"time"

	"github.com/shenikar/guardian/internal/models"
)

type EventType string

const (
	EventStatusChanged   EventType = "status_changed"
	EventCoordinate      EventType = "coordinate"
	EventContactsChanged EventType = "contacts_changed"
	EventError           EventType = "error"
)

// Event - сообщение, которое получает клиент по WebSocket
type Event struct {
	Type       EventType           `json:"type"`
	UserID     string              `json:"user_id"`
	Status     models.SafetyStatus `json:"status,omitempty"`
	Coordinate *models.Coordinate  `json:"coordinate,omitempty"`
	Contacts   *models.ContactList `json:"contacts,omitempty"` // задан только у contacts_changed, пустой список сериализуется как []
	Error      *ErrorPayload       `json:"error,omitempty"`
	At         time.Time           `json:"at"`
}

type ErrorPayload struct {
	Kind    models.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}
