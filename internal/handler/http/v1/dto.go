package v1

import (
	"time"

	"github.com/shenikar/guardian/internal/models"
)

// ContactRequest DTO для создания и редактирования контакта
// @Description DTO для создания и редактирования контакта
type ContactRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Phone        string `json:"phone" validate:"required,min=3,max=32"`
	Relationship string `json:"relationship" validate:"required,oneof=Family Friend Partner Colleague Other"`
	IsPrimary    bool   `json:"isPrimary"`
}

// ContactResponse DTO экстренного контакта
// @Description DTO экстренного контакта
type ContactResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	IsPrimary    bool   `json:"isPrimary"`
}

// CoordinateDTO - координата в запросах и ответах. Значения не проверяются.
// @Description Координата
type CoordinateDTO struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ObservedAt time.Time `json:"observed_at"`
}

// FaultRequest DTO ошибки датчика, полученной устройством
// @Description DTO ошибки датчика
type FaultRequest struct {
	Message string `json:"message" validate:"required,max=512"`
}

// SessionResponse DTO состояния сессии безопасности
// @Description DTO состояния сессии безопасности
type SessionResponse struct {
	Status         models.SafetyStatus `json:"status"`
	Tracking       bool                `json:"tracking"`
	Pressing       bool                `json:"pressing"`
	AlertedAt      *time.Time          `json:"alerted_at,omitempty"`
	Latest         *CoordinateDTO      `json:"latest,omitempty"`
	History        []CoordinateDTO     `json:"history"`
	PrimaryContact *ContactResponse    `json:"primary_contact,omitempty"`
}
