package models

import "time"

// SafetyStatus - производный статус безопасности сессии
type SafetyStatus string

const (
	StatusSafe       SafetyStatus = "safe"
	StatusMonitoring SafetyStatus = "monitoring"
	StatusAlert      SafetyStatus = "alert"
)

// SessionView - снимок состояния сессии для отображения пользователю
type SessionView struct {
	Status         SafetyStatus      `json:"status"`
	Tracking       bool              `json:"tracking"`
	Pressing       bool              `json:"pressing"`
	AlertedAt      *time.Time        `json:"alerted_at,omitempty"`
	Latest         *Coordinate       `json:"latest,omitempty"`
	History        []Coordinate      `json:"history"`
	PrimaryContact *EmergencyContact `json:"primary_contact,omitempty"`
}
