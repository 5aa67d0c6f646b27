package models

import "time"

// Имена полей профиля, которые допускает запись через WriteField
const (
	FieldName              = "name"
	FieldEmergencyContacts = "emergencyContacts"
)

// Profile - документ профиля пользователя
type Profile struct {
	UserID            string      `json:"user_id"`
	Name              string      `json:"name"`
	EmergencyContacts ContactList `json:"emergencyContacts"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
