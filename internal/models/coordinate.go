package models

import "time"

// Coordinate - одна полученная точка геолокации. После записи не изменяется.
type Coordinate struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ObservedAt time.Time `json:"observed_at"`
}

// Alert описывает срабатывание SOS для передачи дальше (webhook)
type Alert struct {
	UserID      string      `json:"user_id"`
	TriggeredAt time.Time   `json:"triggered_at"`
	Location    *Coordinate `json:"location,omitempty"`
}
