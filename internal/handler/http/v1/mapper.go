package v1

import (
	"time"

	"github.com/shenikar/guardian/internal/models"
)

// DTOToContactFields преобразует запрос в поля контакта
func DTOToContactFields(dto ContactRequest) models.ContactFields {
	return models.ContactFields{
		Name:         dto.Name,
		Phone:        dto.Phone,
		Relationship: models.Relationship(dto.Relationship),
		IsPrimary:    dto.IsPrimary,
	}
}

func ModelToContactResponse(c models.EmergencyContact) ContactResponse {
	return ContactResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Relationship: string(c.Relationship),
		IsPrimary:    c.IsPrimary,
	}
}

// ModelsToContactResponses сохраняет порядок списка
func ModelsToContactResponses(list models.ContactList) []ContactResponse {
	responses := make([]ContactResponse, len(list))
	for i, c := range list {
		responses[i] = ModelToContactResponse(c)
	}
	return responses
}

// DTOToCoordinate преобразует фикс устройства. Без времени наблюдения берется now.
func DTOToCoordinate(dto CoordinateDTO, now time.Time) models.Coordinate {
	observed := dto.ObservedAt
	if observed.IsZero() {
		observed = now
	}
	return models.Coordinate{
		Latitude:   dto.Latitude,
		Longitude:  dto.Longitude,
		ObservedAt: observed,
	}
}

func ModelToCoordinateDTO(c models.Coordinate) CoordinateDTO {
	return CoordinateDTO{
		Latitude:   c.Latitude,
		Longitude:  c.Longitude,
		ObservedAt: c.ObservedAt,
	}
}

func ModelToSessionResponse(view *models.SessionView) SessionResponse {
	resp := SessionResponse{
		Status:    view.Status,
		Tracking:  view.Tracking,
		Pressing:  view.Pressing,
		AlertedAt: view.AlertedAt,
		History:   make([]CoordinateDTO, len(view.History)),
	}
	for i, c := range view.History {
		resp.History[i] = ModelToCoordinateDTO(c)
	}
	if view.Latest != nil {
		latest := ModelToCoordinateDTO(*view.Latest)
		resp.Latest = &latest
	}
	if view.PrimaryContact != nil {
		primary := ModelToContactResponse(*view.PrimaryContact)
		resp.PrimaryContact = &primary
	}
	return resp
}
