package location

import "github.com/shenikar/guardian/internal/models"

// History - упорядоченная история полученных координат в порядке поступления.
// Не потокобезопасна: владелец (сессия) сериализует доступ.
type History struct {
	points []models.Coordinate
	limit  int
}

// NewHistory создает историю. limit <= 0 означает без ограничения.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record добавляет координату в конец. При заданном лимите вытесняются самые старые точки.
func (h *History) Record(c models.Coordinate) {
	h.points = append(h.points, c)
	if h.limit > 0 && len(h.points) > h.limit {
		h.points = append(h.points[:0:0], h.points[len(h.points)-h.limit:]...)
	}
}

// Latest возвращает последнюю добавленную координату, false если история пуста
func (h *History) Latest() (models.Coordinate, bool) {
	if len(h.points) == 0 {
		return models.Coordinate{}, false
	}
	return h.points[len(h.points)-1], true
}

func (h *History) Clear() {
	h.points = nil
}

func (h *History) Len() int {
	return len(h.points)
}

// Points возвращает копию истории
func (h *History) Points() []models.Coordinate {
	out := make([]models.Coordinate, len(h.points))
	copy(out, h.points)
	return out
}
