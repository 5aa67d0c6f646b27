package location

import (
	"testing"
	"time"

	"github.com/shenikar/guardian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord(lat, lon float64) models.Coordinate {
	return models.Coordinate{Latitude: lat, Longitude: lon, ObservedAt: time.Unix(0, 0).UTC()}
}

func TestHistory_RecordAndLatest(t *testing.T) {
	h := NewHistory(0)

	_, ok := h.Latest()
	assert.False(t, ok)

	h.Record(coord(1, 2))
	h.Record(coord(3, 4))
	h.Record(coord(3, 4)) // дубликаты не схлопываются

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, coord(3, 4), latest)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []models.Coordinate{coord(1, 2), coord(3, 4), coord(3, 4)}, h.Points())

	h.Clear()
	assert.Equal(t, 0, h.Len())
	_, ok = h.Latest()
	assert.False(t, ok)
}

func TestHistory_LimitKeepsNewest(t *testing.T) {
	h := NewHistory(2)
	h.Record(coord(1, 1))
	h.Record(coord(2, 2))
	h.Record(coord(3, 3))

	assert.Equal(t, []models.Coordinate{coord(2, 2), coord(3, 3)}, h.Points())
	latest, _ := h.Latest()
	assert.Equal(t, coord(3, 3), latest)
}

func TestHistory_PointsIsCopy(t *testing.T) {
	h := NewHistory(0)
	h.Record(coord(1, 1))
	points := h.Points()
	points[0].Latitude = 99

	latest, _ := h.Latest()
	assert.Equal(t, 1.0, latest.Latitude)
}
