package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFallback(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewWithOutput("debug", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewWithOutput("loud", &bytes.Buffer{}).GetLevel())
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	log.WithField("user_id", "user-1").Info("Safety session opened")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Safety session opened", entry["message"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "info", entry["level"])
}
