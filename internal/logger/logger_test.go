package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		logDebug  bool
		logInfo   bool
		logErrors bool
	}{
		{name: "debug", level: "debug", logDebug: true, logInfo: true, logErrors: true},
		{name: "warn", level: "warn", logDebug: false, logInfo: false, logErrors: true},
		{name: "invalid defaults to info", level: "loud", logDebug: false, logInfo: true, logErrors: true},
		{name: "empty defaults to info", level: "", logDebug: false, logInfo: true, logErrors: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(Config{Level: tt.level}, &buf)

			buf.Reset()
			log.Debug().Msg("d")
			assert.Equal(t, tt.logDebug, buf.Len() > 0)

			buf.Reset()
			log.Info().Msg("i")
			assert.Equal(t, tt.logInfo, buf.Len() > 0)

			buf.Reset()
			log.Error().Msg("e")
			assert.Equal(t, tt.logErrors, buf.Len() > 0)
		})
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "info"}, &buf)

	log.Info().Str("component", "test").Msg("hola")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hola", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}
