package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"json info", "info", FormatJSON, zapcore.InfoLevel, false},
		{"console debug", "debug", FormatConsole, zapcore.DebugLevel, false},
		{"empty format is json", "warn", "", zapcore.WarnLevel, false},
		{"json error", "error", FormatJSON, zapcore.ErrorLevel, false},
		{"invalid level", "invalid", FormatJSON, 0, true},
		{"invalid format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level, tt.format, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, GetLevel())
		})
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("info", FormatJSON, &buf))

	L().Debug("hidden")
	assert.Zero(t, buf.Len())

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, GetLevel())
	L().Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.Error(t, SetLevel("bogus"))
	assert.Equal(t, zapcore.DebugLevel, GetLevel())
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("info", FormatJSON, &buf))

	Named("reconciler").Info("reconciled booking fields", zap.Int("prepended", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "reconciler", entry["logger"])
	assert.Equal(t, "reconciled booking fields", entry["msg"])
	assert.EqualValues(t, 3, entry["prepended"])
}

func TestSync(t *testing.T) {
	require.NoError(t, Init("info", FormatJSON, &bytes.Buffer{}))
	assert.NoError(t, Sync())
}
