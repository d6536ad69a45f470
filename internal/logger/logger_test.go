package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/logger"
)

func TestLogLevel(t *testing.T) {
	testCases := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "warning", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "", want: slog.LevelInfo},
		{level: "chatty", want: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.want, logger.Config{Level: tc.level}.LogLevel())
		})
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Format: "json", Service: "arena"}, &buf)

	log.Info("Battle resolved", "enemy", "goblin", "rounds", 3)
	log.Debug("dropped")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Battle resolved", record["msg"])
	assert.Equal(t, "arena", record["service"])
	assert.Equal(t, "goblin", record["enemy"])
	assert.Equal(t, float64(3), record["rounds"])
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Format: "text"}, &buf)

	log.Info("quiet")
	log.Warn("Loud", "session_id", "game_1")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "msg=Loud")
	assert.Contains(t, out, "session_id=game_1")
}

func TestSetupInstallsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger.Setup(logger.Config{Format: "json"}, &buf)
	slog.Info("hello")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
