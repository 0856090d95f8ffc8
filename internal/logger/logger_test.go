package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-tenant-client/internal/logger"
)

func TestLogger_Levels(t *testing.T) {
	t.Run("below minimum severity is suppressed", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Options{Level: logger.LevelWarn, Enabled: true, Output: &buf})

		log.Debug("quiet", nil)
		log.Info("quiet", nil)
		require.Zero(t, buf.Len())

		log.Warn("loud", nil)
		log.Error("loud", nil)
		require.Contains(t, buf.String(), "warn")
		require.Contains(t, buf.String(), "error")
	})

	t.Run("disabled logger emits nothing", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Options{Level: logger.LevelDebug, Enabled: false, Output: &buf})
		log.Error("nope", nil)
		require.Zero(t, buf.Len())
	})

	t.Run("nil logger is safe", func(t *testing.T) {
		var log *logger.Logger
		log.Info("nothing happens", nil)
		log.Group("child").Warn("still nothing", nil)
		log.Timed("op")()
	})
}

func TestLogger_Output(t *testing.T) {
	t.Run("lines are timestamped and prefixed", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Options{Level: logger.LevelInfo, Enabled: true, Prefix: "tenantctl", Output: &buf})
		log.Info("hello", nil)
		require.Contains(t, buf.String(), "tenantctl hello")
		require.Contains(t, buf.String(), "time")
	})

	t.Run("structured payload appended only when non-empty", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Options{Level: logger.LevelInfo, Enabled: true, Output: &buf})
		log.Info("bare", nil)
		require.NotContains(t, buf.String(), "path")

		log.Info("detailed", map[string]any{"path": "/vendors"})
		require.Contains(t, buf.String(), `"path":"/vendors"`)
	})

	t.Run("group extends the prefix", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Options{Level: logger.LevelInfo, Enabled: true, Prefix: "tenantctl", Output: &buf})
		log.Group("client").Info("sent", nil)
		require.Contains(t, buf.String(), "tenantctl.client sent")
	})
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logger.LevelDebug, logger.ParseLevel("debug"))
	require.Equal(t, logger.LevelWarn, logger.ParseLevel("WARNING"))
	require.Equal(t, logger.LevelError, logger.ParseLevel("error"))
	require.Equal(t, logger.LevelInfo, logger.ParseLevel("anything else"))
}

func TestDefaultLevel(t *testing.T) {
	require.Equal(t, logger.LevelDebug, logger.DefaultLevel("development"))
	require.Equal(t, logger.LevelInfo, logger.DefaultLevel("production"))
}
