package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	savedLogger, savedLevel := globalLogger, globalLevel.Level()
	t.Cleanup(func() {
		globalLogger = savedLogger
		globalLevel.SetLevel(savedLevel)
	})
}

func TestInit(t *testing.T) {
	t.Run("quiet_is_nop", func(t *testing.T) {
		resetGlobals(t)
		path := filepath.Join(t.TempDir(), "quiet.log")
		require.NoError(t, Init(Config{Level: "debug", OutputPath: path, Quiet: true}))
		L().Info("dropped")
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("writes_json_to_file", func(t *testing.T) {
		resetGlobals(t)
		path := filepath.Join(t.TempDir(), "nested", "app.log")
		require.NoError(t, Init(Config{Level: "info", OutputPath: path}))
		Named("nav").Info("opened", zap.String("path", "/tmp"))
		L().Debug("hidden")
		require.NoError(t, Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"logger":"nav"`)
		assert.Contains(t, lines[0], `"path":"/tmp"`)
	})

	t.Run("invalid_level", func(t *testing.T) {
		resetGlobals(t)
		err := Init(Config{Level: "chatty", OutputPath: filepath.Join(t.TempDir(), "x.log")})
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("mkdir_failure", func(t *testing.T) {
		resetGlobals(t)
		saved := osMkdirAll
		defer func() {
			osMkdirAll = saved
		}()
		osMkdirAll = func(string, os.FileMode) error {
			return errors.New("read-only")
		}
		err := Init(Config{Level: "info", OutputPath: "/nowhere/x.log"})
		assert.ErrorContains(t, err, "read-only")
	})
}

func TestSetLevel(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, globalLevel.Level())
	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, zapcore.WarnLevel, globalLevel.Level())
}
