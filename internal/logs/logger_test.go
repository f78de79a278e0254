package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Options(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := New(
		WithLevel("warn"),
		WithEncoding("json"),
		WithField("version", "1.2.3"),
		func(o *LoggerOptions) { o.OutputPaths = []string{path} },
	)
	require.NoError(t, err)

	logger.Info("skipped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), string(data))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "screws", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
}

func TestNew_EmptyOptionsKeepDefaults(t *testing.T) {
	logger, err := New(WithLevel(""), WithEncoding(""))
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(WithLevel("loud"))
	assert.Error(t, err)
	assert.Panics(t, func() { MustNew(WithLevel("loud")) })
}
