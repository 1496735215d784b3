package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{
			name: "console to stdout",
			cfg: &Config{
				Level:      "info",
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			},
		},
		{
			name: "json to stderr",
			cfg: &Config{
				Level:      "warn",
				Format:     "json",
				Output:     "stderr",
				TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			},
		},
		{
			name: "debug level",
			cfg: &Config{
				Level:      "debug",
				Format:     "json",
				Output:     "stdout",
				TimeFormat: "2006-01-02T15:04:05Z07:00",
			},
		},
		{
			name: "bad level and format fall back",
			cfg: &Config{
				Level:      "verbose",
				Format:     "xml",
				Output:     "stdout",
				TimeFormat: "2006-01-02T15:04:05Z07:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
			_ = Sync(log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestOpenSink(t *testing.T) {
	t.Run("standard streams", func(t *testing.T) {
		for _, output := range []string{"stdout", "STDOUT", "stderr", ""} {
			assert.NotNil(t, openSink(output))
		}
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "freshline.log")
		sink := openSink(path)
		require.NotNil(t, sink)

		_, err := sink.Write([]byte("started\n"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "started")
	})

	t.Run("unwritable path falls back to stdout", func(t *testing.T) {
		assert.NotNil(t, openSink(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log")))
	})
}

func TestNewEncoder(t *testing.T) {
	base := Config{
		Level:      "info",
		Output:     "stdout",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	}

	console := base
	console.Format = "console"
	assert.NotNil(t, newEncoder(&console))

	jsonCfg := base
	jsonCfg.Format = "json"
	assert.NotNil(t, newEncoder(&jsonCfg))
}
