package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	l := NewWriterLogger(&buf, false)
	l.Debug().Msg("hidden")
	l.Info().Str("file", "runs.json").Msg("loaded")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "loaded", entry["message"])
	assert.Equal(t, "runs.json", entry["file"])
	assert.Contains(t, entry, "time")

	buf.Reset()
	NewWriterLogger(&buf, true).Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tales.log")

	l, closer, err := NewFileLogger(path, false)
	require.NoError(t, err)
	l.Info().Msg("first")
	require.NoError(t, closer.Close())

	l, closer, err = NewFileLogger(path, false)
	require.NoError(t, err)
	l.Info().Msg("second")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first")
	assert.Contains(t, string(content), "second")
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(true)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "debug", l.GetLevel().String())

	l, err = NewLogger(false)
	require.NoError(t, err)
	assert.Equal(t, "info", l.GetLevel().String())
}
