package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	for _, l := range []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
}

func TestSetDebug(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	InitWriter(&buf)

	Component("test").Debug("hidden")
	assert.Empty(t, buf.String())

	SetDebug(true)
	assert.Equal(t, LevelDebug, Level())
	Component("test").Debug("shown", "items", 3)
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "component=test")
	assert.Contains(t, buf.String(), "items=3")

	SetDebug(false)
	assert.Equal(t, LevelInfo, Level())
}

func TestSetLevel_AffectsExistingLoggers(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	InitWriter(&buf)
	log := Component("extract")

	SetLevel(LevelError)
	log.Warn("suppressed")
	assert.Empty(t, buf.String())

	SetLevel(LevelWarn)
	log.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestReset_KeepsExistingLoggersAdjustable(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	InitWriter(&buf)
	log := Component("watch")
	SetDebug(true)

	Reset()
	log.Debug("after reset")
	assert.Empty(t, buf.String())

	SetDebug(true)
	log.Debug("debug again")
	assert.Contains(t, buf.String(), "debug again")
}

func TestInit_File(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "clipmeta.log")
	require.NoError(t, Init(path))

	Logger().Info("written to file")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	defer Reset()

	err := Init(filepath.Join(t.TempDir(), "missing", "dir", "log.txt"))
	assert.Error(t, err)
	assert.NotNil(t, Logger())
}
