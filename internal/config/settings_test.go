package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Equal(t, DefaultListenAddress, s.Server.Listen)
	assert.Equal(t, 1<<20, s.Server.MaxBodySize)
	assert.Equal(t, "console", s.Output.Format)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fincalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n  format: json\nserver:\n  listen: 127.0.0.1:9000\n"), 0644))
	t.Setenv("FINCALC_OUTPUT_FORMAT", "csv")
	t.Setenv("FINCALC_SERVER_LISTEN", ":7070")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, ":7070", s.Server.Listen, "environment wins over the file")
	assert.Equal(t, "csv", s.Output.Format)
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("FINCALC_LOG_FORMAT", "xml")
	_, err = LoadSettings("")
	assert.ErrorContains(t, err, "invalid log format")
}
