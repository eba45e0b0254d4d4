package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LOCANOTE_HOME", "/tmp/locanote-home")

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Empty(t, c.File)
	assert.Equal(t, "/tmp/locanote-home", c.Home)
	assert.Equal(t, "notes.db", c.Storage.File)
	assert.Equal(t, "notes", c.Storage.Key)
	assert.Equal(t, "en", c.Locale)
	assert.Equal(t, ModeIP, c.Location.Mode)
	assert.Equal(t, "https://nominatim.openstreetmap.org/reverse", c.Location.ReverseURL)
	assert.Equal(t, 10*time.Second, c.Location.Timeout)
	assert.Equal(t, 1.0, c.Location.RateLimit)
}

func TestLoad_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
home: /srv/notes
locale: de-DE
storage:
  key: ""
location:
  mode: static
  latitude: 35.0116
  longitude: 135.7681
  timeout: 3s
`), 0644))

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, p, c.File)
	assert.Equal(t, "/srv/notes", c.Home)
	assert.Equal(t, "de-DE", c.Locale)
	assert.Equal(t, "notes", c.Storage.Key, "empty values fall back to defaults")
	assert.Equal(t, ModeStatic, c.Location.Mode)
	assert.Equal(t, 35.0116, c.Location.Latitude)
	assert.Equal(t, 3*time.Second, c.Location.Timeout)
}

func TestLoad_ExplicitZeroes(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
location:
  rate-limit: 0
  timeout: 0s
`), 0644))

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 0.0, c.Location.RateLimit)
	assert.Equal(t, time.Duration(0), c.Location.Timeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org/reverse", c.Location.ReverseURL)
}

func TestLoad_NegativeRateLimit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("location:\n  rate-limit: -1\n"), 0644))

	_, err := Load(p)
	assert.ErrorContains(t, err, "location.rate-limit")
}

func TestLoad_InvalidMode(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("location:\n  mode: gps\n"), 0644))

	_, err := Load(p)
	assert.ErrorContains(t, err, "location.mode")
}

func TestLoad_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("home: [unterminated\n"), 0644))

	_, err := Load(p)
	assert.ErrorContains(t, err, "parse config file failed")
}
