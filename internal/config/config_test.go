package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-3del/portfolio/internal/typewriter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 50*time.Millisecond, cfg.Typewriter.TypeSpeed)
	assert.Equal(t, 40*time.Millisecond, cfg.Typewriter.BackSpeed)
	assert.True(t, cfg.Typewriter.Loop)
	assert.NotEmpty(t, cfg.Projects)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultPhrases, cfg.Typewriter.Strings)
	assert.Equal(t, DefaultProjects, cfg.Projects)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
owner: Jane Doe
typewriter:
  strings: ["A", "B"]
  type_speed: 80ms
  loop: false
projects:
  - title: Tracker
    description: Scroll tracking demo
    technologies: [Go, gin]
    link: https://example.com/tracker
retention: 720h
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Jane Doe", cfg.Owner)
	assert.Equal(t, []string{"A", "B"}, cfg.Typewriter.Strings)
	assert.Equal(t, 80*time.Millisecond, cfg.Typewriter.TypeSpeed)
	assert.Equal(t, 40*time.Millisecond, cfg.Typewriter.BackSpeed, "unset keys keep defaults")
	assert.False(t, cfg.Typewriter.Loop)
	require.Len(t, cfg.Projects, 1)
	assert.Equal(t, []string{"Go", "gin"}, cfg.Projects[0].Technologies)
	assert.Equal(t, 720*time.Hour, cfg.Retention)
	assert.Equal(t, DefaultLinks, cfg.Links)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("PORTFOLIO_SERVER__DATABASE_PATH", "/tmp/site.db")
	t.Setenv("PORTFOLIO_OWNER", "Env Owner")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/site.db", cfg.Server.DatabasePath)
	assert.Equal(t, "Env Owner", cfg.Owner)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
}

func TestValidateRejectsEmptyProjects(t *testing.T) {
	path := writeConfig(t, "projects: []\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrNoProjects)
}

func TestValidateRejectsRelativeLinks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Links = []Link{{Label: "LinkedIn", URL: "www.linkedin.com/in/someone"}}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyPhrases(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Typewriter.Strings = nil
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroSpeeds(t *testing.T) {
	path := writeConfig(t, "typewriter:\n  type_speed: 0s\n  back_speed: 0s\n  back_delay: 0s\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), typewriter.ErrInvalidSpeed)
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	t.Setenv("GIN_MODE", "production")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "server.mode")

	for _, mode := range []string{"debug", "release", "test"} {
		cfg.Server.Mode = mode
		assert.NoError(t, cfg.Validate(), mode)
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "smtp.to", envKey("TO_EMAIL"))
	assert.Equal(t, "typewriter.back_speed", envKey("PORTFOLIO_TYPEWRITER__BACK_SPEED"))
	assert.Equal(t, "", envKey("HOME"))
}
