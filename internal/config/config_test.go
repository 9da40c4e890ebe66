package config_test

import (
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-go/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "StudyHub", cfg.AppName)
	require.Equal(t, "http://localhost:5000/api", cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 30*time.Second, cfg.PollInterval)
	require.NotEmpty(t, cfg.StateFile)
	require.False(t, cfg.Debug)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("STUDYHUB_BASEURL", "https://api.studyhub.example/api")
	t.Setenv("STUDYHUB_POLLINTERVAL", "10s")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "https://api.studyhub.example/api", cfg.BaseURL)
	require.Equal(t, 10*time.Second, cfg.PollInterval)
}
