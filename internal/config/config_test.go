package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"news_monitor/internal/config"

	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func TestLoadConfig_Success(t *testing.T) {
	json := `{
		"feeds": ["https://example.com/rss", "http://foo.bar/feed"],
		"max_items": 10,
		"time_zone": "UTC"
	}`
	path := writeTempConfig(t, json)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"https://example.com/rss", "http://foo.bar/feed"}, cfg.Feeds)
	require.Equal(t, 10, cfg.MaxItems)
	require.Equal(t, time.UTC, cfg.Location())

	// unset fields keep their defaults
	require.Equal(t, ":8080", cfg.Listen)
	require.Equal(t, 10*time.Second, cfg.FetchTimeoutDuration())
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := config.LoadConfig("/nonexistent/config.json")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{ invalid json }`)
	_, err := config.LoadConfig(path)
	require.Error(t, err)
}

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(cfg *config.Config)
		wantErr string
	}{
		{
			name:    "no feeds",
			modify:  func(cfg *config.Config) { cfg.Feeds = nil },
			wantErr: "at least one feed",
		},
		{
			name:    "invalid url",
			modify:  func(cfg *config.Config) { cfg.Feeds = []string{"not-a-url", "http://foo.bar/feed"} },
			wantErr: "invalid feed URL",
		},
		{
			name:    "negative max items",
			modify:  func(cfg *config.Config) { cfg.MaxItems = -1 },
			wantErr: "max items",
		},
		{
			name:    "negative timeout",
			modify:  func(cfg *config.Config) { cfg.FetchTimeout = -5 },
			wantErr: "fetch timeout",
		},
		{
			name:    "unknown time zone",
			modify:  func(cfg *config.Config) { cfg.TimeZone = "Mars/Olympus" },
			wantErr: "invalid time zone",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
