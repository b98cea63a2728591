package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	yaml := `name: Jane Doe
url: https://jane.dev
content_backend: sqlite
snapshot_path: /var/lib/portfolio/content.db
sanity_project_id: ab12cd34
sanity_timeout: 5s
contact_to:
  - jane@jane.dev
contact_rate_limit: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cfg.Name)
	assert.Equal(t, "https://jane.dev", cfg.URL)
	assert.Equal(t, "sqlite", cfg.ContentBackend)
	assert.Equal(t, "/var/lib/portfolio/content.db", cfg.SnapshotPath)
	assert.Equal(t, "ab12cd34", cfg.SanityProjectID)
	assert.Equal(t, 5*time.Second, cfg.SanityTimeout)
	assert.Equal(t, []string{"jane@jane.dev"}, cfg.ContactTo)
	assert.Equal(t, 10, cfg.ContactRateLimit)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: From File\nsanity_dataset: staging\n"), 0o644))

	t.Setenv("PORTFOLIO_NAME", "From Env")
	t.Setenv("PORTFOLIO_SANITY_USE_CDN", "true")
	t.Setenv("PORTFOLIO_SESSION_SECRET", "env-secret-0123456789")

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Name)
	assert.Equal(t, "staging", cfg.SanityDataset)
	assert.True(t, cfg.SanityUseCDN)
	assert.Equal(t, "env-secret-0123456789", cfg.SessionSecret)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	t.Setenv("PORTFOLIO_ADDR", ":9000")
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("addr", "", "")
	flags.String("backend", "", "")
	require.NoError(t, flags.Parse([]string{"--addr", ":8080", "--backend", "sqlite"}))

	cfg, err := loadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.ContentBackend)
}

func TestLoadConfigMissingDefaultFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := loadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Name)
}

func TestLoadConfigMissingExplicitFileFails(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
