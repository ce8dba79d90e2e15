package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range dropboxEnv {
		t.Setenv(env, "")
	}
	t.Setenv("DROPDATE_FOLDER_PATH", "")
	t.Setenv("DROPDATE_SCHEDULE", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default.FolderPath, cfg.FolderPath)
	assert.Equal(t, Default.Schedule, cfg.Schedule)
	assert.True(t, cfg.RunOnStartup)
	assert.Equal(t, Default.TokenURL, cfg.TokenURL)
	assert.Empty(t, cfg.Dropbox.AccessToken)
}

func TestLoadDropboxEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DROPBOX_ACCESS_TOKEN", "access")
	t.Setenv("DROPBOX_REFRESH_TOKEN", "refresh")
	t.Setenv("DROPBOX_APP_KEY", "key")
	t.Setenv("DROPBOX_APP_SECRET", "secret")
	t.Setenv("DROPDATE_FOLDER_PATH", "/inbox")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "access", cfg.Dropbox.AccessToken)
	assert.Equal(t, "refresh", cfg.Dropbox.RefreshToken)
	assert.Equal(t, "key", cfg.Dropbox.AppKey)
	assert.Equal(t, "secret", cfg.Dropbox.AppSecret)
	assert.Equal(t, "/inbox", cfg.FolderPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := "folder_path: /photos\nschedule: \"0 0 * * * *\"\nrun_on_startup: false\ndropbox:\n  access_token: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "/photos", cfg.FolderPath)
	assert.Equal(t, "0 0 * * * *", cfg.Schedule)
	assert.False(t, cfg.RunOnStartup)
	assert.Equal(t, "from-file", cfg.Dropbox.AccessToken)
}

func TestEnvOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("dropbox:\n  access_token: from-file\n"), 0600))
	t.Setenv("DROPBOX_ACCESS_TOKEN", "from-env")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Dropbox.AccessToken)
}

func TestValidate(t *testing.T) {
	t.Run("missing access token", func(t *testing.T) {
		cfg := Default
		assert.ErrorIs(t, cfg.Validate(), ErrMissingAccessToken)
	})

	t.Run("access token only", func(t *testing.T) {
		cfg := Default
		cfg.Dropbox.AccessToken = "a"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("partial refresh credentials", func(t *testing.T) {
		cfg := Default
		cfg.Dropbox.AccessToken = "a"
		cfg.Dropbox.RefreshToken = "r"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DROPBOX_APP_KEY, DROPBOX_APP_SECRET")
	})

	t.Run("empty folder", func(t *testing.T) {
		cfg := Default
		cfg.Dropbox.AccessToken = "a"
		cfg.FolderPath = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestWatchWithoutConfigFile(t *testing.T) {
	clearEnv(t)
	called := false
	require.NoError(t, Watch(t.TempDir(), func(*Config, error) { called = true }))
	assert.False(t, called)
}
