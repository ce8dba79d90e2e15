package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type DropboxConfig struct {
	AccessToken  string `mapstructure:"access_token"`
	RefreshToken string `mapstructure:"refresh_token"`
	AppKey       string `mapstructure:"app_key"`
	AppSecret    string `mapstructure:"app_secret"`
}

type Config struct {
	FolderPath   string        `mapstructure:"folder_path"`
	Schedule     string        `mapstructure:"schedule"`
	RunOnStartup bool          `mapstructure:"run_on_startup"`
	TokenURL     string        `mapstructure:"token_url"`
	HealthAddr   string        `mapstructure:"health_addr"`
	Dropbox      DropboxConfig `mapstructure:"dropbox"`
}

var Default = Config{
	FolderPath:   "/cloud script test",
	Schedule:     "0 */5 * * * *",
	RunOnStartup: true,
	TokenURL:     "https://api.dropboxapi.com/oauth2/token",
}

var ErrMissingAccessToken = errors.New("DROPBOX_ACCESS_TOKEN is not set")

// Credentials keep the names the hosting environment already uses, so they
// are bound explicitly instead of going through the DROPDATE_ prefix.
var dropboxEnv = map[string]string{
	"dropbox.access_token":  "DROPBOX_ACCESS_TOKEN",
	"dropbox.refresh_token": "DROPBOX_REFRESH_TOKEN",
	"dropbox.app_key":       "DROPBOX_APP_KEY",
	"dropbox.app_secret":    "DROPBOX_APP_SECRET",
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}

	return filepath.Join(home, ".dropdate"), nil
}

func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	return LoadFrom(dir)
}

func LoadFrom(dir string) (*Config, error) {
	v, err := newViper(dir)
	if err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// Watch calls onChange with the reloaded config every time the config file
// changes. It is a no-op when no config file exists.
func Watch(dir string, onChange func(*Config, error)) error {
	v, err := newViper(dir)
	if err != nil {
		return err
	}

	if v.ConfigFileUsed() == "" {
		return nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		onChange(unmarshal(v))
	})
	v.WatchConfig()

	return nil
}

func (c *Config) Validate() error {
	if c.Dropbox.AccessToken == "" {
		return ErrMissingAccessToken
	}

	if c.FolderPath == "" {
		return fmt.Errorf("folder_path is not set")
	}

	var missing []string
	for _, kv := range [][2]string{
		{"DROPBOX_REFRESH_TOKEN", c.Dropbox.RefreshToken},
		{"DROPBOX_APP_KEY", c.Dropbox.AppKey},
		{"DROPBOX_APP_SECRET", c.Dropbox.AppSecret},
	} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}

	// all three or none
	if len(missing) > 0 && len(missing) < 3 {
		return fmt.Errorf("incomplete refresh credentials, missing: %s", strings.Join(missing, ", "))
	}

	return nil
}

func newViper(dir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("folder_path", Default.FolderPath)
	v.SetDefault("schedule", Default.Schedule)
	v.SetDefault("run_on_startup", Default.RunOnStartup)
	v.SetDefault("token_url", Default.TokenURL)
	v.SetDefault("health_addr", Default.HealthAddr)

	v.SetEnvPrefix("DROPDATE")
	v.AutomaticEnv()

	for key, env := range dropboxEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
