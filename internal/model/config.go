package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// APIConfig points the client at the remote backend.
type APIConfig struct {
	// BaseURL is the root URL of the backend (e.g., https://api.example.com).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds a single HTTP round trip.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// PollIntervalSec is how often the board refreshes from the server.
	// Zero turns background refresh off.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// StorageConfig locates the local SQLite database.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`

	// File receives the log while the terminal board owns the screen.
	File string `mapstructure:"file" yaml:"file"`
}

// KeyringConfig selects where session credentials are kept.
type KeyringConfig struct {
	Service string `mapstructure:"service" yaml:"service"`
	FileDir string `mapstructure:"file_dir" yaml:"file_dir"`
}

// WaterConfig holds water tracker preferences.
type WaterConfig struct {
	DailyGoalML int `mapstructure:"daily_goal_ml" yaml:"daily_goal_ml"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Keyring KeyringConfig `mapstructure:"keyring" yaml:"keyring"`
	Water   WaterConfig   `mapstructure:"water" yaml:"water"`
}

// configDir returns ~/.config/dayboard, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "dayboard")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dayboard/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		API: APIConfig{
			TimeoutSec:      15,
			PollIntervalSec: 120,
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(dir, "dayboard.db"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "dayboard.log"),
		},
		Keyring: KeyringConfig{
			Service: "dayboard",
			FileDir: filepath.Join(dir, "credentials"),
		},
		Water: WaterConfig{
			DailyGoalML: 2000,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A .env file in the working directory is loaded first, and DAYBOARD_*
// environment variables override file values (DAYBOARD_API_BASE_URL sets
// api.base_url). If the file does not exist, defaults plus environment apply.
func LoadConfig(path string) (*AppConfig, error) {
	// .env is optional.
	_ = godotenv.Load()

	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("dayboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout_sec", def.API.TimeoutSec)
	v.SetDefault("api.poll_interval_sec", def.API.PollIntervalSec)
	v.SetDefault("storage.db_path", def.Storage.DBPath)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("keyring.service", def.Keyring.Service)
	v.SetDefault("keyring.file_dir", def.Keyring.FileDir)
	v.SetDefault("water.daily_goal_ml", def.Water.DailyGoalML)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = def.API.TimeoutSec
	}
	if cfg.API.PollIntervalSec < 0 {
		cfg.API.PollIntervalSec = 0
	}
	if cfg.Water.DailyGoalML <= 0 {
		cfg.Water.DailyGoalML = def.Water.DailyGoalML
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("keyring", cfg.Keyring)
	v.Set("water", cfg.Water)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
