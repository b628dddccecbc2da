package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	DataDir     string `mapstructure:"data_dir"`
	HistoryFile string `mapstructure:"history_file"`
	LogFile     string `mapstructure:"log_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// DefaultsConfig contains per-operation defaults applied when the
// corresponding flag is not given.
type DefaultsConfig struct {
	// PackageManager forces a manager (npm, yarn, pnpm, bun) instead of
	// filesystem detection. Empty means detect.
	PackageManager string `mapstructure:"package_manager"`
	// Silent suppresses the delegated manager's stdio.
	Silent bool `mapstructure:"silent"`
	// TimeoutSecs bounds every delegated subprocess.
	TimeoutSecs int `mapstructure:"timeout_secs"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".config", "nodepm"))
	}
	viper.AddConfigPath(".")

	setDefaults()

	// Environment variable overrides
	viper.SetEnvPrefix("NODEPM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.DataDir = expandPath(cfg.Paths.DataDir)
	cfg.Paths.HistoryFile = expandPath(cfg.Paths.HistoryFile)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		homeDir = "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "nodepm")
	viper.SetDefault("paths.data_dir", dataDir)
	viper.SetDefault("paths.history_file", filepath.Join(dataDir, "history.db"))
	viper.SetDefault("paths.log_file", filepath.Join(dataDir, "nodepm.log"))

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.color", "auto")

	viper.SetDefault("defaults.package_manager", "")
	viper.SetDefault("defaults.silent", false)
	viper.SetDefault("defaults.timeout_secs", 600)
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	return os.ExpandEnv(path)
}
