// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Dirs struct {
		PDF       string `mapstructure:"pdf" yaml:"pdf"`
		CSV       string `mapstructure:"csv" yaml:"csv"`
		Processed string `mapstructure:"processed" yaml:"processed"`
		Failed    string `mapstructure:"failed" yaml:"failed"`
	} `mapstructure:"dirs" yaml:"dirs"`

	Extraction struct {
		TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Database struct {
		URL string `mapstructure:"url" yaml:"-"` // Never serialize credentials
	} `mapstructure:"database" yaml:"database"`

	Accounts struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"accounts" yaml:"accounts"`
}

// LoadEnv loads environment variables from a .env file if one is present.
func LoadEnv() {
	_ = godotenv.Load()
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then STMT_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	inContainer := RunningInContainer()
	setDefaults(v, inContainer)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.stmt-ingest")
	v.AddConfigPath(".stmt-ingest")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars when the file is unreadable
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Legacy environment names kept from the container deployment
	bindLegacyEnv(v, "dirs.pdf", "PDF_INPUT_DIR")
	bindLegacyEnv(v, "dirs.csv", "CSV_OUTPUT_DIR")
	bindLegacyEnv(v, "dirs.processed", "PROCESSED_DIR")
	bindLegacyEnv(v, "dirs.failed", "FAILED_DIR")
	bindLegacyEnv(v, "extraction.timeout_seconds", "PDF_TIMEOUT_SECONDS")
	bindLegacyEnv(v, "database.url", "DATABASE_URL")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Env vars pointing at container mounts are ignored outside a container,
	// otherwise every local run would fail on an unwritable /data.
	if !inContainer {
		defaults := localDirDefaults()
		config.Dirs.PDF = resolveDir(config.Dirs.PDF, defaults["pdf"])
		config.Dirs.CSV = resolveDir(config.Dirs.CSV, defaults["csv"])
		config.Dirs.Processed = resolveDir(config.Dirs.Processed, defaults["processed"])
		config.Dirs.Failed = resolveDir(config.Dirs.Failed, defaults["failed"])
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func bindLegacyEnv(v *viper.Viper, key, envName string) {
	if err := v.BindEnv(key, envName); err != nil {
		fmt.Printf("Warning: failed to bind %s environment variable: %v\n", envName, err)
	}
}

// RunningInContainer detects whether the process runs inside a container.
func RunningInContainer() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	if info, err := os.Stat("/data"); err == nil && info.IsDir() {
		// A writable /data mount is the container layout contract
		return unixWritable("/data")
	}
	return false
}

func unixWritable(path string) bool {
	f, err := os.CreateTemp(path, ".writecheck")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

func containerDirDefaults() map[string]string {
	return map[string]string{
		"pdf":       "/data/pdfs",
		"csv":       "/data/csv",
		"processed": "/data/processed",
		"failed":    "/data/failed",
	}
}

func localDirDefaults() map[string]string {
	return map[string]string{
		"pdf":       "data/pdfs",
		"csv":       "data/csvs",
		"processed": "data/processed",
		"failed":    "data/failed",
	}
}

func resolveDir(value, fallback string) string {
	if value == "" || strings.HasPrefix(value, "/data") {
		return fallback
	}
	return value
}

func setDefaults(v *viper.Viper, inContainer bool) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	dirs := localDirDefaults()
	if inContainer {
		dirs = containerDirDefaults()
	}
	v.SetDefault("dirs.pdf", dirs["pdf"])
	v.SetDefault("dirs.csv", dirs["csv"])
	v.SetDefault("dirs.processed", dirs["processed"])
	v.SetDefault("dirs.failed", dirs["failed"])

	v.SetDefault("extraction.timeout_seconds", 30)
	v.SetDefault("database.url", "")
	v.SetDefault("accounts.file", "accounts.yaml")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Extraction.TimeoutSeconds < 1 || config.Extraction.TimeoutSeconds > 600 {
		return fmt.Errorf("extraction.timeout_seconds must be between 1 and 600, got: %d",
			config.Extraction.TimeoutSeconds)
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
