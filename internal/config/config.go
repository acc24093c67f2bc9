package config

import (
	"fmt"
	"os"
	"strconv"

	"gostatcheck/internal"
	"gostatcheck/internal/errors"
)

// Defaults applied when the matching environment variable is unset.
const (
	DefaultSignificanceLevel = 0.05
	DefaultWorkers           = 1
	DefaultRunsRequired      = 1
	DefaultSheetName         = "Statcheck"
)

// Config represents the complete application configuration
type Config struct {
	Check    CheckConfig
	Vote     VoteConfig
	Output   OutputConfig
	Log      LogConfig
	Database DatabaseConfig
}

// CheckConfig holds the settings of one checking pass
type CheckConfig struct {
	SignificanceLevel float64
	// Workers is the number of records evaluated at once; 1 is sequential.
	Workers int
}

// VoteConfig holds majority-vote settings
type VoteConfig struct {
	// RunsRequired is the minimum number of repeated runs a vote needs.
	RunsRequired int
}

// OutputConfig holds result workbook settings
type OutputConfig struct {
	SheetName string
}

// DatabaseConfig holds the optional result store connection
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a result store is configured.
func (d DatabaseConfig) Enabled() bool { return d.URL != "" }

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	checkConfig, err := loadCheckConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load check configuration")
	}
	config.Check = *checkConfig

	voteConfig, err := loadVoteConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load vote configuration")
	}
	config.Vote = *voteConfig

	config.Output = OutputConfig{SheetName: getEnvOrDefault("STATCHECK_SHEET", DefaultSheetName)}
	config.Log = LogConfig{Level: internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))}
	config.Database = DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", "")}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration Load produces with an empty environment.
func Default() *Config {
	return &Config{
		Check:  CheckConfig{SignificanceLevel: DefaultSignificanceLevel, Workers: DefaultWorkers},
		Vote:   VoteConfig{RunsRequired: DefaultRunsRequired},
		Output: OutputConfig{SheetName: DefaultSheetName},
		Log:    LogConfig{Level: internal.LogLevelInfo},
	}
}

func loadCheckConfig() (*CheckConfig, error) {
	alpha, err := getEnvFloat("STATCHECK_SIGNIFICANCE_LEVEL", DefaultSignificanceLevel)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("STATCHECK_WORKERS", DefaultWorkers)
	if err != nil {
		return nil, err
	}
	return &CheckConfig{SignificanceLevel: alpha, Workers: workers}, nil
}

func loadVoteConfig() (*VoteConfig, error) {
	runs, err := getEnvInt("STATCHECK_RUNS_REQUIRED", DefaultRunsRequired)
	if err != nil {
		return nil, err
	}
	return &VoteConfig{RunsRequired: runs}, nil
}

// Validate checks the invariants Load enforces. The CLI calls it again
// after applying flag overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(config *Config) error {
	if config.Check.SignificanceLevel <= 0 || config.Check.SignificanceLevel >= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("significance level must be in (0, 1), got %g", config.Check.SignificanceLevel))
	}
	if config.Check.Workers < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("workers must be at least 1, got %d", config.Check.Workers))
	}
	if config.Vote.RunsRequired < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("runs required must be at least 1, got %d", config.Vote.RunsRequired))
	}
	if config.Output.SheetName == "" {
		return errors.ConfigInvalid("sheet name is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Malformed numeric values are errors, not defaults.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return floatValue, nil
}
