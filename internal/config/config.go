// =============================================================================
// Booking Invoicer - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
//
// CONFIGURATION FILES:
//   1. Application Config (app.yaml): directories, logging, HTTP timeout,
//      reporting and the optional S3 payload mirror
//   2. Booking Settings (config/config.ini): endpoint, headers and tax rates
//      used by the conversion itself (see settings.go)
//   3. Payload Template (config/payload-template.json): the invoice skeleton
//      every generated payload starts from (see template.go)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// APPLICATION CONFIGURATION STRUCTURE
// =============================================================================

// AppConfig holds the global application configuration.
// This is loaded from the app.yaml file.
type AppConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// DataDir is the base directory for all booking data.
	// The incoming/processed/payloads/reports directories default to
	// subdirectories of DataDir.
	// Default: "./data"
	DataDir string `yaml:"data_dir"`

	// IncomingDir is where booking export CSV files wait to be processed.
	// Default: "<data_dir>/incoming"
	IncomingDir string `yaml:"incoming_dir"`

	// ProcessedDir is where CSV files are moved after a batch completes.
	// Default: "<data_dir>/processed"
	ProcessedDir string `yaml:"processed_dir"`

	// PayloadsDir is where generated JSON payloads are written.
	// Default: "<data_dir>/payloads"
	PayloadsDir string `yaml:"payloads_dir"`

	// ReportsDir is where XLSX result reports and processing summaries go.
	// Default: "<data_dir>/reports"
	ReportsDir string `yaml:"reports_dir"`

	// =========================================================================
	// BOOKING SETTINGS AND TEMPLATE
	// =========================================================================

	// SettingsFile is the KEY=VALUE file with endpoint, headers and tax rates.
	// Default: "./config/config.ini"
	SettingsFile string `yaml:"settings_file"`

	// TemplateFile is the JSON payload template.
	// Default: "./config/payload-template.json"
	TemplateFile string `yaml:"template_file"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file.
	// Default: "./logs/invoicer.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// SUBMISSION SETTINGS
	// =========================================================================

	// HTTPTimeout bounds each submission round trip. Submissions always have
	// a limit; zero or unset selects the default.
	// Default: 30s
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// WriteReport enables the per-file XLSX results report.
	// Default: true
	WriteReport *bool `yaml:"write_report"`

	// S3 configures the optional payload mirror.
	S3 S3Config `yaml:"s3"`
}

// S3Config holds the settings for mirroring payloads to S3.
type S3Config struct {
	// Enabled turns the mirror on. When false, payloads are only written locally.
	Enabled bool `yaml:"enabled"`

	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ReportEnabled reports whether XLSX result reports should be written.
func (c *AppConfig) ReportEnabled() bool {
	return c.WriteReport == nil || *c.WriteReport
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadAppConfig loads the application configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the application configuration file.
//
// RETURNS:
//   - A pointer to the AppConfig struct.
//   - An error if the file exists but cannot be read or parsed.
//
// A missing file is not an error: every option has a default, so a fresh
// checkout works before 'invoicer init' has been run.
func LoadAppConfig(configPath string) (*AppConfig, error) {
	var config AppConfig

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyAppConfigDefaults(&config)

	if err := validateAppConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyAppConfigDefaults sets default values for any unset configuration options.
func applyAppConfigDefaults(config *AppConfig) {
	if config.DataDir == "" {
		config.DataDir = "./data"
	}
	if config.IncomingDir == "" {
		config.IncomingDir = filepath.Join(config.DataDir, "incoming")
	}
	if config.ProcessedDir == "" {
		config.ProcessedDir = filepath.Join(config.DataDir, "processed")
	}
	if config.PayloadsDir == "" {
		config.PayloadsDir = filepath.Join(config.DataDir, "payloads")
	}
	if config.ReportsDir == "" {
		config.ReportsDir = filepath.Join(config.DataDir, "reports")
	}
	if config.SettingsFile == "" {
		config.SettingsFile = "./config/config.ini"
	}
	if config.TemplateFile == "" {
		config.TemplateFile = "./config/payload-template.json"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/invoicer.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 30 * time.Second
	}
	if config.S3.Region == "" {
		config.S3.Region = "eu-central-1"
	}
	if config.S3.Prefix == "" {
		config.S3.Prefix = "payloads"
	}
}

// validateAppConfig validates the application configuration.
func validateAppConfig(config *AppConfig) error {
	if config.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative, got %s", config.HTTPTimeout)
	}

	if config.S3.Enabled && config.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.enabled is true")
	}

	return nil
}

// Directories returns every data directory the application writes to.
func (c *AppConfig) Directories() []string {
	return []string{
		c.IncomingDir,
		c.ProcessedDir,
		c.PayloadsDir,
		c.ReportsDir,
	}
}
