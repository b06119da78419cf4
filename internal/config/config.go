// =============================================================================
// Payments Ledger - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file and applies defaults.
// Every setting has a default, so the tool runs without any config file.
//
// EXAMPLE (ledger.yaml):
//   log_level: info
//   input:
//     delimiter: ","
//   output:
//     format: csv
//     sort_by_client: true
//   report:
//     dir: ./reports
//
// PRECEDENCE:
//   defaults < config file < command line flags
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// FormatCSV writes the ledger as comma-separated text.
	FormatCSV = "csv"

	// FormatXLSX writes the ledger into an Excel workbook.
	FormatXLSX = "xlsx"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// LogLevel controls the verbosity of the stderr log.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Input contains settings for reading transaction files.
	Input InputSettings `yaml:"input"`

	// Output contains settings for writing the account ledger.
	Output OutputSettings `yaml:"output"`

	// Report contains settings for the optional run report.
	Report ReportSettings `yaml:"report"`
}

// InputSettings contains settings for parsing input files.
type InputSettings struct {
	// Delimiter separates fields in CSV input.
	// Common values: "," (comma), "|" (pipe), "tab", ";"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// SheetName is the worksheet read from .xlsx input.
	// Default: "" (the first sheet)
	SheetName string `yaml:"sheet_name"`
}

// OutputSettings contains settings for the account ledger output.
type OutputSettings struct {
	// Format is "csv" or "xlsx".
	// Default: "csv"
	Format string `yaml:"format"`

	// Path is the destination file. Empty writes CSV to standard output.
	// Required for "xlsx".
	Path string `yaml:"path"`

	// SortByClient orders rows by client id instead of first appearance.
	// Default: false
	SortByClient bool `yaml:"sort_by_client"`

	// SheetName is the worksheet written for "xlsx" output.
	// Default: "Accounts"
	SheetName string `yaml:"sheet_name"`
}

// ReportSettings contains settings for the run report.
type ReportSettings struct {
	// Dir is where run reports are written. Empty disables the report.
	Dir string `yaml:"dir"`

	// FileNameFormat names the report file.
	// Placeholders:
	//   {uuid}      - The run id
	//   {timestamp} - Run start time (YYYYMMDD_HHMMSS)
	// Default: "ledger_{timestamp}_{uuid}.yaml"
	FileNameFormat string `yaml:"file_name_format"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. Empty returns Default().
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file cannot be read, parsed or fails validation.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset option.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Input.Delimiter == "" {
		config.Input.Delimiter = ","
	}
	if config.Output.Format == "" {
		config.Output.Format = FormatCSV
	}
	if config.Output.SheetName == "" {
		config.Output.SheetName = "Accounts"
	}
	if config.Report.FileNameFormat == "" {
		config.Report.FileNameFormat = "ledger_{timestamp}_{uuid}.yaml"
	}
}

// Validate checks option values. It is called by Load and again by the CLI
// after flags have been applied.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	switch c.Output.Format {
	case FormatCSV:
	case FormatXLSX:
		if c.Output.Path == "" {
			return fmt.Errorf("output.path is required for %s output", FormatXLSX)
		}
	default:
		return fmt.Errorf("unknown output.format %q", c.Output.Format)
	}

	if _, err := c.Input.Comma(); err != nil {
		return err
	}

	return nil
}

// Comma returns the delimiter as a rune for encoding/csv.
func (s InputSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	case ",", "comma", "":
		return ',', nil
	}

	runes := []rune(s.Delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("input.delimiter must be a single character, got %q", s.Delimiter)
	}
	return runes[0], nil
}
