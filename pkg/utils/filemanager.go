// =============================================================================
// Payments Ledger - File Manager Utility
// =============================================================================
//
// This module provides the file helpers used around a run:
//   - Pre-flight check of the input path
//   - Run report naming (uuid / timestamp placeholders)
//   - Run report writing (YAML)
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/payments-ledger/internal/types"
)

// =============================================================================
// INPUT CHECKS
// =============================================================================

// CheckInputFile verifies that path names an existing regular file.
//
// RETURNS:
//   - An error wrapping types.ErrFileNotFound if nothing exists at path.
//   - An error if path is a directory.
func CheckInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", types.ErrFileNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateReportFileName generates a report file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - The run id (a new UUID when params has none)
//               {timestamp} - now as YYYYMMDD_HHMMSS
//               {date}      - now as YYYYMMDD
//               {time}      - now as HHMMSS
//   - now: The time used for the time placeholders.
//   - params: Extra placeholder values, keyed without braces.
//
// RETURNS:
//   - The generated file name, always ending in ".yaml" or ".yml".
//
// EXAMPLE:
//   format: "ledger_{timestamp}_{uuid}.yaml"
//   output: "ledger_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.yaml"
func GenerateReportFileName(format string, now time.Time, params map[string]string) string {
	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	lower := strings.ToLower(result)
	if !strings.HasSuffix(lower, ".yaml") && !strings.HasSuffix(lower, ".yml") {
		result += ".yaml"
	}

	return result
}

// =============================================================================
// RUN REPORT
// =============================================================================

// RunReport summarizes one run.
type RunReport struct {
	RunID            string         `yaml:"run_id"`
	InputFile        string         `yaml:"input_file"`
	StartTime        time.Time      `yaml:"start_time"`
	Duration         string         `yaml:"duration"`
	RecordsProcessed int            `yaml:"records_processed"`
	Clients          int            `yaml:"clients"`
	LockedClients    []uint16       `yaml:"locked_clients"`
	OpenDisputes     int            `yaml:"open_disputes"`
	Applied          map[string]int `yaml:"applied"`
	Rejected         map[string]int `yaml:"rejected"`
	RejectedTotal    int            `yaml:"rejected_total"`
	OutputFormat     string         `yaml:"output_format"`
	OutputPath       string         `yaml:"output_path,omitempty"`
}

// WriteRunReport writes report as YAML into outputDir, creating the
// directory if needed.
//
// PARAMETERS:
//   - report: The run summary.
//   - outputDir: The directory to write the report file.
//   - fileNameFormat: See GenerateReportFileName. {uuid} is the run id.
//
// RETURNS:
//   - The path to the report file.
//   - An error if writing fails.
func WriteRunReport(report RunReport, outputDir, fileNameFormat string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", outputDir, err)
	}

	params := map[string]string{}
	if report.RunID != "" {
		params["uuid"] = report.RunID
	}

	fileName := GenerateReportFileName(fileNameFormat, report.StartTime, params)
	reportPath := filepath.Join(outputDir, fileName)

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode run report: %w", err)
	}

	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write run report: %w", err)
	}

	return reportPath, nil
}
