package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/meicalc/meicalc/internal/calculation"
)

// Environment variables read by LoadSettings
const (
	EnvTables       = "MEICALC_TABLES"
	EnvLogLevel     = "MEICALC_LOG_LEVEL"
	EnvLogFormat    = "MEICALC_LOG_FORMAT"
	EnvAlertOffsets = "MEICALC_ALERT_OFFSETS"
	EnvAddr         = "MEICALC_ADDR"
	EnvCORSOrigins  = "MEICALC_CORS_ORIGINS"
)

// Settings holds the runtime configuration shared by every surface
type Settings struct {
	TablesPath   string
	Logging      LoggingConfig
	AlertOffsets []int
	Addr         string
	CORSOrigins  []string
}

// LoggingConfig selects the log handler and level
type LoggingConfig struct {
	Level  string
	Format string // "text" or "json"
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		Logging:      LoggingConfig{Level: "info", Format: "text"},
		AlertOffsets: calculation.DefaultAlertSchedule().Offsets,
		Addr:         ":8080",
		CORSOrigins:  []string{"*"},
	}
}

// LoadSettings loads envFiles (missing files are ignored) into the process
// environment and then reads the MEICALC_* variables over the defaults.
// Variables already set in the environment win over the files.
func LoadSettings(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	s := DefaultSettings()
	if v := os.Getenv(EnvTables); v != "" {
		s.TablesPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		s.Logging.Format = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		s.Addr = v
	}
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		s.CORSOrigins = splitList(v)
	}
	if v := os.Getenv(EnvAlertOffsets); v != "" {
		offsets, err := ParseOffsets(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvAlertOffsets, err)
		}
		s.AlertOffsets = offsets
	}
	return s, nil
}

// ParseOffsets parses a comma separated list like "5,3,1" into a validated
// alert schedule's offsets.
func ParseOffsets(v string) ([]int, error) {
	var offsets []int
	for _, part := range splitList(v) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid offset %q: %w", part, err)
		}
		offsets = append(offsets, n)
	}
	schedule, err := calculation.NewAlertSchedule(offsets)
	if err != nil {
		return nil, err
	}
	return schedule.Offsets, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
