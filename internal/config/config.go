// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns defaults; Load layers a YAML file and env vars on top.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Row policies for malformed dataset rows.
const (
	RowPolicySkip = "skip"
	RowPolicyFail = "fail"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath points at the athlete events CSV.
	DataPath string `koanf:"data_path"`

	// Country is the team whose medals are charted.
	Country string `koanf:"country"`

	// MedalSentinel is the Medal value meaning "no medal".
	MedalSentinel string `koanf:"medal_sentinel"`

	// Thresholds is the approximate number of histogram bins.
	Thresholds int `koanf:"thresholds"`

	// NiceCount is the tick count used to round the year domain.
	NiceCount int `koanf:"nice_count"`

	// ExampleCount caps the example records shown per bin.
	ExampleCount int `koanf:"example_count"`

	// RowPolicy decides what happens to malformed rows: skip or fail.
	RowPolicy string `koanf:"row_policy"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		DataPath:      "athlete_events.csv",
		Country:       "United States",
		MedalSentinel: "NA",
		Thresholds:    20,
		NiceCount:     10,
		ExampleCount:  3,
		RowPolicy:     RowPolicySkip,
	}
}

// Validate checks the fields the service cannot run without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.Thresholds <= 0:
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalidConfig)
	case c.NiceCount <= 0:
		return fmt.Errorf("%w: nice_count must be positive", ErrInvalidConfig)
	}
	switch c.RowPolicy {
	case RowPolicySkip, RowPolicyFail:
	default:
		return fmt.Errorf("%w: unknown row_policy %q", ErrInvalidConfig, c.RowPolicy)
	}
	return nil
}
