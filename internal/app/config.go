package app

import "errors"

// Config holds everything the CLI layer resolves before the App starts.
type Config struct {
	RootPath   string // workspace root holding the packages
	ConfigPath string // optional release.hcl

	LogFormat string
	LogLevel  string
	Workers   int  // overrides the release.hcl value when > 0
	Nightly   bool // publish under the nightly dist-tag
	Plan      bool // print the wave plan instead of publishing
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RootPath == "" {
		return nil, errors.New("RootPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
