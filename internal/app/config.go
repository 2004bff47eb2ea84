package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ArchPath string // hcl file or directory
	OutDir   string // empty: write nothing

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ArchPath == "" {
		return nil, errors.New("ArchPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 0 {
		return nil, errors.New("WorkerCount cannot be negative")
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	return &cfg, nil
}
