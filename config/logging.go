package config

import (
	"fmt"

	"github.com/kilianp07/cellsim/infra/logger"
)

// LoggingConfig defines the verbosity of the simulation logs.
type LoggingConfig struct {
	// Verbosity goes from 0 (errors only) to 7 (every cell step).
	Verbosity int `json:"verbosity"`
}

// Validate checks the verbosity range.
func (c LoggingConfig) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > logger.MaxVerbosity {
		return fmt.Errorf("verbosity %d out of range [0, %d]", c.Verbosity, logger.MaxVerbosity)
	}
	return nil
}
