// Package config handles the setup of the firmware simulator.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the logger for the simulator run. Debug mode
// wins over quiet mode.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
