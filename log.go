package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

type logConfig struct {
	Debug   bool   `env:"PAPERVOICE_DEBUG"`
	LogFile string `env:"PAPERVOICE_LOGFILE"`
}

// setupLog configures the global logger from the environment and returns a
// closer for the log sink.
func setupLog() (func() error, error) {
	cfg, err := env.ParseAs[logConfig]()
	if err != nil {
		return nil, fmt.Errorf("error parsing log config: %w", err)
	}

	log.SetOutput(os.Stderr)
	// Narration output owns the terminal; keep routine logs quiet.
	log.SetLevel(log.WarnLevel)
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.SetOutput(f)
		return f.Close, nil
	}

	return func() error { return nil }, nil
}
