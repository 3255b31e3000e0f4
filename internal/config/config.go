// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tsldisasm/internal/disasm"
	"github.com/retroenv/tsldisasm/internal/infodb"
	"github.com/retroenv/tsldisasm/internal/options"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateAnnotator loads the information database if one is configured for a listing.
// It returns nil if no annotation is needed.
func CreateAnnotator(logger *log.Logger, opts options.Program) (disasm.Annotator, error) {
	if opts.InfoDB == "" || opts.Command != options.CommandDisassemble {
		return nil, nil
	}

	db, err := infodb.Load(logger, opts.InfoDB)
	if err != nil {
		return nil, fmt.Errorf("loading information database: %w", err)
	}
	return db, nil
}
