// Package main implements the main entry point for the TSL binary disassembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tsldisasm/internal/cli"
	"github.com/retroenv/tsldisasm/internal/config"
	"github.com/retroenv/tsldisasm/internal/fileprocessor"
	"github.com/retroenv/tsldisasm/internal/options"
	"github.com/retroenv/tsldisasm/internal/verification"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		return 1
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Error("Selecting input files failed", log.Err(err))
		return 1
	}

	exitCode := 0
	for _, file := range files {
		opts.Input = file
		if opts.Batch != "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file, opts.Command)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts, disasmOptions); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return 1
			}

			msg := "Disassembling failed"
			switch {
			case errors.Is(err, verification.ErrMismatch):
				msg = "Verification failed"
			case opts.Command == options.CommandConvert:
				msg = "Converting failed"
			}
			logger.Error(msg, log.String("file", file), log.Err(err))
			exitCode = 1
		}
	}
	return exitCode
}
