// Package fileprocessor handles file selection and output file handling
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tsldisasm/internal/loader"
	"github.com/retroenv/tsldisasm/internal/options"
	"github.com/retroenv/tsldisasm/internal/pipeline"
	"golang.org/x/term"
)

// Output file extensions of the commands.
const (
	ListingExtension = ".asm"
	ImageExtension   = ".mem"
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	buf, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	disasmOptions.Color = disasmOptions.Color && writer == os.Stdout && isTerminal(os.Stdout)

	p := pipeline.New(logger)
	if _, err := p.Execute(ctx, buf, opts, disasmOptions, writer); err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile, command string) string {
	ext := filepath.Ext(inputFile)
	newExt := ListingExtension
	if command == options.CommandConvert {
		newExt = ImageExtension
	}
	return inputFile[:len(inputFile)-len(ext)] + newExt
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("tsldisasm - TSL binary disassembler",
		log.String("version", buildinfo.Version(version, commit, date)))
}
