// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tsldisasm/internal/config"
	"github.com/retroenv/tsldisasm/internal/disasm"
	"github.com/retroenv/tsldisasm/internal/options"
	"github.com/retroenv/tsldisasm/internal/verification"
	"github.com/retroenv/tsldisasm/internal/writer"
)

// Result of processing one input file.
type Result struct {
	Input string
	Stats disasm.Stats
}

// Pipeline orchestrates the complete workflow of one input file.
type Pipeline struct {
	logger *log.Logger
}

// New creates a new processing pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
	}
}

// Execute runs the selected command on the loaded input buffer and writes the result
// to output. The input file name of the options is only used for reporting.
func (p *Pipeline) Execute(ctx context.Context, buf []byte, opts options.Program,
	disasmOpts options.Disassembler, output io.Writer) (*Result, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing %s: %w", opts.Input, err)
	}

	annotator, err := config.CreateAnnotator(p.logger, opts)
	if err != nil {
		return nil, err
	}

	dis, err := disasm.New(p.logger, disasmOpts.DisasmOptions(annotator))
	if err != nil {
		return nil, fmt.Errorf("creating disassembler: %w", err)
	}

	p.printInfo(opts, disasmOpts, buf)

	stats, err := p.run(dis, opts.Command, disasmOpts, buf, output)
	if err != nil {
		return nil, err
	}
	p.printStats(opts, stats)

	if opts.Verify && opts.Command == options.CommandConvert {
		if err := verification.VerifyOutput(p.logger, opts, buf, dis.Options()); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return &Result{
		Input: opts.Input,
		Stats: stats,
	}, nil
}

// run executes the command and writes its output.
func (p *Pipeline) run(dis *disasm.Disasm, command string, disasmOpts options.Disassembler,
	buf []byte, output io.Writer) (disasm.Stats, error) {

	bufferedOutput := bufio.NewWriter(output)

	var (
		stats disasm.Stats
		err   error
	)

	switch command {
	case options.CommandDisassemble:
		listing := writer.NewListing(bufferedOutput, writer.Options{
			HexBytes:    disasmOpts.HexBytes,
			Offsets:     disasmOpts.Offsets,
			Color:       disasmOpts.Color,
			OffsetWidth: writer.OffsetWidth(len(buf)),
		})
		stats, err = dis.Disassemble(buf, listing.WriteLine)
		if err != nil {
			return stats, fmt.Errorf("disassembling: %w", err)
		}

	case options.CommandConvert:
		image := writer.NewImage(bufferedOutput)
		stats, err = dis.Convert(buf, image.WriteWord)
		if err != nil {
			return stats, fmt.Errorf("converting: %w", err)
		}

	default:
		return stats, fmt.Errorf("unsupported command '%s'", command)
	}

	if err := bufferedOutput.Flush(); err != nil {
		return stats, fmt.Errorf("flushing output: %w", err)
	}
	return stats, nil
}

// printInfo prints information about the file being processed.
func (p *Pipeline) printInfo(opts options.Program, disasmOpts options.Disassembler, buf []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing TSL binary",
		log.String("file", opts.Input),
		log.String("command", opts.Command),
		log.String("isa", disasmOpts.Revision.Name()),
		log.String("unknown", disasmOpts.Unknown.String()),
		log.Int("size", len(buf)),
	)
}

// printStats prints the result of a scan.
func (p *Pipeline) printStats(opts options.Program, stats disasm.Stats) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processed TSL binary",
		log.Int("lines", stats.Lines),
		log.Int("instructions", stats.Instructions),
		log.Int("unknown", stats.Unknown),
		log.Int("invalid", stats.Invalid),
	)

	opcodes := stats.UnknownOpcodes()
	if len(opcodes) == 0 {
		return
	}
	names := make([]string, len(opcodes))
	for i, op := range opcodes {
		names[i] = op.String()
	}
	p.logger.Warn("Input contains bytes that do not start a known instruction",
		log.String("opcodes", strings.Join(names, ", ")))
}
