// Package disasm implements the TSL disassembly listing and memory image generation.
package disasm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tsldisasm/internal/isa"
)

// Annotator returns an optional comment for a recognized instruction.
type Annotator interface {
	Annotate(ins isa.Instruction) string
}

// Line is one line of a disassembly listing.
type Line struct {
	isa.Instruction
	Annotation string
}

// LineSink receives the lines of a disassembly listing.
type LineSink func(line Line) error

// WordSink receives the raw bytes of every memory image line.
type WordSink func(data []byte) error

// Options of the disassembler.
type Options struct {
	Revision  *isa.Revision
	Unknown   UnknownPolicy
	Annotator Annotator // optional
}

// Disasm implements the TSL disassembler.
type Disasm struct {
	logger  *log.Logger
	options Options
}

// New returns a new disassembler.
func New(logger *log.Logger, options Options) (*Disasm, error) {
	if options.Revision == nil {
		return nil, errors.New("missing ISA revision")
	}

	return &Disasm{
		logger:  logger,
		options: options,
	}, nil
}

// Options returns the disassembler options.
func (dis *Disasm) Options() Options {
	return dis.options
}

// Disassemble scans the buffer and passes one line per instruction to the sink.
// Unknown bytes are passed as single byte lines unless the policy skips them.
// The only errors returned are the ones returned by the sink.
func (dis *Disasm) Disassemble(buf []byte, sink LineSink) (Stats, error) {
	scanner := NewScanner(buf, dis.options.Revision)
	return dis.scan(scanner, func(ins isa.Instruction) error {
		line := Line{Instruction: ins}
		if dis.options.Annotator != nil && !ins.IsUnknown() {
			line.Annotation = dis.options.Annotator.Annotate(ins)
		}
		return sink(line)
	})
}

// Convert splits the buffer using the length classification only and passes the raw
// bytes of every classified window to the sink. Windows are not decoded, a window that
// violates reserved bits is output unchanged.
func (dis *Disasm) Convert(buf []byte, sink WordSink) (Stats, error) {
	scanner := NewFrameScanner(buf, dis.options.Revision)
	return dis.scan(scanner, func(ins isa.Instruction) error {
		return sink(ins.Bytes)
	})
}

func (dis *Disasm) scan(scanner *Scanner, output func(ins isa.Instruction) error) (Stats, error) {
	stats := newStats()

	for scanner.Next() {
		ins := scanner.Instruction()
		stats.Bytes += len(ins.Bytes)

		switch {
		case ins.IsUnknown():
			stats.addUnknown(ins.Bytes[0])
			dis.logger.Debug("Unknown instruction",
				log.Hex("offset", ins.Offset),
				log.Hex("byte", ins.Bytes[0]))
			if dis.options.Unknown == SkipUnknown {
				continue
			}

		case ins.Invalid:
			stats.Instructions++
			stats.Invalid++
			dis.logger.Debug("Invalid instruction encoding",
				log.Hex("offset", ins.Offset),
				log.String("mnemonic", ins.Mnemonic()))

		default:
			stats.Instructions++
		}

		if err := output(ins); err != nil {
			return stats, fmt.Errorf("writing instruction at offset %04x: %w", ins.Offset, err)
		}
		stats.Lines++
	}

	return stats, nil
}
