// Package writer implements the listing and memory image output formats.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/tsldisasm/internal/disasm"
)

const (
	minOffsetWidth  = 4
	maxLineBytes    = 8 // size of the largest instruction
	columnDelimiter = " | "
	annotationStart = "  ; "
)

// ANSI escape sequences used for colored listings.
const (
	colorOffset     = "\x1b[33m"
	colorUnknown    = "\x1b[31m"
	colorAnnotation = "\x1b[32m"
	colorReset      = "\x1b[0m"
)

// Options of the listing writer.
type Options struct {
	HexBytes    bool // output the raw instruction bytes
	Offsets     bool // output the offset of every line
	Color       bool // wrap columns in ANSI color sequences
	OffsetWidth int  // minimum number of hex digits of offsets
}

// Listing writes disassembly listing lines.
type Listing struct {
	options Options
	writer  io.Writer
}

// NewListing returns a new listing writer.
func NewListing(writer io.Writer, options Options) *Listing {
	if options.OffsetWidth < minOffsetWidth {
		options.OffsetWidth = minOffsetWidth
	}
	return &Listing{
		options: options,
		writer:  writer,
	}
}

// OffsetWidth returns the number of hex digits needed to print every offset of a buffer
// of the given size.
func OffsetWidth(size int) int {
	width := 1
	for last := size - 1; last > 0xF; last >>= 4 {
		width++
	}
	return max(width, minOffsetWidth)
}

// WriteLine writes one listing line. It can be used as disasm.LineSink.
func (l *Listing) WriteLine(line disasm.Line) error {
	buf := &strings.Builder{}

	if l.options.Offsets {
		offset := fmt.Sprintf("%0*x", l.options.OffsetWidth, line.Offset)
		buf.WriteString(l.colorize(offset, colorOffset))
		buf.WriteString(columnDelimiter)
	}

	if l.options.HexBytes {
		fmt.Fprintf(buf, "%-*s", maxLineBytes*3-1, hexBytes(line.Bytes))
		buf.WriteString(columnDelimiter)
	}

	mnemonic := line.Mnemonic()
	if line.IsUnknown() || line.Invalid {
		mnemonic = l.colorize(mnemonic, colorUnknown)
	}
	buf.WriteString(mnemonic)

	if line.Annotation != "" {
		buf.WriteString(annotationStart)
		buf.WriteString(l.colorize(line.Annotation, colorAnnotation))
	}

	if _, err := fmt.Fprintln(l.writer, buf.String()); err != nil {
		return fmt.Errorf("writing listing line: %w", err)
	}
	return nil
}

func (l *Listing) colorize(s, color string) string {
	if !l.options.Color {
		return s
	}
	return color + s + colorReset
}

// hexBytes returns the bytes as space separated lowercase hex values.
func hexBytes(data []byte) string {
	buf := &strings.Builder{}
	for i, b := range data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%02x", b)
	}
	return buf.String()
}

// Image writes memory image lines.
type Image struct {
	writer io.Writer
}

// NewImage returns a new memory image writer.
func NewImage(writer io.Writer) *Image {
	return &Image{
		writer: writer,
	}
}

// WriteWord writes the bytes of one instruction as contiguous lowercase hex string.
// It can be used as disasm.WordSink.
func (i *Image) WriteWord(data []byte) error {
	if _, err := fmt.Fprintf(i.writer, "%x\n", data); err != nil {
		return fmt.Errorf("writing image line: %w", err)
	}
	return nil
}
