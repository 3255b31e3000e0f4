package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/tsldisasm/internal/isa"
)

// UnknownPolicy defines how bytes that do not start a recognized instruction are output.
type UnknownPolicy int

// Unknown byte policies.
const (
	EmitUnknown UnknownPolicy = iota // output every unknown byte on its own line
	SkipUnknown                      // output nothing for unknown bytes
)

// Policy names as used on the command line.
const (
	PolicyEmit = "emit"
	PolicySkip = "skip"
)

// ParseUnknownPolicy returns the policy for the given name.
func ParseUnknownPolicy(name string) (UnknownPolicy, error) {
	switch strings.ToLower(name) {
	case PolicyEmit:
		return EmitUnknown, nil
	case PolicySkip:
		return SkipUnknown, nil
	default:
		return 0, fmt.Errorf("unsupported unknown byte policy '%s', valid options: %s, %s",
			name, PolicyEmit, PolicySkip)
	}
}

func (p UnknownPolicy) String() string {
	if p == SkipUnknown {
		return PolicySkip
	}
	return PolicyEmit
}

// Scanner splits a buffer into instructions.
// Bytes that are unrecognized or that start a truncated instruction are returned as
// unknown instruction of one byte. A decoding scanner additionally returns bytes that
// violate the reserved bits of their format as unknown instruction of one byte.
type Scanner struct {
	buf       []byte
	rev       *isa.Revision
	cursor    int
	ins       isa.Instruction
	frameOnly bool
}

// NewScanner returns a decoding scanner for the buffer starting at offset 0.
func NewScanner(buf []byte, rev *isa.Revision) *Scanner {
	return &Scanner{
		buf: buf,
		rev: rev,
	}
}

// NewFrameScanner returns a scanner that only uses the length classification to split
// the buffer. Every classified window that fits into the buffer is returned as is.
func NewFrameScanner(buf []byte, rev *isa.Revision) *Scanner {
	return &Scanner{
		buf:       buf,
		rev:       rev,
		frameOnly: true,
	}
}

// Next advances to the next instruction and returns false once the buffer is exhausted.
func (s *Scanner) Next() bool {
	if s.cursor >= len(s.buf) {
		return false
	}

	offset := s.cursor
	length := s.rev.Classify(s.buf, offset)
	switch {
	case length == 0 || offset+length > len(s.buf):
		s.ins = isa.Instruction{Offset: offset}
	case s.frameOnly:
		s.ins = s.rev.Frame(offset, s.buf[offset:offset+length:offset+length])
	default:
		s.ins = s.rev.Decode(offset, s.buf[offset:offset+length:offset+length])
	}

	if s.ins.IsUnknown() {
		s.ins.Bytes = s.buf[offset : offset+1 : offset+1]
	}
	s.cursor += len(s.ins.Bytes)
	return true
}

// Instruction returns the current instruction.
func (s *Scanner) Instruction() isa.Instruction {
	return s.ins
}

// Offset returns the offset of the next instruction.
func (s *Scanner) Offset() int {
	return s.cursor
}
