package isa

import "strings"

// Unknown is the mnemonic of bytes that do not form a recognized instruction.
const Unknown = "UNKNOWN"

// maxInstructionSize is the size of the largest instruction.
const maxInstructionSize = 8

// Instruction is a decoded instruction.
type Instruction struct {
	Offset int
	Bytes  []byte

	// Format is nil for unknown bytes.
	Format *Format
	// Invalid is set if the format was identified but its variant bits do not match.
	Invalid  bool
	Operands []Operand
}

// IsUnknown returns whether the bytes did not match any format.
func (i Instruction) IsUnknown() bool {
	return i.Format == nil
}

// Mnemonic returns the instruction name followed by its comma separated operands.
func (i Instruction) Mnemonic() string {
	switch {
	case i.Format == nil:
		return Unknown
	case i.Invalid:
		return i.Format.InvalidMnemonic
	case len(i.Operands) == 0:
		return i.Format.Name
	}

	var sb strings.Builder
	sb.WriteString(i.Format.Name)
	for j, op := range i.Operands {
		if j == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(op.String())
	}
	return sb.String()
}

// Word returns the big-endian value of up to 8 bytes.
func Word(data []byte) uint64 {
	var w uint64
	for _, b := range data {
		w = w<<8 | uint64(b)
	}
	return w
}

// Decode decodes the instruction window that starts at offset. The window has to be of
// the length returned by Classify. Bytes that do not match a format of the revision
// are returned as unknown instruction.
func (r *Revision) Decode(offset int, window []byte) Instruction {
	ins := Instruction{
		Offset: offset,
		Bytes:  window,
	}
	if len(window) == 0 || len(window) > maxInstructionSize {
		return ins
	}

	format := r.format(OpcodeOf(window[0]), len(window))
	if format == nil {
		return ins
	}

	word := Word(window)
	if !format.Reserved.Matches(word) {
		return ins
	}

	ins.Format = format
	if !format.Variant.Matches(word) {
		ins.Invalid = true
		return ins
	}

	if len(format.Fields) > 0 {
		ins.Operands = make([]Operand, len(format.Fields))
		for j, field := range format.Fields {
			ins.Operands[j] = Operand{
				Name:  field.Name,
				Kind:  field.Kind,
				Value: field.Extract(word),
			}
		}
	}
	return ins
}

// Frame returns the window that starts at offset as instruction of the format matching its
// opcode and length, without validating reserved bits or extracting operands. The window
// has to be of the length returned by Classify, otherwise the instruction is unknown.
func (r *Revision) Frame(offset int, window []byte) Instruction {
	ins := Instruction{
		Offset: offset,
		Bytes:  window,
	}
	if len(window) > 0 {
		ins.Format = r.format(OpcodeOf(window[0]), len(window))
	}
	return ins
}
