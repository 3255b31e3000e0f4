package isa

// Pattern is a bit predicate on an instruction word.
// The zero value matches every word.
type Pattern struct {
	Mask  uint64
	Value uint64
}

// Matches returns whether the masked word equals the pattern value.
func (p Pattern) Matches(word uint64) bool {
	return word&p.Mask == p.Value
}

// mustBeZero returns a pattern that requires all bits of mask to be cleared.
func mustBeZero(mask uint64) Pattern {
	return Pattern{Mask: mask}
}

// mustBeSet returns a pattern that requires all bits of mask to be set.
func mustBeSet(mask uint64) Pattern {
	return Pattern{Mask: mask, Value: mask}
}

// Format describes the layout of one instruction.
type Format struct {
	Name   string // mnemonic name
	Opcode Opcode
	Size   int // in bytes

	// Reserved has to match for the bytes to be recognized as this format.
	Reserved Pattern
	// Variant has to match for the encoding to be valid. A mismatch still identifies
	// the format but is reported using InvalidMnemonic.
	Variant         Pattern
	InvalidMnemonic string

	Fields []Field // operands in output order
}
