package isa

const (
	moveShortSize = 2
	moveLongSize  = 8
	moveFuncBit   = 11
)

// Classify returns the length in bytes of the instruction starting at offset.
// It returns 0 if the bytes do not start a known instruction. The returned length can
// exceed the remaining bytes of the buffer, checking for a truncated instruction is up
// to the caller.
func (r *Revision) Classify(buf []byte, offset int) int {
	if offset < 0 || offset >= len(buf) {
		return 0
	}

	op := OpcodeOf(buf[offset])
	if op == OpMov && r.variableMove {
		return classifyMove(buf[offset:])
	}
	return r.sizes[op]
}

// classifyMove distinguishes the register move from the immediate move.
// The register form is assumed only if the func bit is set and the 6 bytes following
// the first 2 are zero, or if the buffer ends before a full immediate move.
func classifyMove(data []byte) int {
	if len(data) < moveShortSize {
		return 0
	}

	w := uint64(data[0])<<8 | uint64(data[1])
	if Extract(w, moveFuncBit, 1, false) != 1 {
		return moveLongSize
	}
	if len(data) < moveLongSize || isZero(data[moveShortSize:moveLongSize]) {
		return moveShortSize
	}
	return moveLongSize
}

func isZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
