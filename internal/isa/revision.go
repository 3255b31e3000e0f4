package isa

import (
	"fmt"
	"slices"
	"strings"
)

// Revision names.
const (
	V1 = "v1"
	V2 = "v2"
)

// DefaultRevision is the revision used when none is selected.
const DefaultRevision = V2

// Revision is one version of the instruction encoding.
type Revision struct {
	name string

	// variableMove enables the 2 or 8 byte classification of the move opcode.
	variableMove bool
	sizes        [OpcodeCount]int
	formats      [OpcodeCount][]*Format
}

var revisions = map[string]*Revision{
	V1: newRevision(V1, false, v1Formats()),
	V2: newRevision(V2, true, v2Formats()),
}

// ParseRevision returns the revision with the given name.
func ParseRevision(name string) (*Revision, error) {
	rev, ok := revisions[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported ISA revision '%s', valid options: %s",
			name, strings.Join(RevisionNames(), ", "))
	}
	return rev, nil
}

// RevisionNames returns the sorted names of all revisions.
func RevisionNames() []string {
	names := make([]string, 0, len(revisions))
	for name := range revisions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Default returns the default revision.
func Default() *Revision {
	return revisions[DefaultRevision]
}

func newRevision(name string, variableMove bool, formats []*Format) *Revision {
	rev := &Revision{
		name:         name,
		variableMove: variableMove,
	}

	for _, format := range formats {
		op := format.Opcode
		rev.formats[op] = append(rev.formats[op], format)

		size := rev.sizes[op]
		switch {
		case size == 0:
			rev.sizes[op] = format.Size
		case size != format.Size && !(variableMove && op == OpMov):
			panic(fmt.Sprintf("revision %s: opcode %s has formats with different sizes", name, op))
		}
	}
	return rev
}

// Name returns the revision name.
func (r *Revision) Name() string {
	return r.name
}

// Formats returns all formats of the given opcode.
func (r *Revision) Formats(op Opcode) []*Format {
	return r.formats[op&0xF]
}

// format returns the format of the opcode with the given size.
func (r *Revision) format(op Opcode, size int) *Format {
	for _, format := range r.formats[op&0xF] {
		if format.Size == size {
			return format
		}
	}
	return nil
}

func v2Formats() []*Format {
	return []*Format{
		{Name: "jmpc", Opcode: OpJmpc, Size: 4,
			Fields: []Field{imm("func", 24, 4), reg("src1", 20), reg("src2", 16), simm("addr", 8, 8)}},
		{Name: "arith_op", Opcode: OpArith, Size: 4,
			Fields: []Field{reg("dst", 20), reg("src1", 16), reg("src2", 12), imm("func", 24, 4)}},
		{Name: "trigger", Opcode: OpTrigger, Size: 1, Reserved: mustBeZero(0xF)},
		{Name: "trigger_pos", Opcode: OpTriggerPos, Size: 2, Reserved: mustBeZero(0x1F),
			Fields: []Field{imm("imm", 5, 7)}},
		{Name: "jmp", Opcode: OpJmp, Size: 2, Reserved: mustBeZero(0xF),
			Fields: []Field{simm("offset", 4, 8)}},
		{Name: "bit_slice", Opcode: OpBitSlice, Size: 4,
			Fields: []Field{reg("dst", 24), reg("src", 20), imm("end", 10, 5), imm("start", 15, 5)}},
		{Name: "mov", Opcode: OpMov, Size: 2, Reserved: mustBeSet(1 << 11),
			Fields: []Field{reg("dst", 7), reg("src", 3)}},
		{Name: "mov", Opcode: OpMov, Size: 8, Variant: mustBeZero(1 << 59), InvalidMnemonic: "INVALID_MOVI",
			Fields: []Field{reg("dst", 55), imm("imm", 23, 32)}},
		{Name: "ret", Opcode: OpRet, Size: 1, Reserved: mustBeZero(0xF)},
		{Name: "bl", Opcode: OpBl, Size: 2, Reserved: mustBeZero(0x3),
			Fields: []Field{simm("offset", 2, 10)}},
		{Name: "domain_set", Opcode: OpDomainSet, Size: 2, Reserved: mustBeZero(0x1),
			Fields: []Field{imm("offset", 4, 8)}},
		{Name: "display", Opcode: OpDisplay, Size: 2, Reserved: mustBeZero(0x3),
			Fields: []Field{imm("id", 2, 10)}},
		{Name: "exec", Opcode: OpExec, Size: 2, Reserved: mustBeZero(0x3),
			Fields: []Field{imm("id", 2, 10)}},
		{Name: "load", Opcode: OpLoad, Size: 4,
			Fields: []Field{reg("dst", 24), imm("addr", 0, 24)}},
		{Name: "edge_detect", Opcode: OpEdgeDetect, Size: 2,
			Fields: []Field{reg("dst", 8), reg("src", 4), imm("func", 1, 3)}},
		{Name: "timer_set", Opcode: OpTimerSet, Size: 1, Reserved: mustBeZero(0x1),
			Fields: []Field{imm("id", 3, 1), imm("func", 1, 2)}},
	}
}

// v1Formats returns the legacy layout. It has no exec instruction and only the 8 byte
// immediate move.
func v1Formats() []*Format {
	return []*Format{
		{Name: "jmpc", Opcode: OpJmpc, Size: 4,
			Fields: []Field{imm("func", 24, 4), reg("src1", 20), reg("src2", 16), imm("addr", 8, 8)}},
		{Name: "bit_op", Opcode: OpArith, Size: 4,
			Fields: []Field{reg("dst", 22), reg("src1", 18), reg("src2", 14), imm("func", 26, 2)}},
		{Name: "trigger", Opcode: OpTrigger, Size: 1, Reserved: mustBeZero(0xF)},
		{Name: "trigger_pos", Opcode: OpTriggerPos, Size: 2, Reserved: mustBeZero(0x1F),
			Fields: []Field{imm("imm", 5, 7)}},
		{Name: "jmp", Opcode: OpJmp, Size: 2, Reserved: mustBeZero(0xF),
			Fields: []Field{simm("offset", 4, 8)}},
		{Name: "bit_slice", Opcode: OpBitSlice, Size: 4,
			Fields: []Field{reg("dst", 24), reg("src", 20), imm("end", 10, 5), imm("start", 15, 5)}},
		{Name: "mov", Opcode: OpMov, Size: 8, Variant: mustBeZero(1 << 59), InvalidMnemonic: "INVALID_MOVI",
			Fields: []Field{reg("dst", 55), imm("imm", 23, 32)}},
		{Name: "ret", Opcode: OpRet, Size: 1, Reserved: mustBeZero(0xF)},
		{Name: "bl", Opcode: OpBl, Size: 2, Reserved: mustBeZero(0x3),
			Fields: []Field{simm("offset", 2, 10)}},
		{Name: "domain_set", Opcode: OpDomainSet, Size: 2, Reserved: mustBeZero(0x1),
			Fields: []Field{imm("offset", 4, 8)}},
		{Name: "display", Opcode: OpDisplay, Size: 2, Reserved: mustBeZero(0x3),
			Fields: []Field{simm("id", 2, 10)}},
		{Name: "load", Opcode: OpLoad, Size: 4,
			Fields: []Field{reg("dst", 24), imm("addr", 0, 24)}},
		{Name: "edge_detect", Opcode: OpEdgeDetect, Size: 2,
			Fields: []Field{reg("dst", 8), reg("src", 4), imm("func", 1, 2)}},
		{Name: "timer_set", Opcode: OpTimerSet, Size: 1, Reserved: mustBeZero(0x1),
			Fields: []Field{imm("id", 1, 1), imm("func", 2, 2)}},
	}
}
