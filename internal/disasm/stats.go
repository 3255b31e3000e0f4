package disasm

import (
	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/tsldisasm/internal/isa"
)

// Stats summarizes a scan.
type Stats struct {
	Bytes        int // bytes advanced over
	Lines        int // lines passed to the sink
	Instructions int // recognized instructions including invalid encodings, or classified windows
	Invalid      int // decoded instructions with an invalid encoding
	Unknown      int // bytes that did not start a recognized instruction

	unknownOpcodes set.Set[isa.Opcode]
}

func newStats() Stats {
	return Stats{
		unknownOpcodes: set.New[isa.Opcode](),
	}
}

// UnknownOpcodes returns the sorted opcodes of all unknown bytes.
func (s Stats) UnknownOpcodes() []isa.Opcode {
	var opcodes []isa.Opcode
	for op := range isa.Opcode(isa.OpcodeCount) {
		if s.unknownOpcodes.Contains(op) {
			opcodes = append(opcodes, op)
		}
	}
	return opcodes
}

func (s *Stats) addUnknown(b byte) {
	s.Unknown++
	s.unknownOpcodes.Add(isa.OpcodeOf(b))
}
