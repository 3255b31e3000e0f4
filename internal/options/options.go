// Package options contains the program options.
package options

import (
	"strings"

	"github.com/retroenv/tsldisasm/internal/disasm"
	"github.com/retroenv/tsldisasm/internal/isa"
)

// Commands of the program.
const (
	CommandDisassemble = "disassemble"
	CommandConvert     = "convert"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"binary file to process"`
	Output string `flag:"o" usage:"output file (default: stdout for listings)"`
	InfoDB string `flag:"infodb" usage:"directory containing display_info.db, exec_info.db and domain_info.db"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.bin)"`
}

// Flags contains behavior options.
type Flags struct {
	Command string `arg:"positional" usage:"disassemble or convert"`
	ISA     string `flag:"isa" usage:"instruction set revision: v1, v2" default:"v2"`
	Unknown string `flag:"unknown" usage:"unknown byte policy: emit, skip"`
	Verify  bool   `flag:"verify" usage:"verify the memory image by reading it back and comparing to the input"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexBytes bool `flag:"nohex" usage:"omit the instruction bytes column"`
	NoOffsets  bool `flag:"nooffsets" usage:"omit the offset column"`
	NoColor    bool `flag:"nocolor" usage:"disable colored output on terminals"`
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	Revision *isa.Revision
	Unknown  disasm.UnknownPolicy

	HexBytes bool
	Offsets  bool
	Color    bool
}

// DefaultUnknownPolicy returns the unknown byte policy of a command. Listings show
// every unknown byte, memory images only contain recognized instructions.
func DefaultUnknownPolicy(command string) disasm.UnknownPolicy {
	if strings.ToLower(command) == CommandConvert {
		return disasm.SkipUnknown
	}
	return disasm.EmitUnknown
}

// NewDisassembler returns a new options instance with default options for the command.
func NewDisassembler(command string) Disassembler {
	return Disassembler{
		Revision: isa.Default(),
		Unknown:  DefaultUnknownPolicy(command),

		HexBytes: true,
		Offsets:  true,
	}
}

// DisasmOptions returns the options of the core disassembler.
func (d Disassembler) DisasmOptions(annotator disasm.Annotator) disasm.Options {
	return disasm.Options{
		Revision:  d.Revision,
		Unknown:   d.Unknown,
		Annotator: annotator,
	}
}
