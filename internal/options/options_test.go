package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/tsldisasm/internal/disasm"
	"github.com/retroenv/tsldisasm/internal/isa"
)

func TestNewDisassembler(t *testing.T) {
	opts := NewDisassembler(CommandDisassemble)
	assert.Equal(t, isa.DefaultRevision, opts.Revision.Name())
	assert.Equal(t, disasm.EmitUnknown, opts.Unknown)
	assert.True(t, opts.HexBytes)
	assert.True(t, opts.Offsets)
	assert.False(t, opts.Color)

	opts = NewDisassembler(CommandConvert)
	assert.Equal(t, disasm.SkipUnknown, opts.Unknown)
}

func TestDisasmOptions(t *testing.T) {
	opts := NewDisassembler(CommandConvert)
	disasmOpts := opts.DisasmOptions(nil)
	assert.Equal(t, opts.Revision, disasmOpts.Revision)
	assert.Equal(t, disasm.SkipUnknown, disasmOpts.Unknown)
	assert.Nil(t, disasmOpts.Annotator)
}
