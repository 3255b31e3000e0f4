package isa

import "fmt"

// Opcode is the high nibble of the first byte of an instruction.
type Opcode uint8

// Opcode values. 0x2 is reserved and has no instruction assigned.
const (
	OpJmpc       Opcode = 0x0
	OpArith      Opcode = 0x1
	OpTrigger    Opcode = 0x3
	OpTriggerPos Opcode = 0x4
	OpJmp        Opcode = 0x5
	OpBitSlice   Opcode = 0x6
	OpMov        Opcode = 0x7
	OpRet        Opcode = 0x8
	OpBl         Opcode = 0x9
	OpDomainSet  Opcode = 0xA
	OpDisplay    Opcode = 0xB
	OpExec       Opcode = 0xC
	OpLoad       Opcode = 0xD
	OpEdgeDetect Opcode = 0xE
	OpTimerSet   Opcode = 0xF
)

// OpcodeCount is the number of possible opcode values.
const OpcodeCount = 16

// OpcodeOf returns the opcode encoded in the first byte of an instruction.
func OpcodeOf(b byte) Opcode {
	return Opcode(b >> 4)
}

// String returns the opcode as hex nibble.
func (o Opcode) String() string {
	return fmt.Sprintf("0x%X", uint8(o))
}
