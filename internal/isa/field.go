package isa

import (
	"fmt"
	"strconv"
)

// OperandKind defines how an operand value is rendered.
type OperandKind uint8

// Operand kinds.
const (
	Immediate OperandKind = iota
	Register
)

// Field describes the location of an operand inside an instruction word.
type Field struct {
	Name   string
	Kind   OperandKind
	Offset uint // bit offset from the least significant bit of the word
	Width  uint
	Signed bool
}

// Extract returns the width bits of the field from the word.
func (f Field) Extract(word uint64) int64 {
	return Extract(word, f.Offset, f.Width, f.Signed)
}

// Extract returns width bits starting at bit offset of word. If signed is set the bits
// are interpreted as a two's complement value. The offset and width have to fit within
// 64 bits.
func Extract(word uint64, offset, width uint, signed bool) int64 {
	value := (word >> offset) & (uint64(1)<<width - 1)
	if signed && width > 0 && value&(uint64(1)<<(width-1)) != 0 {
		return int64(value) - int64(uint64(1)<<width)
	}
	return int64(value)
}

// Operand is a decoded instruction operand.
type Operand struct {
	Name  string
	Kind  OperandKind
	Value int64
}

// String returns the operand formatted for a listing.
func (o Operand) String() string {
	if o.Kind == Register {
		return fmt.Sprintf("r%d", o.Value)
	}
	return strconv.FormatInt(o.Value, 10)
}

func reg(name string, offset uint) Field {
	return Field{Name: name, Kind: Register, Offset: offset, Width: 4}
}

func imm(name string, offset, width uint) Field {
	return Field{Name: name, Kind: Immediate, Offset: offset, Width: width}
}

func simm(name string, offset, width uint) Field {
	return Field{Name: name, Kind: Immediate, Offset: offset, Width: width, Signed: true}
}
