// Package isa decodes the TSL instruction encoding.
//
// # Encoding Overview
//
// TSL programs are a flat sequence of big-endian packed instructions without any header.
// Every instruction starts with a 4 bit opcode in the high nibble of its first byte.
// Instructions are 1, 2, 4 or 8 bytes long:
//   - 1 byte: trigger, ret, timer_set
//   - 2 bytes: trigger_pos, jmp, bl, domain_set, display, exec, edge_detect
//   - 4 bytes: jmpc, arith_op, bit_slice, load
//   - 2 or 8 bytes: mov (register form) or mov (immediate form)
//
// Instruction boundaries can only be found by classifying sequentially from offset 0.
//
// # Register Move Disambiguation
//
// Opcode 0x7 covers both the 2 byte register move and the 8 byte immediate move. Bit 11
// of the first two bytes selects the register form, but a register move is only assumed
// when the 6 bytes following it are zero or the buffer ends before 8 bytes. An immediate
// move with its func bit set and a zero payload is therefore indistinguishable from a
// register move followed by zero bytes. This is a property of the encoding.
//
// # Revisions
//
// The field layout drifted between toolchain releases. Each release is a separate
// Revision with its own format table:
//   - v1: legacy layout with bit_op, signed display ids and no exec or register move
//   - v2: current layout with arith_op, exec and the register move form
//
// # Decoding
//
// A Format describes one instruction layout: its size, a reserved bit pattern that has to
// match for the bytes to be recognized, an optional variant pattern whose mismatch is
// reported as an invalid encoding, and the operand fields in output order. A single
// generic routine validates the patterns and extracts all fields.
package isa
