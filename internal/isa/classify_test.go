package isa

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestClassifyFixedSizes(t *testing.T) {
	tests := []struct {
		revision string
		expected [OpcodeCount]int
	}{
		{V2, [OpcodeCount]int{4, 4, 0, 1, 2, 2, 4, 8, 1, 2, 2, 2, 2, 4, 2, 1}},
		{V1, [OpcodeCount]int{4, 4, 0, 1, 2, 2, 4, 8, 1, 2, 2, 2, 0, 4, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.revision, func(t *testing.T) {
			rev, err := ParseRevision(tt.revision)
			assert.NoError(t, err)

			for op := range OpcodeCount {
				// 8 bytes with non zero tail so that the move opcode classifies as immediate move
				buf := []byte{byte(op << 4), 0, 0, 0, 0, 0, 0, 1}
				assert.Equal(t, tt.expected[op], rev.Classify(buf, 0), "opcode %X", op)
			}
		})
	}
}

//nolint:funlen // test functions can be long
func TestClassifyMove(t *testing.T) {
	rev := Default()

	tests := []struct {
		name     string
		data     []byte
		expected int
	}{
		{
			name:     "register move with zero tail",
			data:     []byte{0x78, 0x80, 0, 0, 0, 0, 0, 0},
			expected: 2,
		},
		{
			name:     "register move at end of buffer",
			data:     []byte{0x78, 0x80, 0x30},
			expected: 2,
		},
		{
			name:     "register move exactly 2 bytes",
			data:     []byte{0x7D, 0x20},
			expected: 2,
		},
		{
			name:     "func bit clear is immediate move",
			data:     []byte{0x71, 0x80, 0x00, 0x1D, 0x4C, 0x00, 0x00, 0x00},
			expected: 8,
		},
		{
			name:     "func bit clear with zero tail is immediate move",
			data:     []byte{0x70, 0x08, 0, 0, 0, 0, 0, 0},
			expected: 8,
		},
		{
			name:     "func bit clear with payload in low bytes",
			data:     []byte{0x70, 0x00, 0x00, 0x00, 0x00, 0x3A, 0x98, 0x00},
			expected: 8,
		},
		{
			name:     "func bit set with non zero tail is immediate move",
			data:     []byte{0x79, 0x80, 0x00, 0x1D, 0x4C, 0x00, 0x00, 0x00},
			expected: 8,
		},
		{
			name:     "func bit clear truncated reports long form",
			data:     []byte{0x70, 0x00, 0x00},
			expected: 8,
		},
		{
			name:     "single byte is unrecognized",
			data:     []byte{0x78},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rev.Classify(tt.data, 0))
		})
	}
}

// An immediate move with the func bit set and a zero payload can not be told apart
// from a register move followed by zero bytes.
func TestClassifyMoveAmbiguity(t *testing.T) {
	data := []byte{0x78, 0x80, 0, 0, 0, 0, 0, 0}

	assert.Equal(t, 2, Default().Classify(data, 0))

	v1, err := ParseRevision(V1)
	assert.NoError(t, err)
	assert.Equal(t, 8, v1.Classify(data, 0))
}

func TestClassifyOutOfRange(t *testing.T) {
	rev := Default()
	buf := []byte{0x30}

	assert.Equal(t, 0, rev.Classify(buf, 1))
	assert.Equal(t, 0, rev.Classify(buf, -1))
	assert.Equal(t, 0, rev.Classify(nil, 0))
}

func TestClassifyDeterministic(t *testing.T) {
	tails := [][]byte{
		{0, 0, 0, 0, 0, 0, 0},
		{0x80, 0x12, 0, 0, 0, 0, 0x01},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	}

	for _, name := range RevisionNames() {
		rev, err := ParseRevision(name)
		assert.NoError(t, err)

		for first := range 256 {
			for _, tail := range tails {
				buf := append([]byte{0xAA, byte(first)}, tail...)
				length := rev.Classify(buf, 1)
				if length == 0 || 1+length > len(buf) {
					continue
				}

				window := buf[1 : 1+length]
				assert.Equal(t, length, rev.Classify(window, 0), "revision %s first byte %02x", name, first)
				assert.Equal(t, length, rev.Classify(buf[:1+length], 1), "revision %s first byte %02x", name, first)
			}
		}
	}
}
