package disasm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/tsldisasm/internal/isa"
)

type scanResult struct {
	offset   int
	length   int
	mnemonic string
}

func scanAll(buf []byte, rev *isa.Revision) []scanResult {
	var results []scanResult
	scanner := NewScanner(buf, rev)
	for scanner.Next() {
		ins := scanner.Instruction()
		results = append(results, scanResult{
			offset:   ins.Offset,
			length:   len(ins.Bytes),
			mnemonic: ins.Mnemonic(),
		})
	}
	return results
}

//nolint:funlen // test functions can be long
func TestScanner(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		expected []scanResult
	}{
		{
			name: "empty buffer",
		},
		{
			name: "stray byte at end",
			buf:  []byte{0x30, 0x2F},
			expected: []scanResult{
				{0, 1, "trigger"},
				{1, 1, isa.Unknown},
			},
		},
		{
			name: "register move followed by zero bytes",
			buf:  []byte{0x78, 0x80, 0, 0, 0, 0, 0, 0},
			expected: []scanResult{
				{0, 2, "mov r1, r0"},
				{2, 4, "jmpc 0, r0, r0, 0"},
				{6, 1, isa.Unknown},
				{7, 1, isa.Unknown},
			},
		},
		{
			name: "immediate move",
			buf:  []byte{0x71, 0x80, 0x00, 0x1D, 0x4C, 0x00, 0x00, 0x00, 0x80},
			expected: []scanResult{
				{0, 8, "mov r3, 15000"},
				{8, 1, "ret"},
			},
		},
		{
			name: "invalid immediate move keeps its length",
			buf:  []byte{0x79, 0x80, 0x00, 0x1D, 0x4C, 0x00, 0x00, 0x00},
			expected: []scanResult{
				{0, 8, "INVALID_MOVI"},
			},
		},
		{
			name: "truncated load",
			buf:  []byte{0x30, 0xD7, 0x12, 0x34},
			expected: []scanResult{
				{0, 1, "trigger"},
				{1, 1, isa.Unknown},
				{2, 1, isa.Unknown},
				{3, 1, isa.Unknown},
			},
		},
		{
			name: "reserved bits resynchronize by one byte",
			buf:  []byte{0x57, 0xF8, 0x80},
			expected: []scanResult{
				{0, 1, isa.Unknown},
				{1, 1, "timer_set 1, 0"},
				{2, 1, "ret"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := scanAll(tt.buf, isa.Default())
			assert.Equal(t, len(tt.expected), len(results))
			for i := range min(len(tt.expected), len(results)) {
				assert.Equal(t, tt.expected[i].offset, results[i].offset)
				assert.Equal(t, tt.expected[i].length, results[i].length)
				assert.Equal(t, tt.expected[i].mnemonic, results[i].mnemonic)
			}
		})
	}
}

func TestFrameScanner(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		expected [][2]int // offset and length
	}{
		{
			name:     "reserved bits keep the window",
			buf:      []byte{0x57, 0xF8, 0x80},
			expected: [][2]int{{0, 2}, {2, 1}},
		},
		{
			name:     "low bits of single byte instruction",
			buf:      []byte{0x31, 0x4C, 0x81},
			expected: [][2]int{{0, 1}, {1, 2}},
		},
		{
			name:     "invalid immediate move keeps its length",
			buf:      []byte{0x79, 0x80, 0x00, 0x1D, 0x4C, 0x00, 0x00, 0x00},
			expected: [][2]int{{0, 8}},
		},
		{
			name:     "truncated load",
			buf:      []byte{0x30, 0xD7, 0x12},
			expected: [][2]int{{0, 1}, {1, 1}, {2, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results [][2]int
			scanner := NewFrameScanner(tt.buf, isa.Default())
			for scanner.Next() {
				ins := scanner.Instruction()
				results = append(results, [2]int{ins.Offset, len(ins.Bytes)})
			}
			assert.Equal(t, len(tt.expected), len(results))
			for i := range min(len(tt.expected), len(results)) {
				assert.Equal(t, tt.expected[i], results[i])
			}
		})
	}
}

// The consumed lengths always add up to the buffer length and the cursor always advances.
func TestScannerConsumesBuffer(t *testing.T) {
	buffers := [][]byte{
		{0x2F, 0x2F, 0x2F},
		{0x78, 0x80, 0x00},
		{0x71, 0x80, 0x00, 0x1D},
		{0xD7, 0x12, 0x34, 0x56, 0x57, 0xF0, 0xFC, 0xE3},
	}
	for b := range 256 {
		buffers = append(buffers, []byte{byte(b), byte(b), 0x00, byte(b), 0xFF})
	}

	for _, name := range isa.RevisionNames() {
		rev, err := isa.ParseRevision(name)
		assert.NoError(t, err)

		for _, buf := range buffers {
			scanner := NewScanner(buf, rev)
			consumed := 0
			for scanner.Next() {
				ins := scanner.Instruction()
				assert.Equal(t, consumed, ins.Offset)
				assert.True(t, len(ins.Bytes) >= 1)
				if ins.IsUnknown() {
					assert.Equal(t, 1, len(ins.Bytes))
				}
				consumed += len(ins.Bytes)
				assert.Equal(t, consumed, scanner.Offset())
			}
			assert.Equal(t, len(buf), consumed)
		}
	}
}

func TestParseUnknownPolicy(t *testing.T) {
	policy, err := ParseUnknownPolicy("Skip")
	assert.NoError(t, err)
	assert.Equal(t, SkipUnknown, policy)
	assert.Equal(t, PolicySkip, policy.String())

	policy, err = ParseUnknownPolicy(PolicyEmit)
	assert.NoError(t, err)
	assert.Equal(t, EmitUnknown, policy)
	assert.Equal(t, PolicyEmit, policy.String())

	_, err = ParseUnknownPolicy("drop")
	assert.ErrorContains(t, err, "unsupported unknown byte policy")
}
