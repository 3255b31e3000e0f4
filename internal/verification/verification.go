// Package verification verifies that the generated memory image recreates the input.
package verification

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tsldisasm/internal/disasm"
	"github.com/retroenv/tsldisasm/internal/options"
)

const maxLoggedMismatches = 10

// ErrMismatch is returned when the memory image does not match the input.
var ErrMismatch = errors.New("memory image mismatch")

// VerifyOutput verifies that the written output file recreates the instructions of the input.
func VerifyOutput(logger *log.Logger, options options.Program, input []byte, disasmOpts disasm.Options) error {
	if options.Output == "" {
		return errors.New("can not verify console output")
	}

	file, err := os.Open(options.Output)
	if err != nil {
		return fmt.Errorf("opening output file for comparison: %w", err)
	}
	defer func() { _ = file.Close() }()

	return VerifyImage(logger, input, file, disasmOpts)
}

// VerifyImage reads the memory image lines and compares them to the instruction windows
// that the scanner produces for the input using the same options.
func VerifyImage(logger *log.Logger, input []byte, image io.Reader, disasmOpts disasm.Options) error {
	expected, err := expectedWords(logger, input, disasmOpts)
	if err != nil {
		return err
	}

	actual, err := readImage(image)
	if err != nil {
		return err
	}

	if len(expected) != len(actual) {
		logger.Error("Line count mismatch",
			log.Int("expected", len(expected)),
			log.Int("got", len(actual)))
		return fmt.Errorf("%w: mismatched line count, %d != %d", ErrMismatch, len(expected), len(actual))
	}

	for i := range expected {
		if len(expected[i]) != len(actual[i]) {
			logger.Error("Line length mismatch",
				log.Int("line", i+1),
				log.Int("expected", len(expected[i])),
				log.Int("got", len(actual[i])))
			return fmt.Errorf("%w: mismatched length of line %d", ErrMismatch, i+1)
		}
	}

	return checkBufferEqual(logger, flatten(expected), flatten(actual))
}

func expectedWords(logger *log.Logger, input []byte, disasmOpts disasm.Options) ([][]byte, error) {
	dis, err := disasm.New(logger, disasmOpts)
	if err != nil {
		return nil, fmt.Errorf("creating disassembler: %w", err)
	}

	var words [][]byte
	_, err = dis.Convert(input, func(data []byte) error {
		words = append(words, data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("converting input: %w", err)
	}
	return words, nil
}

func readImage(reader io.Reader) ([][]byte, error) {
	var words [][]byte
	scanner := bufio.NewScanner(reader)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		data, err := hex.DecodeString(text)
		if err != nil || len(data) == 0 {
			return nil, fmt.Errorf("%w: line %d is not a valid hex string '%s'", ErrMismatch, line, text)
		}
		words = append(words, data)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading memory image: %w", err)
	}
	return words, nil
}

func flatten(words [][]byte) []byte {
	var buf []byte
	for _, word := range words {
		buf = append(buf, word...)
	}
	return buf
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("%w: mismatched lengths, %d != %d", ErrMismatch, len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d offset mismatches", ErrMismatch, diffs)
}
