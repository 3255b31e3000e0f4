// Package loader handles input file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"
)

// Loader handles loading binary files from disk.
type Loader struct{}

// New creates a new binary file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the whole file into memory. The returned buffer is not modified by any
// later processing step.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return data, nil
}

// LoadReader reads all data of the reader into memory.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	return data, nil
}
