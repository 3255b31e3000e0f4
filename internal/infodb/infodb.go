// Package infodb loads the display, exec and domain information tables that map the
// immediate identifiers of instructions to readable descriptions.
//
// Every table is a line based text file. Display lines have the form
// {0xID,"FORMAT",CONTENT} and exec and domain lines the form {0xID,CONTENT}.
// Lines that do not start with '{' or can not be parsed are ignored.
package infodb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tsldisasm/internal/disasm"
	"github.com/retroenv/tsldisasm/internal/isa"
)

// File names of the tables inside an information database directory.
const (
	DisplayFile = "display_info.db"
	ExecFile    = "exec_info.db"
	DomainFile  = "domain_info.db"
)

var _ disasm.Annotator = (*DB)(nil)

type displayEntry struct {
	format  string
	content string
}

// DB contains the information tables.
type DB struct {
	display map[uint32]displayEntry
	exec    map[uint32]string
	domain  map[uint32]string
}

// New returns an empty information database.
func New() *DB {
	return &DB{
		display: map[uint32]displayEntry{},
		exec:    map[uint32]string{},
		domain:  map[uint32]string{},
	}
}

// Load reads all tables from the given directory. A missing table file is logged as
// warning and leaves the table empty.
func Load(logger *log.Logger, dir string) (*DB, error) {
	db := New()

	tables := []struct {
		name string
		read func(r io.Reader) error
	}{
		{DisplayFile, db.ReadDisplay},
		{ExecFile, db.ReadExec},
		{DomainFile, db.ReadDomain},
	}

	for _, table := range tables {
		path := filepath.Join(dir, table.name)
		if err := readFile(path, table.read); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Information table not found", log.String("file", path))
				continue
			}
			return nil, err
		}
	}

	logger.Debug("Loaded information database",
		log.String("directory", dir),
		log.Int("display", len(db.display)),
		log.Int("exec", len(db.exec)),
		log.Int("domain", len(db.domain)))
	return db, nil
}

func readFile(path string, read func(r io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening information table: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := read(file); err != nil {
		return fmt.Errorf("reading information table %s: %w", path, err)
	}
	return nil
}

// ReadDisplay adds all display entries of the reader.
func (db *DB) ReadDisplay(r io.Reader) error {
	return readEntries(r, func(id uint32, rest string) {
		format, content, ok := splitFormat(rest)
		if !ok {
			return
		}
		db.display[id] = displayEntry{
			format:  format,
			content: content,
		}
	})
}

// ReadExec adds all exec entries of the reader.
func (db *DB) ReadExec(r io.Reader) error {
	return readEntries(r, func(id uint32, content string) {
		db.exec[id] = content
	})
}

// ReadDomain adds all domain entries of the reader.
func (db *DB) ReadDomain(r io.Reader) error {
	return readEntries(r, func(id uint32, content string) {
		db.domain[id] = content
	})
}

// Annotate returns the description of the identifier that the instruction references,
// or an empty string if the instruction has none or it is not in the database.
// A display description is followed by its format string if the entry has one.
func (db *DB) Annotate(ins isa.Instruction) string {
	if ins.Format == nil || ins.Invalid || len(ins.Operands) == 0 {
		return ""
	}
	value := ins.Operands[0].Value
	if value < 0 {
		return ""
	}
	id := uint32(value)

	switch ins.Format.Opcode {
	case isa.OpDisplay:
		if entry, ok := db.display[id]; ok {
			return entry.String()
		}
	case isa.OpExec:
		return db.exec[id]
	case isa.OpDomainSet:
		return db.domain[id]
	}
	return ""
}

func (e displayEntry) String() string {
	if e.format == "" {
		return e.content
	}
	return fmt.Sprintf("%s, format %q", e.content, e.format)
}

// readEntries calls fn for every line with a parsable id, passing the trimmed text
// between the id and the closing brace.
func readEntries(r io.Reader, fn func(id uint32, rest string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		id, rest, ok := parseLine(scanner.Text())
		if ok {
			fn(id, rest)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning lines: %w", err)
	}
	return nil
}

func parseLine(line string) (uint32, string, bool) {
	if !strings.HasPrefix(line, "{0x") && !strings.HasPrefix(line, "{0X") {
		return 0, "", false
	}
	idText, rest, ok := strings.Cut(line[3:], ",")
	if !ok {
		return 0, "", false
	}
	end := strings.LastIndexByte(rest, '}')
	if end < 0 {
		return 0, "", false
	}

	id, err := strconv.ParseUint(strings.TrimSpace(idText), 16, 32)
	if err != nil {
		return 0, "", false
	}
	return uint32(id), strings.TrimSpace(rest[:end]), true
}

// splitFormat splits "FORMAT",CONTENT into its parts.
func splitFormat(s string) (string, string, bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", false
	}
	format, rest, ok := strings.Cut(s[1:], `"`)
	if !ok {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, ",")
	return format, strings.TrimSpace(rest), true
}
