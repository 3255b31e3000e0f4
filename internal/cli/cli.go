// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/tsldisasm/internal/disasm"
	"github.com/retroenv/tsldisasm/internal/isa"
	"github.com/retroenv/tsldisasm/internal/options"
)

// ErrUnknownCommand is returned for a command that is not supported.
var ErrUnknownCommand = errors.New("unknown command")

// ParseFlags parses the command and its flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	var opts options.Program
	if len(os.Args) < 2 {
		return opts, options.Disassembler{}, &UsageError{msg: "missing command"}
	}

	opts.Command = strings.ToLower(os.Args[1])
	flags := flag.NewFlagSet(os.Args[0]+" "+opts.Command, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	switch opts.Command {
	case options.CommandDisassemble:
		readOptionFlags(flags, &opts)
		readListingFlags(flags, &opts)
	case options.CommandConvert:
		readOptionFlags(flags, &opts)
		readConvertFlags(flags, &opts)
	default:
		err := fmt.Errorf("%w '%s'", ErrUnknownCommand, os.Args[1])
		return opts, options.Disassembler{}, &UsageError{msg: err.Error(), err: err}
	}

	if err := flags.Parse(os.Args[2:]); err != nil {
		return opts, options.Disassembler{}, &UsageError{flags: flags, msg: err.Error(), err: err}
	}
	args := flags.Args()

	if err := validateArgs(flags, args); err != nil {
		return opts, options.Disassembler{}, err
	}
	if err := assignArgs(flags, &opts, args); err != nil {
		return opts, options.Disassembler{}, err
	}
	if err := validateOptionCombinations(opts); err != nil {
		return opts, options.Disassembler{}, err
	}

	disasmOptions, err := createDisasmOptions(opts)
	if err != nil {
		return opts, options.Disassembler{}, err
	}
	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
	err   error
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: tsldisasm disassemble [options] <file to disassemble>\n")
	fmt.Printf("       tsldisasm convert [options] <file to convert> <memory image file>\n\n")
	if e.msg != "" {
		fmt.Printf("error: %s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
		fmt.Println()
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after input file, please pass all options before the file names", arg),
			}
		}
	}
	return nil
}

// assignArgs checks the number of positional arguments of the command and assigns them.
func assignArgs(flags *flag.FlagSet, opts *options.Program, args []string) error {
	expected := 1
	if opts.Command == options.CommandConvert {
		expected = 2
	}
	if opts.Batch != "" {
		expected = 0
	}

	if len(args) != expected {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("%s expects %d file arguments but got %d", opts.Command, expected, len(args)),
		}
	}

	if opts.Batch != "" {
		return nil
	}
	opts.Input = args[0]
	if opts.Command == options.CommandConvert {
		opts.Output = args[1]
	}
	return nil
}

// validateOptionCombinations checks for conflicting options.
func validateOptionCombinations(opts options.Program) error {
	if opts.Batch != "" && opts.Output != "" {
		return errors.New("output file can not be set in batch mode, output names are derived from the input names")
	}
	return nil
}

// createDisasmOptions creates disassembler options based on program options
func createDisasmOptions(opts options.Program) (options.Disassembler, error) {
	disasmOptions := options.NewDisassembler(opts.Command)

	rev, err := isa.ParseRevision(opts.ISA)
	if err != nil {
		return options.Disassembler{}, fmt.Errorf("parsing ISA revision: %w", err)
	}
	disasmOptions.Revision = rev

	if opts.Unknown != "" {
		policy, err := disasm.ParseUnknownPolicy(opts.Unknown)
		if err != nil {
			return options.Disassembler{}, fmt.Errorf("parsing unknown byte policy: %w", err)
		}
		disasmOptions.Unknown = policy
	}

	disasmOptions.HexBytes = !opts.NoHexBytes
	disasmOptions.Offsets = !opts.NoOffsets
	disasmOptions.Color = !opts.NoColor
	return disasmOptions, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.ISA, "isa", isa.DefaultRevision, "instruction set revision ("+strings.Join(isa.RevisionNames(), "/")+")")
	flags.StringVar(&opts.Unknown, "unknown", "", "output policy for unknown bytes (emit/skip), default: emit for listings, skip for memory images")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.bin")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readListingFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.StringVar(&opts.InfoDB, "infodb", "", "directory of the display, exec and domain information tables used to annotate the listing")
	flags.BoolVar(&opts.NoHexBytes, "nohex", false, "do not output the instruction bytes")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets")
	flags.BoolVar(&opts.NoColor, "nocolor", false, "do not color the console output")
}

func readConvertFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Verify, "verify", false, "verify the generated memory image by reading it back and comparing it to the input")
}
