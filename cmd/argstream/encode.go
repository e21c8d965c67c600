package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/epithet-ssh/argstream/pkg/argv"
)

// EncodeCLI turns text command lines into a command stream.
type EncodeCLI struct {
	Input      string          `arg:"" help:"Text file with one command line per line, '-' for stdin"`
	Output     string          `help:"Where to write the command stream" short:"o" required:"" type:"path"`
	Endianness argv.Endianness `help:"Byte order of number tokens (big, little)" default:"big"`
}

func (e *EncodeCLI) Run(logger *slog.Logger) error {
	var in io.Reader = os.Stdin
	if e.Input != "-" {
		f, err := os.Open(e.Input)
		if err != nil {
			return fmt.Errorf("unable to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	prog, err := readTextProgram(in)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := argv.NewEncoder(&buf, argv.WithByteOrder(e.Endianness)).EncodeProgram(prog); err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}
	if err := os.WriteFile(e.Output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write command stream: %w", err)
	}

	logger.Info("encoded command stream", "lines", len(prog), "bytes", buf.Len(), "path", e.Output)
	return nil
}

// readTextProgram reads one command line per text line. Tokens are separated
// by whitespace.
//
// Lines starting with # are comments
// Empty lines are ignored
func readTextProgram(r io.Reader) (argv.Program, error) {
	prog := argv.Program{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prog = append(prog, argv.Vector(strings.Fields(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return prog, nil
}
