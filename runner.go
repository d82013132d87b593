package ostia

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/ostia/pkg/domain"
)

// Runner rewrites words read line by line from Input with a learned
// transducer, writing one result per line to Output.
// This allows for easy testing and integration with different frontends (CLI, pipes).
type Runner struct {
	Input  io.Reader
	Output io.Writer

	// Separator splits each line into symbols and joins output symbols.
	// The empty separator reads one symbol per character.
	Separator string

	// Interactive prints a prompt before each line and accepts "exit"/"quit".
	Interactive bool

	// KeepGoing reports unrecognized words inline instead of stopping.
	KeepGoing bool
}

// NewRunner creates a new Runner over the given IO.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

// Run executes the rewrite loop until the input is exhausted.
func (r *Runner) Run(t *domain.Transducer) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	lineReader := bufio.NewReader(r.Input)
	for {
		if r.Interactive {
			fmt.Fprint(r.Output, "> ")
		}

		text, err := lineReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		eof := errors.Is(err, io.EOF)
		line := strings.TrimRight(text, "\r\n")

		if eof && line == "" {
			return nil
		}
		if r.Interactive && (line == "exit" || line == "quit") {
			fmt.Fprintln(r.Output, "Bye!")
			return nil
		}

		out, applyErr := t.Apply(domain.SplitWord(line, r.Separator))
		switch {
		case applyErr == nil:
			fmt.Fprintln(r.Output, out.Join(r.Separator))
		case r.KeepGoing || r.Interactive:
			fmt.Fprintf(r.Output, "error: %v\n", applyErr)
		default:
			return fmt.Errorf("line %q: %w", line, applyErr)
		}

		if eof {
			return nil
		}
	}
}
