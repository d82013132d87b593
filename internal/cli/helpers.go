package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/ostia/pkg/adapters/file"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/ports"
)

// ResolveTrainingSet loads source as a training set file when such a file
// exists, and by name from loader otherwise.
func ResolveTrainingSet(ctx context.Context, loader ports.TrainingLoader, source string) (*domain.TrainingSet, error) {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return file.LoadFile(source)
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTrainingSetNotFound, source)
	}
	return loader.Load(ctx, source)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isRich reports whether w is a terminal that can show rendered Markdown.
func isRich(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && IsTerminal(f)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// ExitCode maps command errors to process exit codes: 2 for bad input data,
// 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrInconsistentSample),
		errors.Is(err, domain.ErrAlphabetViolation),
		errors.Is(err, domain.ErrTrainingSetNotFound):
		return 2
	}
	return 1
}

// renderMarkdown renders md with render, falling back to the raw markdown
// when rendering fails.
func renderMarkdown(render func(string) (string, error), md string) string {
	out, err := render(md)
	if err != nil {
		return md
	}
	return out
}
