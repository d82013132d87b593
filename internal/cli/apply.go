package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/presentation/tui"
	"github.com/aretw0/ostia/pkg/domain"
)

// ApplyOptions configures RunApply.
type ApplyOptions struct {
	Source    string
	Separator string
	// Words are rewritten directly; when empty, words are read from In.
	Words       []string
	In          io.Reader
	Out         io.Writer
	Interactive bool
	KeepGoing   bool
}

// RunApply learns the training set and rewrites words with it.
func RunApply(ctx context.Context, l *ostia.Learner, opts ApplyOptions) error {
	set, err := ResolveTrainingSet(ctx, l.Loader(), opts.Source)
	if err != nil {
		return err
	}
	t, err := l.Learn(*set)
	if err != nil {
		return err
	}

	if len(opts.Words) > 0 {
		return applyWords(t, opts)
	}

	r := ostia.NewRunner(opts.In, opts.Out)
	r.Separator = opts.Separator
	r.Interactive = opts.Interactive
	r.KeepGoing = opts.KeepGoing
	if r.Interactive {
		tui.PrintBanner(opts.Out)
		printSystemMessage(opts.Out, "Learned %q (%d states). Type a word, or 'exit' to quit.", set.Name, t.NumStates())
	}
	return r.Run(t)
}

func applyWords(t *domain.Transducer, opts ApplyOptions) error {
	results := make([]tui.ApplyResult, len(opts.Words))
	var firstErr error
	for i, w := range opts.Words {
		in := domain.SplitWord(w, opts.Separator)
		out, err := t.Apply(in)
		results[i] = tui.ApplyResult{Input: in, Output: out, Err: err}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if isRich(opts.Out) {
		fmt.Fprint(opts.Out, renderMarkdown(tui.NewRenderer(), tui.ApplyMarkdown(results)))
	} else {
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(opts.Out, "%s\terror: %v\n", r.Input.Join(opts.Separator), r.Err)
				continue
			}
			fmt.Fprintf(opts.Out, "%s\t%s\n", r.Input.Join(opts.Separator), r.Output.Join(opts.Separator))
		}
	}

	if opts.KeepGoing {
		return nil
	}
	return firstErr
}
