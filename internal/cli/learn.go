package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/presentation/graph"
	"github.com/aretw0/ostia/internal/presentation/tui"
	"github.com/aretw0/ostia/pkg/domain"
)

// Output formats of the learn and graph commands.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// LearnOptions configures RunLearn.
type LearnOptions struct {
	Source string
	Format string
	Out    io.Writer
}

// RunLearn learns the training set named by opts.Source and prints the
// transducer.
func RunLearn(ctx context.Context, l *ostia.Learner, opts LearnOptions) (*domain.Transducer, error) {
	set, err := ResolveTrainingSet(ctx, l.Loader(), opts.Source)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	t, err := l.Learn(*set)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case "", FormatText:
		fmt.Fprint(opts.Out, t.String())
	case FormatMarkdown:
		md := tui.TransducerMarkdown(set.Name, t)
		if isRich(opts.Out) {
			md = renderMarkdown(tui.NewRenderer(), md)
		}
		fmt.Fprint(opts.Out, md)
	case FormatMermaid:
		fmt.Fprint(opts.Out, graph.GenerateMermaid(t, nil))
	default:
		return nil, fmt.Errorf("unknown format %q (supported: %s)", opts.Format, strings.Join([]string{FormatText, FormatMarkdown, FormatMermaid}, ", "))
	}

	if opts.Format == FormatMarkdown {
		printSystemMessage(opts.Out, "Learned %d states from %d pairs in %s.", t.NumStates(), len(set.Sample), time.Since(start).Round(time.Microsecond))
	}
	return t, nil
}

// GraphOptions configures RunGraph.
type GraphOptions struct {
	Source string
	// Trace highlights the states visited while reading this word.
	Trace     string
	Separator string
	Out       io.Writer
}

// RunGraph learns the training set and prints a Mermaid diagram of the result.
func RunGraph(ctx context.Context, l *ostia.Learner, opts GraphOptions) error {
	set, err := ResolveTrainingSet(ctx, l.Loader(), opts.Source)
	if err != nil {
		return err
	}
	t, err := l.Learn(*set)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Trace != "" {
		path, err := t.Trace(domain.SplitWord(opts.Trace, opts.Separator))
		if err != nil && path == nil {
			return err
		}
		overlay = &graph.GraphOverlay{Path: path}
	}
	fmt.Fprint(opts.Out, graph.GenerateMermaid(t, overlay))
	return nil
}
