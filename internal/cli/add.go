package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/session"
)

// RunAdd appends input/output pairs, given as alternating arguments, to the
// named training set, creating it when missing.
func RunAdd(ctx context.Context, sessions *session.Manager, name, separator string, args []string, out io.Writer) error {
	if len(args) == 0 || len(args)%2 != 0 {
		return fmt.Errorf("expected pairs of <input> <output>, got %d arguments", len(args))
	}

	pairs := make([]domain.Pair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, domain.Pair{
			Input:  domain.SplitWord(args[i], separator),
			Output: domain.SplitWord(args[i+1], separator),
		})
	}

	set, err := sessions.Append(ctx, name, pairs...)
	if err != nil {
		return err
	}
	printSystemMessage(out, "Training set '%s' now has %d pairs.", name, len(set.Sample))
	return nil
}
