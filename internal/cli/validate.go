package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/validator"
	"github.com/aretw0/ostia/pkg/domain"
)

// RunValidate checks a training set: symbols must belong to the declared
// alphabets, no input may map to two outputs, and the learned transducer
// must reproduce every pair. Each problem is printed on its own line.
func RunValidate(ctx context.Context, l *ostia.Learner, source string, out io.Writer) error {
	set, err := ResolveTrainingSet(ctx, l.Loader(), source)
	if err != nil {
		return err
	}

	if err := validator.ValidateSample(*set); err != nil {
		for _, e := range domain.Errors(err) {
			fmt.Fprintf(out, "  - %v\n", e)
		}
		return fmt.Errorf("training set %q is invalid: %w", set.Name, err)
	}

	t, err := l.Learn(*set)
	if err != nil {
		for _, e := range domain.Errors(err) {
			fmt.Fprintf(out, "  - %v\n", e)
		}
		return fmt.Errorf("training set %q cannot be learned: %w", set.Name, err)
	}

	fmt.Fprintf(out, "Training set %q is valid! ✅ (%d pairs, %d input symbols, %d output symbols, %d states)\n",
		set.Name, len(set.Sample), len(t.InputAlphabet), len(t.OutputAlphabet), t.NumStates())
	return nil
}
