// Package validator checks training sets before learning and learned
// transducers afterwards.
package validator

import (
	"fmt"

	"github.com/aretw0/ostia/pkg/domain"
)

// ValidateSample checks that every symbol of the sample belongs to the
// declared alphabets. All violations are reported together as a
// *domain.AggregateError of *domain.AlphabetViolationError.
func ValidateSample(set domain.TrainingSet) error {
	in := set.InputAlphabet.Set()
	out := set.OutputAlphabet.Set()

	var errs []error
	for i, p := range set.Sample {
		errs = appendViolations(errs, i, domain.SideInput, p.Input, in)
		errs = appendViolations(errs, i, domain.SideOutput, p.Output, out)
	}
	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

func appendViolations(errs []error, pair int, side domain.Side, w domain.Word, alphabet map[domain.Symbol]int) []error {
	reported := make(map[domain.Symbol]bool)
	for _, s := range w {
		if _, ok := alphabet[s]; ok || reported[s] {
			continue
		}
		reported[s] = true
		errs = append(errs, &domain.AlphabetViolationError{Pair: pair, Side: side, Symbol: s})
	}
	return errs
}

// ViolationKind classifies a structural problem found by VerifyTransducer.
type ViolationKind string

const (
	DanglingEdge    ViolationKind = "dangling_edge"
	ForeignSymbol   ViolationKind = "foreign_symbol"
	Unreachable     ViolationKind = "unreachable_state"
	OutputMismatch  ViolationKind = "output_mismatch"
	UnreadableInput ViolationKind = "unreadable_input"
)

// Violation is one problem found by VerifyTransducer.
type Violation struct {
	Kind   ViolationKind
	State  domain.StateID
	Detail string
}

func (v *Violation) Error() string {
	if v.State == domain.NoState {
		return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
	}
	return fmt.Sprintf("%s at state %d: %s", v.Kind, v.State, v.Detail)
}

// VerifyTransducer crawls the transducer from its initial state and checks
// that every edge reads an input-alphabet symbol and leads to a live state,
// that every live state is reachable, and that the transducer reproduces
// every pair of the sample exactly.
func VerifyTransducer(t *domain.Transducer, sample domain.Sample) error {
	if t == nil || !t.Has(t.Initial()) {
		return domain.ErrUnconstructedTransducer
	}

	var errs []error
	inAlphabet := t.InputAlphabet.Set()

	visited := map[domain.StateID]bool{t.Initial(): true}
	queue := []domain.StateID{t.Initial()}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		for _, sym := range t.Symbols(q) {
			e, _ := t.Edge(q, sym)
			if _, ok := inAlphabet[sym]; !ok {
				errs = append(errs, &Violation{Kind: ForeignSymbol, State: q, Detail: fmt.Sprintf("edge on %q", string(sym))})
			}
			if !t.Has(e.Target) {
				errs = append(errs, &Violation{Kind: DanglingEdge, State: q, Detail: fmt.Sprintf("edge on %q leads to missing state %d", string(sym), e.Target)})
				continue
			}
			if !visited[e.Target] {
				visited[e.Target] = true
				queue = append(queue, e.Target)
			}
		}
	}

	for _, q := range t.States() {
		if !visited[q] {
			errs = append(errs, &Violation{Kind: Unreachable, State: q, Detail: fmt.Sprintf("label %q", t.Label(q).String())})
		}
	}

	for _, p := range sample {
		got, err := t.Apply(p.Input)
		if err != nil {
			errs = append(errs, &Violation{Kind: UnreadableInput, State: domain.NoState, Detail: err.Error()})
			continue
		}
		if !got.Equal(p.Output) {
			errs = append(errs, &Violation{
				Kind:   OutputMismatch,
				State:  domain.NoState,
				Detail: fmt.Sprintf("input %q produced %q, want %q", p.Input.String(), got.String(), p.Output.String()),
			})
		}
	}

	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}
