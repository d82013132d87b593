package learner

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/words"
)

type incoming struct {
	from   domain.StateID
	symbol domain.Symbol
}

// Onward normalises a prefix-tree transducer in place so that every output
// is emitted as early as possible: after it returns, no state has a non-empty
// prefix common to its final output and all of its outgoing edge outputs.
//
// The tree must be acyclic with every non-initial state having exactly one
// incoming edge, as produced by BuildTree. States are visited in descending
// id order, which is a post-order because children always have larger ids
// than their parent. The common prefix of the initial state moves to
// InitialOutput.
func Onward(t *domain.Transducer) error {
	parents := make(map[domain.StateID]incoming)
	for _, tr := range t.Transitions() {
		if _, dup := parents[tr.To]; dup || tr.To <= tr.From {
			return fmt.Errorf("onward: state %d is not a tree node", tr.To)
		}
		parents[tr.To] = incoming{from: tr.From, symbol: tr.Symbol}
	}

	ids := t.States()
	slices.Reverse(ids)
	for _, q := range ids {
		u, err := commonOutput(t, q)
		if errors.Is(err, words.ErrEmptyArgument) {
			continue
		}
		if err != nil {
			return err
		}
		if len(u) == 0 {
			continue
		}
		if err := stripOutputs(t, q, u); err != nil {
			return err
		}

		if q == t.Initial() {
			t.InitialOutput = t.InitialOutput.Concat(u)
			continue
		}
		in := parents[q]
		e, _ := t.Edge(in.from, in.symbol)
		t.SetEdge(in.from, in.symbol, e.Output.Concat(u), q)
	}
	return nil
}

// commonOutput returns the longest common prefix of everything a state can
// emit one step ahead: its final output and the output of each outgoing edge.
func commonOutput(t *domain.Transducer, q domain.StateID) (domain.Word, error) {
	outs := []domain.Output{t.Final(q)}
	for _, sym := range t.Symbols(q) {
		e, _ := t.Edge(q, sym)
		outs = append(outs, domain.Defined(e.Output))
	}
	return words.LongestCommonPrefix(outs...)
}

// stripOutputs removes u from the front of the final output and of every
// outgoing edge output of q.
func stripOutputs(t *domain.Transducer, q domain.StateID, u domain.Word) error {
	final, err := words.RemovePrefix(t.Final(q), u)
	if err != nil {
		return fmt.Errorf("onward: state %d final output: %w", q, err)
	}
	t.SetFinal(q, final)

	for _, sym := range t.Symbols(q) {
		e, _ := t.Edge(q, sym)
		rest, err := words.TrimPrefix(e.Output, u)
		if err != nil {
			return fmt.Errorf("onward: state %d edge %q: %w", q, string(sym), err)
		}
		t.SetEdge(q, sym, rest, e.Target)
	}
	return nil
}
