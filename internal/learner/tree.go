package learner

import (
	"slices"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/words"
)

// BuildTree builds the prefix-tree transducer of a sample: one state per
// distinct prefix of a sample input, edges with empty output, and the sample
// outputs as final outputs of the states reached by complete inputs.
//
// States are created in length-lex order (symbol rank taken from the input
// alphabet), so ascending StateID order is the shortest-prefix-first order
// the merger depends on.
func BuildTree(sample domain.Sample, in, out domain.Alphabet) (*domain.Transducer, error) {
	finals := make(map[string]domain.Word, len(sample))
	for _, p := range sample {
		key := p.Input.Key()
		if prev, ok := finals[key]; ok {
			if !prev.Equal(p.Output) {
				return nil, &domain.InconsistentSampleError{Input: p.Input.Clone(), First: prev.Clone(), Second: p.Output.Clone()}
			}
			continue
		}
		finals[key] = p.Output
	}

	seen := make(map[string]bool)
	var prefixes []domain.Word
	for _, p := range sample {
		for pref := range words.Prefixes(p.Input) {
			if k := pref.Key(); !seen[k] {
				seen[k] = true
				prefixes = append(prefixes, pref)
			}
		}
	}
	if !seen[domain.Word{}.Key()] {
		prefixes = append(prefixes, domain.Word{})
	}

	rank := in.Set()
	slices.SortFunc(prefixes, func(a, b domain.Word) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		for i := range a {
			if a[i] != b[i] {
				return symbolRank(rank, a[i]) - symbolRank(rank, b[i])
			}
		}
		return 0
	})

	t := domain.NewTransducer(in, out)
	ids := map[string]domain.StateID{domain.Word{}.Key(): t.Initial()}
	for _, pref := range prefixes {
		if len(pref) == 0 {
			continue
		}
		id := t.AddState(pref)
		ids[pref.Key()] = id

		parent := ids[pref[:len(pref)-1].Key()]
		t.SetEdge(parent, pref[len(pref)-1], domain.Word{}, id)
	}

	for key, o := range finals {
		t.SetFinal(ids[key], domain.Defined(o))
	}
	return t, nil
}

// symbolRank orders symbols outside the alphabet after every alphabet symbol.
// Such samples are rejected by validation; the ordering only has to be total.
func symbolRank(rank map[domain.Symbol]int, s domain.Symbol) int {
	if r, ok := rank[s]; ok {
		return r
	}
	return len(rank)
}
