package learner

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia/pkg/domain"
)

// s1 rewrites a to 0 and b to 1.
var s1 = domain.ParseSample(
	"ab", "01", "aba", "010", "aaa", "000", "bb", "11", "babb", "1011", "bbaa", "1100",
	"aa", "00", "baab", "1001", "ba", "10", "bba", "110", "baa", "100", "bab", "101",
)

// s2 rewrites a to 0 unless it is the last symbol, in which case it becomes 1.
var s2 = domain.ParseSample(
	"b", "1", "a", "1", "ab", "01", "abb", "011", "bb", "11", "aa", "01",
	"aaa", "001", "aabaab", "001001", "aab", "001", "aaba", "0011", "aabaa", "00101",
)

func binarySet(sample domain.Sample) domain.TrainingSet {
	return domain.TrainingSet{InputAlphabet: binaryIn, OutputAlphabet: binaryOut, Sample: sample}
}

func TestLearn_RoundTrip(t *testing.T) {
	for name, sample := range map[string]domain.Sample{"s1": s1, "s2": s2} {
		t.Run(name, func(t *testing.T) {
			tr, err := New(WithVerification(true)).Learn(binarySet(sample))
			require.NoError(t, err)

			for _, p := range sample {
				got, err := tr.Apply(p.Input)
				require.NoError(t, err)
				assert.Equal(t, p.Output.String(), got.String(), "input %q", p.Input.String())
			}
		})
	}
}

func TestLearn_Homomorphism(t *testing.T) {
	tr, err := New().Learn(binarySet(s1))
	require.NoError(t, err)

	assert.Equal(t, 1, tr.NumStates())
	want := []domain.Transition{edge(0, "a", "0", 0), edge(0, "b", "1", 0)}
	if diff := cmp.Diff(want, tr.Transitions(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}

	for in, out := range map[string]string{"bbb": "111", "abbaba": "011010", "ababa": "01010"} {
		got, err := tr.Apply(domain.ParseWord(in))
		require.NoError(t, err)
		assert.Equal(t, out, got.String(), "input %q", in)
	}
}

func TestLearn_UnrecognizedInput(t *testing.T) {
	tr, err := New().Learn(binarySet(domain.ParseSample("ab", "01", "aba", "010")))
	require.NoError(t, err)

	got, err := tr.Apply(domain.ParseWord("ab"))
	require.NoError(t, err)
	assert.Equal(t, "01", got.String())

	got, err = tr.Apply(domain.ParseWord("aba"))
	require.NoError(t, err)
	assert.Equal(t, "010", got.String())

	_, err = tr.Apply(domain.ParseWord("c"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnrecognizedInput))

	var uie *domain.UnrecognizedInputError
	require.True(t, errors.As(err, &uie))
	assert.Equal(t, 0, uie.Position)
	assert.Equal(t, domain.Symbol("c"), uie.Symbol)
}

func TestLearn_InconsistentSampleBeforeMerge(t *testing.T) {
	attempts := 0
	hooks := domain.LifecycleHooks{
		OnMergeAttempt: func(*domain.MergeEvent) { attempts++ },
	}

	tr, err := New(WithLifecycleHooks(hooks)).Learn(binarySet(domain.ParseSample("a", "0", "a", "1")))
	assert.Nil(t, tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInconsistentSample)
	assert.Zero(t, attempts)
}

func TestLearn_AlphabetViolation(t *testing.T) {
	_, err := New().Learn(binarySet(domain.ParseSample("ac", "01")))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlphabetViolation)
}

func TestLearn_DeterministicAfterEveryMerge(t *testing.T) {
	var checked int
	hooks := domain.LifecycleHooks{
		OnMerge: func(e *domain.MergeEvent) {
			checked++
			for _, q := range e.Transducer.States() {
				seen := make(map[domain.Symbol]bool)
				for _, sym := range e.Transducer.Symbols(q) {
					assert.False(t, seen[sym], "state %d has two edges on %q", q, sym)
					seen[sym] = true

					next, _ := e.Transducer.Edge(q, sym)
					assert.True(t, e.Transducer.Has(next.Target), "state %d edge %q leads to removed state %d", q, sym, next.Target)
				}
			}
			assert.False(t, e.Transducer.Has(e.Blue), "blue state %d survived its merge", e.Blue)
		},
	}

	_, err := New(WithLifecycleHooks(hooks)).Learn(binarySet(s2))
	require.NoError(t, err)
	assert.Positive(t, checked)
}

func TestLearn_RollbackRestoresSnapshot(t *testing.T) {
	var before string
	rollbacks := 0
	hooks := domain.LifecycleHooks{
		OnMergeAttempt: func(e *domain.MergeEvent) {
			before = e.Transducer.String()
		},
		OnRollback: func(e *domain.MergeEvent) {
			rollbacks++
			assert.NotEmpty(t, e.Reason)
			if diff := cmp.Diff(before, e.Transducer.String()); diff != "" {
				t.Errorf("rollback of %d into %d left changes (-before +after):\n%s", e.Blue, e.Red, diff)
			}
		},
	}

	_, err := New(WithLifecycleHooks(hooks)).Learn(binarySet(domain.ParseSample("ab", "01", "aba", "010")))
	require.NoError(t, err)
	assert.Positive(t, rollbacks)
}

func TestLearn_PhaseHooks(t *testing.T) {
	var phases []domain.Phase
	hooks := domain.LifecycleHooks{
		OnPhase: func(e *domain.PhaseEvent) { phases = append(phases, e.Phase) },
	}

	_, err := New(WithLifecycleHooks(hooks)).Learn(binarySet(s1))
	require.NoError(t, err)
	assert.Equal(t, []domain.Phase{domain.PhaseTree, domain.PhaseOnward, domain.PhaseMerge, domain.PhaseCompact}, phases)
}

func TestLearn_EmptySample(t *testing.T) {
	tr, err := New().Learn(binarySet(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.NumStates())

	_, err = tr.Apply(domain.Word{})
	assert.NoError(t, err)
}
