package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/ostia/pkg/domain"
)

func binarySet(sample domain.Sample) domain.TrainingSet {
	return domain.TrainingSet{
		InputAlphabet:  domain.ParseAlphabet("a", "b"),
		OutputAlphabet: domain.ParseAlphabet("0", "1"),
		Sample:         sample,
	}
}

func TestValidateSample(t *testing.T) {
	// Scenario A: every symbol declared
	if err := ValidateSample(binarySet(domain.ParseSample("ab", "01", "bb", "11"))); err != nil {
		t.Errorf("Scenario A (valid) failed: %v", err)
	}

	// Scenario B: foreign symbols on both sides
	err := ValidateSample(binarySet(domain.ParseSample("ac", "01", "cc", "2")))
	if err == nil {
		t.Fatal("Scenario B: expected an alphabet violation, got nil")
	}
	if !errors.Is(err, domain.ErrAlphabetViolation) {
		t.Errorf("Scenario B: expected ErrAlphabetViolation, got %v", err)
	}

	violations := domain.Errors(err)
	if len(violations) != 3 {
		t.Fatalf("Scenario B: expected 3 violations (c in pair 0, c and 2 in pair 1), got %d: %v", len(violations), err)
	}
	var ave *domain.AlphabetViolationError
	if !errors.As(violations[2], &ave) {
		t.Fatalf("expected *AlphabetViolationError, got %T", violations[2])
	}
	if ave.Pair != 1 || ave.Side != domain.SideOutput || ave.Symbol != "2" {
		t.Errorf("unexpected violation: %+v", ave)
	}
}

func TestVerifyTransducer(t *testing.T) {
	tr := domain.NewTransducer(domain.ParseAlphabet("a", "b"), domain.ParseAlphabet("0", "1"))
	q := tr.Initial()
	tr.SetFinal(q, domain.Defined(domain.Word{}))
	tr.SetEdge(q, "a", domain.ParseWord("0"), q)
	tr.SetEdge(q, "b", domain.ParseWord("1"), q)

	sample := domain.ParseSample("ab", "01", "bba", "110")
	if err := VerifyTransducer(tr, sample); err != nil {
		t.Errorf("valid transducer rejected: %v", err)
	}

	err := VerifyTransducer(tr, domain.ParseSample("ab", "00"))
	if err == nil {
		t.Fatal("expected output mismatch, got nil")
	}
	var v *Violation
	if !errors.As(err, &v) || v.Kind != OutputMismatch {
		t.Errorf("expected OutputMismatch violation, got %v", err)
	}
}

func TestVerifyTransducer_Structure(t *testing.T) {
	tr := domain.NewTransducer(domain.ParseAlphabet("a"), domain.ParseAlphabet("0"))
	ghost := tr.AddState(domain.ParseWord("a"))
	orphan := tr.AddState(domain.ParseWord("x"))
	tr.SetEdge(tr.Initial(), "a", nil, ghost)
	tr.SetEdge(tr.Initial(), "z", nil, tr.Initial())
	tr.Remove(ghost)

	err := VerifyTransducer(tr, nil)
	if err == nil {
		t.Fatal("expected structural violations, got nil")
	}

	kinds := make(map[ViolationKind]domain.StateID)
	for _, e := range domain.Errors(err) {
		var v *Violation
		if errors.As(e, &v) {
			kinds[v.Kind] = v.State
		}
	}
	if _, ok := kinds[DanglingEdge]; !ok {
		t.Error("expected a dangling edge violation")
	}
	if _, ok := kinds[ForeignSymbol]; !ok {
		t.Error("expected a foreign symbol violation")
	}
	if s, ok := kinds[Unreachable]; !ok || s != orphan {
		t.Errorf("expected state %d to be reported unreachable, got %v", orphan, kinds)
	}
}

func TestVerifyTransducer_Unconstructed(t *testing.T) {
	if err := VerifyTransducer(&domain.Transducer{}, nil); !errors.Is(err, domain.ErrUnconstructedTransducer) {
		t.Errorf("expected ErrUnconstructedTransducer, got %v", err)
	}
}
