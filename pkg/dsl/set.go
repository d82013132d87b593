package dsl

import (
	"fmt"

	"github.com/aretw0/ostia/pkg/domain"
)

// SetBuilder provides a fluent API for configuring one training set.
// Words given as strings are split with the separator in effect when the
// pair is added.
type SetBuilder struct {
	set       domain.TrainingSet
	separator string
	errs      []error
}

// NewSet starts a standalone training set.
func NewSet(name string) *SetBuilder {
	return &SetBuilder{set: domain.TrainingSet{Name: name}}
}

// Separator sets the symbol separator for subsequent Pair calls.
// The empty separator (the default) yields one symbol per character.
func (s *SetBuilder) Separator(sep string) *SetBuilder {
	s.separator = sep
	return s
}

// Input declares the input alphabet.
func (s *SetBuilder) Input(symbols ...string) *SetBuilder {
	s.set.InputAlphabet = domain.ParseAlphabet(symbols...)
	return s
}

// Output declares the output alphabet.
func (s *SetBuilder) Output(symbols ...string) *SetBuilder {
	s.set.OutputAlphabet = domain.ParseAlphabet(symbols...)
	return s
}

// Pair adds one observation.
func (s *SetBuilder) Pair(input, output string) *SetBuilder {
	s.set.Sample = append(s.set.Sample, domain.Pair{
		Input:  domain.SplitWord(input, s.separator),
		Output: domain.SplitWord(output, s.separator),
	})
	return s
}

// Pairs adds observations from alternating input/output strings.
func (s *SetBuilder) Pairs(kv ...string) *SetBuilder {
	if len(kv)%2 != 0 {
		s.errs = append(s.errs, fmt.Errorf("set %s: odd number of pair arguments (%d)", s.set.Name, len(kv)))
		return s
	}
	for i := 0; i < len(kv); i += 2 {
		s.Pair(kv[i], kv[i+1])
	}
	return s
}

// Words adds an observation from explicit symbol sequences.
func (s *SetBuilder) Words(input, output domain.Word) *SetBuilder {
	s.set.Sample = append(s.set.Sample, domain.Pair{Input: input.Clone(), Output: output.Clone()})
	return s
}

// Build returns the training set, inferring any alphabet left undeclared.
func (s *SetBuilder) Build() (domain.TrainingSet, error) {
	if len(s.errs) > 0 {
		return domain.TrainingSet{}, &domain.AggregateError{Errors: s.errs}
	}
	return s.set.Clone().WithInferredAlphabets(), nil
}
