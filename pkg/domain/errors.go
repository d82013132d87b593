package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnconstructedTransducer is returned when Apply is called on a transducer with no states.
	ErrUnconstructedTransducer = errors.New("transducer is not constructed")

	// ErrUnrecognizedInput is returned when a word falls outside the transducer's domain.
	ErrUnrecognizedInput = errors.New("input cannot be read by the transducer")

	// ErrInconsistentSample is returned when one input is mapped to two different outputs.
	ErrInconsistentSample = errors.New("inconsistent sample")

	// ErrAlphabetViolation is returned when a sample uses a symbol outside its declared alphabet.
	ErrAlphabetViolation = errors.New("symbol outside alphabet")

	// ErrTrainingSetNotFound is returned when a training set name cannot be found in a store.
	ErrTrainingSetNotFound = errors.New("training set not found")
)

// UnrecognizedInputError reports the first position of Input that has no transition.
type UnrecognizedInputError struct {
	Input    Word
	Position int
	Symbol   Symbol
}

func (e *UnrecognizedInputError) Error() string {
	return fmt.Sprintf("input %q cannot be read by the transducer: no transition on %q at position %d",
		e.Input.String(), string(e.Symbol), e.Position)
}

func (e *UnrecognizedInputError) Unwrap() error { return ErrUnrecognizedInput }

// InconsistentSampleError reports an input observed with two different outputs.
type InconsistentSampleError struct {
	Input  Word
	First  Word
	Second Word
}

func (e *InconsistentSampleError) Error() string {
	return fmt.Sprintf("inconsistent sample: input %q maps to both %q and %q",
		e.Input.String(), e.First.String(), e.Second.String())
}

func (e *InconsistentSampleError) Unwrap() error { return ErrInconsistentSample }

// Side names which half of a pair an AlphabetViolationError refers to.
type Side string

const (
	SideInput  Side = "input"
	SideOutput Side = "output"
)

// AlphabetViolationError reports a symbol that is missing from its alphabet.
type AlphabetViolationError struct {
	Pair   int // index of the offending pair in the sample
	Side   Side
	Symbol Symbol
}

func (e *AlphabetViolationError) Error() string {
	return fmt.Sprintf("pair %d: %s symbol %q is not in the %s alphabet", e.Pair, e.Side, string(e.Symbol), e.Side)
}

func (e *AlphabetViolationError) Unwrap() error { return ErrAlphabetViolation }

// AggregateError represents multiple failures reported together.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// Errors returns all errors if err is an AggregateError.
// Otherwise returns nil.
func Errors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
