// Package words implements the word operations the learner relies on:
// prefix enumeration, longest common prefixes and prefix removal.
package words

import (
	"errors"
	"fmt"
	"iter"

	"github.com/aretw0/ostia/pkg/domain"
)

// ErrEmptyArgument is returned by LongestCommonPrefix when every argument is undefined.
var ErrEmptyArgument = errors.New("words: at least one defined output is required")

// ErrNotAPrefix is the sentinel wrapped by NotAPrefixError.
var ErrNotAPrefix = errors.New("words: not a prefix")

// NotAPrefixError reports a RemovePrefix call whose prefix does not match.
type NotAPrefixError struct {
	Word   domain.Word
	Prefix domain.Word
}

func (e *NotAPrefixError) Error() string {
	return fmt.Sprintf("words: %q is not a prefix of %q", e.Prefix.String(), e.Word.String())
}

func (e *NotAPrefixError) Unwrap() error { return ErrNotAPrefix }

// Prefixes yields every prefix of w from the empty word up to w itself.
// Each yielded word is a fresh copy.
func Prefixes(w domain.Word) iter.Seq[domain.Word] {
	return func(yield func(domain.Word) bool) {
		for i := 0; i <= len(w); i++ {
			if !yield(w[:i].Clone()) {
				return
			}
		}
	}
}

// PrefixList returns the prefixes of w, shortest first.
func PrefixList(w domain.Word) []domain.Word {
	out := make([]domain.Word, 0, len(w)+1)
	for p := range Prefixes(w) {
		out = append(out, p)
	}
	return out
}

// CommonPrefix returns the longest prefix shared by all words.
// With no arguments it returns the empty word.
func CommonPrefix(ws ...domain.Word) domain.Word {
	if len(ws) == 0 {
		return domain.Word{}
	}
	n := len(ws[0])
	for _, w := range ws[1:] {
		n = min(n, len(w))
	}
	i := 0
scan:
	for ; i < n; i++ {
		for _, w := range ws[1:] {
			if w[i] != ws[0][i] {
				break scan
			}
		}
	}
	return ws[0][:i].Clone()
}

// LongestCommonPrefix returns the longest prefix shared by the defined outputs.
// Undefined outputs are ignored; if nothing is left it fails with ErrEmptyArgument.
func LongestCommonPrefix(outs ...domain.Output) (domain.Word, error) {
	defined := make([]domain.Word, 0, len(outs))
	for _, o := range outs {
		if w, ok := o.Word(); ok {
			defined = append(defined, w)
		}
	}
	if len(defined) == 0 {
		return nil, ErrEmptyArgument
	}
	return CommonPrefix(defined...), nil
}

// TrimPrefix returns w without its leading pref.
func TrimPrefix(w, pref domain.Word) (domain.Word, error) {
	if !w.HasPrefix(pref) {
		return nil, &NotAPrefixError{Word: w.Clone(), Prefix: pref.Clone()}
	}
	return w[len(pref):].Clone(), nil
}

// RemovePrefix strips pref from a defined output. Undefined outputs absorb
// the removal and are returned unchanged.
func RemovePrefix(o domain.Output, pref domain.Word) (domain.Output, error) {
	w, ok := o.Word()
	if !ok {
		return o, nil
	}
	rest, err := TrimPrefix(w, pref)
	if err != nil {
		return domain.Output{}, err
	}
	return domain.Defined(rest), nil
}
