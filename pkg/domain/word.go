package domain

import (
	"strings"
	"unicode/utf8"
)

// Symbol is an opaque alphabet token. Symbols are compared by value only.
type Symbol string

// Word is a finite sequence of symbols. The empty word is a valid (empty) output.
type Word []Symbol

// ParseWord splits s into one symbol per rune.
func ParseWord(s string) Word {
	w := make(Word, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		w = append(w, Symbol(r))
	}
	return w
}

// SplitWord splits s on sep. An empty sep behaves like ParseWord.
// Empty fields are dropped, so "a  b" with sep " " yields [a b].
func SplitWord(s, sep string) Word {
	if sep == "" {
		return ParseWord(s)
	}
	fields := strings.Split(s, sep)
	w := make(Word, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		w = append(w, Symbol(f))
	}
	return w
}

// String concatenates the symbols of w without a separator.
func (w Word) String() string {
	return w.Join("")
}

// Join concatenates the symbols of w using sep.
func (w Word) Join(sep string) string {
	var sb strings.Builder
	for i, s := range w {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(string(s))
	}
	return sb.String()
}

// Strings returns the symbols as plain strings.
func (w Word) Strings() []string {
	out := make([]string, len(w))
	for i, s := range w {
		out[i] = string(s)
	}
	return out
}

// Equal reports whether w and other hold the same symbols in the same order.
func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether pref is a prefix of w.
func (w Word) HasPrefix(pref Word) bool {
	return len(pref) <= len(w) && w[:len(pref)].Equal(pref)
}

// Concat returns a new word holding w followed by others. The receiver is never aliased.
func (w Word) Concat(others ...Word) Word {
	n := len(w)
	for _, o := range others {
		n += len(o)
	}
	out := make(Word, 0, n)
	out = append(out, w...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// Clone returns a copy of w that shares no backing array with it.
func (w Word) Clone() Word {
	if w == nil {
		return nil
	}
	out := make(Word, len(w))
	copy(out, w)
	return out
}

// Key encodes w for use as a map key. The unit separator cannot collide for
// symbols that do not themselves contain it.
func (w Word) Key() string {
	return w.Join("\x1f")
}

// Alphabet is an ordered set of symbols. The order defines the traversal
// order of outgoing transitions and the length-lex order of tree states.
type Alphabet []Symbol

// NewAlphabet builds an alphabet from symbols, dropping duplicates while
// preserving first-seen order.
func NewAlphabet(symbols ...Symbol) Alphabet {
	seen := make(map[Symbol]bool, len(symbols))
	a := make(Alphabet, 0, len(symbols))
	for _, s := range symbols {
		if seen[s] {
			continue
		}
		seen[s] = true
		a = append(a, s)
	}
	return a
}

// ParseAlphabet builds an alphabet with one symbol per string.
func ParseAlphabet(symbols ...string) Alphabet {
	syms := make([]Symbol, len(symbols))
	for i, s := range symbols {
		syms[i] = Symbol(s)
	}
	return NewAlphabet(syms...)
}

// Index returns the rank of s in the alphabet, or -1.
func (a Alphabet) Index(s Symbol) int {
	for i, x := range a {
		if x == s {
			return i
		}
	}
	return -1
}

// Contains reports whether s belongs to the alphabet.
func (a Alphabet) Contains(s Symbol) bool {
	return a.Index(s) >= 0
}

// Set returns the alphabet as a lookup table from symbol to rank.
func (a Alphabet) Set() map[Symbol]int {
	m := make(map[Symbol]int, len(a))
	for i, s := range a {
		m[s] = i
	}
	return m
}

// Strings returns the symbols as plain strings.
func (a Alphabet) Strings() []string {
	return Word(a).Strings()
}
