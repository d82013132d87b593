package domain

// Output is the final output of a state: either a defined word (possibly
// empty) or undefined, meaning the state emits nothing when input ends there.
// The zero value is undefined.
type Output struct {
	word    Word
	defined bool
}

// Defined returns a defined output holding a copy of w.
func Defined(w Word) Output {
	if w == nil {
		w = Word{}
	}
	return Output{word: w.Clone(), defined: true}
}

// Undefined returns the undefined output.
func Undefined() Output {
	return Output{}
}

// IsDefined reports whether the output carries a word.
func (o Output) IsDefined() bool {
	return o.defined
}

// Word returns the output word and whether it is defined.
func (o Output) Word() (Word, bool) {
	return o.word, o.defined
}

// Equal reports whether two outputs are both undefined or both defined with equal words.
func (o Output) Equal(other Output) bool {
	if o.defined != other.defined {
		return false
	}
	return !o.defined || o.word.Equal(other.word)
}

// Prepend returns pref followed by the output word. Undefined stays undefined.
func (o Output) Prepend(pref Word) Output {
	if !o.defined {
		return o
	}
	return Output{word: pref.Concat(o.word), defined: true}
}

func (o Output) clone() Output {
	if !o.defined {
		return Output{}
	}
	return Output{word: o.word.Clone(), defined: true}
}

// String renders the output, using "*" for undefined.
func (o Output) String() string {
	if !o.defined {
		return "*"
	}
	return o.word.String()
}
