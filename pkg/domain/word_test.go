package domain

import "testing"

func TestSplitWord(t *testing.T) {
	tests := []struct {
		in, sep string
		want    Word
	}{
		{"abc", "", Word{"a", "b", "c"}},
		{"ab cd  e", " ", Word{"ab", "cd", "e"}},
		{"", " ", Word{}},
		{"ñb", "", Word{"ñ", "b"}},
	}
	for _, tt := range tests {
		got := SplitWord(tt.in, tt.sep)
		if !got.Equal(tt.want) {
			t.Errorf("SplitWord(%q, %q) = %v, want %v", tt.in, tt.sep, got, tt.want)
		}
	}
}

func TestOutput(t *testing.T) {
	if Undefined().IsDefined() {
		t.Error("Undefined() must not be defined")
	}
	if (Output{}).IsDefined() {
		t.Error("zero Output must be undefined")
	}
	empty := Defined(nil)
	if !empty.IsDefined() || empty.String() != "" {
		t.Errorf("Defined(nil) = %v, want defined empty output", empty)
	}
	if Undefined().String() != "*" {
		t.Errorf("undefined renders as %q, want *", Undefined().String())
	}
	if got := Defined(ParseWord("1")).Prepend(ParseWord("0")); got.String() != "01" {
		t.Errorf("Prepend = %q, want 01", got.String())
	}
	if Undefined().Prepend(ParseWord("0")).IsDefined() {
		t.Error("Prepend must keep undefined outputs undefined")
	}
	if Defined(Word{}).Equal(Undefined()) {
		t.Error("empty output must differ from undefined")
	}
}

func TestInferAlphabets(t *testing.T) {
	in, out := InferAlphabets(ParseSample("ba", "10", "ab", "01"))
	if !Word(in).Equal(Word{"b", "a"}) {
		t.Errorf("input alphabet = %v", in)
	}
	if !Word(out).Equal(Word{"1", "0"}) {
		t.Errorf("output alphabet = %v", out)
	}

	ts := TrainingSet{InputAlphabet: ParseAlphabet("a", "b", "c"), Sample: ParseSample("a", "x")}.WithInferredAlphabets()
	if len(ts.InputAlphabet) != 3 {
		t.Errorf("declared input alphabet must be kept, got %v", ts.InputAlphabet)
	}
	if len(ts.OutputAlphabet) != 1 {
		t.Errorf("output alphabet must be inferred, got %v", ts.OutputAlphabet)
	}
}
