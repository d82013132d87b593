package domain

// Pair is one observation of the target function: Input is rewritten to Output.
type Pair struct {
	Input  Word `json:"input" yaml:"input"`
	Output Word `json:"output" yaml:"output"`
}

// NewPair builds a pair from two strings, one symbol per rune.
func NewPair(input, output string) Pair {
	return Pair{Input: ParseWord(input), Output: ParseWord(output)}
}

// Sample is a finite sequence of observations.
type Sample []Pair

// ParseSample builds a sample from alternating input/output strings.
// A trailing odd argument is ignored.
func ParseSample(kv ...string) Sample {
	s := make(Sample, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		s = append(s, NewPair(kv[i], kv[i+1]))
	}
	return s
}

// TrainingSet bundles a sample with the alphabets it is drawn from.
type TrainingSet struct {
	Name           string   `json:"name,omitempty" yaml:"name,omitempty"`
	InputAlphabet  Alphabet `json:"input_alphabet" yaml:"input_alphabet"`
	OutputAlphabet Alphabet `json:"output_alphabet" yaml:"output_alphabet"`
	Sample         Sample   `json:"sample" yaml:"sample"`
}

// InferAlphabets collects the input and output symbols used by the sample,
// in first-seen order.
func InferAlphabets(sample Sample) (in, out Alphabet) {
	var ins, outs []Symbol
	for _, p := range sample {
		ins = append(ins, p.Input...)
		outs = append(outs, p.Output...)
	}
	return NewAlphabet(ins...), NewAlphabet(outs...)
}

// WithInferredAlphabets returns a copy of the set whose missing alphabets are
// inferred from the sample.
func (ts TrainingSet) WithInferredAlphabets() TrainingSet {
	in, out := InferAlphabets(ts.Sample)
	if len(ts.InputAlphabet) == 0 {
		ts.InputAlphabet = in
	}
	if len(ts.OutputAlphabet) == 0 {
		ts.OutputAlphabet = out
	}
	return ts
}

// Clone returns a deep copy of the training set.
func (ts TrainingSet) Clone() TrainingSet {
	out := ts
	out.InputAlphabet = append(Alphabet(nil), ts.InputAlphabet...)
	out.OutputAlphabet = append(Alphabet(nil), ts.OutputAlphabet...)
	out.Sample = make(Sample, len(ts.Sample))
	for i, p := range ts.Sample {
		out.Sample[i] = Pair{Input: p.Input.Clone(), Output: p.Output.Clone()}
	}
	return out
}
