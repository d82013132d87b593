package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/ostia/pkg/domain"
)

// ErrMalformedDocument is returned when a training set document cannot be decoded.
var ErrMalformedDocument = errors.New("malformed training set document")

// Document is the loosely typed form of a training set, as found in YAML,
// JSON or frontmatter. Alphabets and pair sides may be strings or symbol lists.
type Document struct {
	Name           string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Separator      string `json:"separator,omitempty" yaml:"separator,omitempty" mapstructure:"separator"`
	InputAlphabet  any    `json:"input_alphabet,omitempty" yaml:"input_alphabet,omitempty" mapstructure:"input_alphabet"`
	OutputAlphabet any    `json:"output_alphabet,omitempty" yaml:"output_alphabet,omitempty" mapstructure:"output_alphabet"`
	Sample         []any  `json:"sample" yaml:"sample" mapstructure:"sample"`
}

type rawPair struct {
	Input  any `mapstructure:"input"`
	Output any `mapstructure:"output"`
}

// Decode converts an untyped document (e.g. the result of yaml.Unmarshal
// into a map) into a training set.
func Decode(raw map[string]any) (*domain.TrainingSet, error) {
	var doc Document
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return doc.TrainingSet()
}

// TrainingSet converts the document into a training set. Missing alphabets
// are inferred from the sample.
func (d Document) TrainingSet() (*domain.TrainingSet, error) {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrMalformedDocument}, args...)...))
	}

	set := domain.TrainingSet{Name: d.Name}

	in, err := toWord(d.InputAlphabet, d.Separator)
	if err != nil {
		fail("input_alphabet: %v", err)
	}
	out, err := toWord(d.OutputAlphabet, d.Separator)
	if err != nil {
		fail("output_alphabet: %v", err)
	}
	set.InputAlphabet = domain.NewAlphabet(in...)
	set.OutputAlphabet = domain.NewAlphabet(out...)

	for i, entry := range d.Sample {
		p, err := toPair(entry, d.Separator)
		if err != nil {
			fail("sample[%d]: %v", i, err)
			continue
		}
		set.Sample = append(set.Sample, p)
	}

	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}
	set = set.WithInferredAlphabets()
	return &set, nil
}

func toPair(entry any, sep string) (domain.Pair, error) {
	var rp rawPair
	switch v := entry.(type) {
	case []any:
		if len(v) != 2 {
			return domain.Pair{}, fmt.Errorf("a pair list needs exactly 2 elements, got %d", len(v))
		}
		rp = rawPair{Input: v[0], Output: v[1]}
	case map[string]any:
		if err := mapstructure.Decode(v, &rp); err != nil {
			return domain.Pair{}, err
		}
	default:
		return domain.Pair{}, fmt.Errorf("expected a [input, output] list or an {input, output} map, got %T", entry)
	}

	in, err := toWord(rp.Input, sep)
	if err != nil {
		return domain.Pair{}, fmt.Errorf("input: %w", err)
	}
	out, err := toWord(rp.Output, sep)
	if err != nil {
		return domain.Pair{}, fmt.Errorf("output: %w", err)
	}
	return domain.Pair{Input: in, Output: out}, nil
}

// toWord accepts nil (empty word), a string split by sep, or a list of
// scalar symbols. Numbers are rejected as whole words because YAML drops
// their leading zeros; quote them instead.
func toWord(v any, sep string) (domain.Word, error) {
	switch x := v.(type) {
	case nil:
		return domain.Word{}, nil
	case string:
		return domain.SplitWord(x, sep), nil
	case []any:
		w := make(domain.Word, 0, len(x))
		for _, s := range x {
			sym, err := toSymbol(s)
			if err != nil {
				return nil, err
			}
			w = append(w, sym)
		}
		return w, nil
	case []string:
		w := make(domain.Word, len(x))
		for i, s := range x {
			w[i] = domain.Symbol(s)
		}
		return w, nil
	}
	return nil, fmt.Errorf("expected a string or a list of symbols, got %T (quote numeric words)", v)
}

func toSymbol(v any) (domain.Symbol, error) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return "", errors.New("empty symbol")
		}
		return domain.Symbol(x), nil
	case fmt.Stringer:
		return domain.Symbol(x.String()), nil
	case int, int64, uint64, float64, bool:
		return domain.Symbol(fmt.Sprint(x)), nil
	}
	return "", fmt.Errorf("unsupported symbol type %T", v)
}

// Encode converts a training set into its document form. Words are written
// as strings joined by a separator: empty when every symbol is a single
// character, a space otherwise. Symbols that would be ambiguous under that
// separator are written as lists.
func Encode(set domain.TrainingSet) Document {
	sep := InferSeparator(set)
	doc := Document{
		Name:           set.Name,
		Separator:      sep,
		InputAlphabet:  encodeWord(domain.Word(set.InputAlphabet), sep),
		OutputAlphabet: encodeWord(domain.Word(set.OutputAlphabet), sep),
		Sample:         make([]any, len(set.Sample)),
	}
	for i, p := range set.Sample {
		doc.Sample[i] = []any{encodeWord(p.Input, sep), encodeWord(p.Output, sep)}
	}
	return doc
}

// InferSeparator returns "" when every symbol of the set is a single
// character and " " otherwise.
func InferSeparator(set domain.TrainingSet) string {
	for _, w := range allWords(set) {
		for _, s := range w {
			if len([]rune(string(s))) != 1 {
				return " "
			}
		}
	}
	return ""
}

func allWords(set domain.TrainingSet) []domain.Word {
	ws := []domain.Word{domain.Word(set.InputAlphabet), domain.Word(set.OutputAlphabet)}
	for _, p := range set.Sample {
		ws = append(ws, p.Input, p.Output)
	}
	return ws
}

func encodeWord(w domain.Word, sep string) any {
	for _, s := range w {
		if sep != "" && strings.Contains(string(s), sep) {
			return w.Strings()
		}
	}
	return w.Join(sep)
}
