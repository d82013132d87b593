package dsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/ostia/pkg/domain"
)

func decodeYAML(t *testing.T, src string) (*domain.TrainingSet, error) {
	t.Helper()
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(src), &raw))
	return Decode(raw)
}

func TestDecode_Forms(t *testing.T) {
	set, err := decodeYAML(t, `
name: mixed
input_alphabet: [a, b]
output_alphabet: "01"
sample:
  - [ab, "01"]
  - {input: ba, output: "10"}
  - input: [a, b, a]
    output: "010"
  - ["", ""]
`)
	require.NoError(t, err)

	assert.Equal(t, "mixed", set.Name)
	assert.Equal(t, []string{"a", "b"}, set.InputAlphabet.Strings())
	assert.Equal(t, []string{"0", "1"}, set.OutputAlphabet.Strings())
	require.Len(t, set.Sample, 4)
	assert.Equal(t, "aba", set.Sample[2].Input.String())
	assert.Equal(t, "010", set.Sample[2].Output.String())
	assert.Empty(t, set.Sample[3].Input)
}

func TestDecode_Separator(t *testing.T) {
	set, err := decodeYAML(t, `
separator: " "
sample:
  - [the cat, le chat]
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "cat"}, set.Sample[0].Input.Strings())
	assert.Equal(t, []string{"the", "cat"}, set.InputAlphabet.Strings(), "alphabets are inferred")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := decodeYAML(t, `
sample:
  - [ab]
  - [ab, 01]
  - 42
`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
	assert.Len(t, domain.Errors(err), 3)
}

func TestEncode_RoundTrip(t *testing.T) {
	sets := []domain.TrainingSet{
		{
			Name:           "chars",
			InputAlphabet:  domain.ParseAlphabet("a", "b"),
			OutputAlphabet: domain.ParseAlphabet("0", "1"),
			Sample:         domain.ParseSample("ab", "01", "", ""),
		},
		{
			Name:           "tokens",
			InputAlphabet:  domain.ParseAlphabet("the", "cat"),
			OutputAlphabet: domain.ParseAlphabet("le", "chat", "new york"),
			Sample: domain.Sample{
				{Input: domain.Word{"the", "cat"}, Output: domain.Word{"le", "chat", "new york"}},
			},
		},
	}

	for _, want := range sets {
		t.Run(want.Name, func(t *testing.T) {
			data, err := yaml.Marshal(Encode(want))
			require.NoError(t, err)

			got, err := decodeYAML(t, string(data))
			require.NoError(t, err)
			assert.Equal(t, want.InputAlphabet, got.InputAlphabet)
			assert.Equal(t, want.OutputAlphabet, got.OutputAlphabet)
			require.Len(t, got.Sample, len(want.Sample))
			for i := range want.Sample {
				assert.True(t, want.Sample[i].Input.Equal(got.Sample[i].Input), "pair %d input", i)
				assert.True(t, want.Sample[i].Output.Equal(got.Sample[i].Output), "pair %d output", i)
			}
		})
	}
}
