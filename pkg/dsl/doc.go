/*
Package dsl provides a Go DSL for programmatically constructing training sets,
and the document format shared by the file and Loam adapters.

It allows developers to define samples with a fluent builder instead of
external YAML or JSON files, which is convenient for tests and for embedding
a learner in another program.

Example usage:

	b := dsl.New()

	b.Add("binary").
		Input("a", "b").
		Output("0", "1").
		Pair("ab", "01").
		Pair("ba", "10")

	b.Add("words").
		Separator(" ").
		Pair("the cat", "le chat")

	// The result can be used as a ports.TrainingLoader.
	loader, err := b.Build()

# Document format

Training set documents (YAML, JSON or Loam frontmatter) use these keys:

	name: binary            # optional, defaults to the document id
	separator: " "          # optional, splits words into symbols; default is one symbol per character
	input_alphabet: [a, b]  # optional, inferred from the sample when missing
	output_alphabet: "01"   # a string is split like a word
	sample:
	  - [ab, "01"]          # a pair as a two-element list
	  - {input: ba, output: "10"}
	  - input: [a, b, a]    # either side may be a list of symbols
	    output: "010"
*/
package dsl
