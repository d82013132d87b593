/*
Package ostia learns subsequential string transducers from examples.

Given a finite sample of input/output word pairs, it infers a deterministic
transducer that reproduces every pair and generalises to unseen inputs, using
OSTIA (Onward Subsequential Transducer Inference Algorithm): a prefix-tree
transducer is built from the sample, made onward so outputs are emitted as
early as possible, and then states are merged red/blue with rollback of
incompatible merges.

# Concept

A subsequential transducer reads its input one symbol at a time, following
at most one edge per symbol, and writes the output attached to each edge.
When the input ends it appends the final output of the state it stopped in.
Words are sequences of opaque symbols, so a symbol may be a character or a
whole token.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/ostia"
		"github.com/aretw0/ostia/pkg/domain"
	)

	func main() {
		sample := domain.ParseSample("ab", "01", "ba", "10", "aa", "00", "bb", "11")

		t, err := ostia.Learn(sample, domain.ParseAlphabet("a", "b"), domain.ParseAlphabet("0", "1"))
		if err != nil {
			log.Fatal(err)
		}

		out, err := t.Apply(domain.ParseWord("abba"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out) // 0110
	}

Training sets can also be read from YAML/JSON files (pkg/adapters/file), Loam
workspaces (pkg/adapters/loam) or Redis (pkg/adapters/redis), and the ostia
command exposes learning over a CLI, an HTTP API and an MCP server.
*/
package ostia
