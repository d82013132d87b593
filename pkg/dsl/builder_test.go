package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/ostia/pkg/domain"
)

func TestBuilder_SimpleSets(t *testing.T) {
	b := New()

	b.Add("binary").
		Input("a", "b").
		Output("0", "1").
		Pair("ab", "01").
		Pair("ba", "10")

	b.Add("words").
		Separator(" ").
		Pairs("the cat", "le chat", "the dog", "le chien")

	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	ctx := context.Background()

	binary, err := loader.Load(ctx, "binary")
	if err != nil {
		t.Fatalf("Load('binary') failed: %v", err)
	}
	if len(binary.Sample) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(binary.Sample))
	}
	if got := binary.InputAlphabet.Strings(); len(got) != 2 || got[0] != "a" {
		t.Errorf("Expected declared input alphabet [a b], got %v", got)
	}

	words, err := loader.Load(ctx, "words")
	if err != nil {
		t.Fatalf("Load('words') failed: %v", err)
	}
	if got := words.Sample[1].Output; len(got) != 2 || got[1] != "chien" {
		t.Errorf("Expected output [le chien], got %v", got)
	}
	if !words.InputAlphabet.Contains("dog") {
		t.Errorf("Expected inferred input alphabet to contain 'dog', got %v", words.InputAlphabet)
	}

	names, err := loader.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("Expected 2 training sets, got %d", len(names))
	}
}

func TestBuilder_OddPairs(t *testing.T) {
	b := New()
	b.Add("broken").Pairs("a", "0", "b")

	if _, err := b.Build(); err == nil {
		t.Error("Expected Build() to fail on an odd number of pair arguments")
	}
}

func TestSetBuilder_Words(t *testing.T) {
	set, err := NewSet("w").
		Words(domain.Word{"ab", "c"}, domain.Word{"x"}).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(set.InputAlphabet) != 2 || set.InputAlphabet[0] != "ab" {
		t.Errorf("Expected inferred alphabet [ab c], got %v", set.InputAlphabet)
	}
}
