package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ostia/internal/presentation/graph"
	"github.com/aretw0/ostia/pkg/domain"
)

// sample builds: 0 -a:0-> 0, 0 -b:ε-> 1, 1 final "1", initial output "x".
func sample() *domain.Transducer {
	t := domain.NewTransducer(domain.ParseAlphabet("a", "b"), domain.ParseAlphabet("0", "1", "x"))
	q1 := t.AddState(domain.ParseWord("b"))
	t.InitialOutput = domain.ParseWord("x")
	t.SetEdge(t.Initial(), "a", domain.ParseWord("0"), t.Initial())
	t.SetEdge(t.Initial(), "b", nil, q1)
	t.SetFinal(q1, domain.Defined(domain.ParseWord("1")))
	return t
}

func TestGenerateMermaid(t *testing.T) {
	quoted := domain.NewTransducer(domain.ParseAlphabet(`"`), nil)
	quoted.SetEdge(quoted.Initial(), `"`, domain.Word{"ab", "c"}, quoted.Initial())

	tests := []struct {
		name     string
		t        *domain.Transducer
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "State Shapes",
			t:    sample(),
			contains: []string{
				"graph LR",
				`q0(("0"))`,
				`q1((("1 / 1")))`,
			},
		},
		{
			name: "Initial Output",
			t:    sample(),
			contains: []string{
				`start -- "x" --> q0`,
			},
		},
		{
			name: "Edge Labels",
			t:    sample(),
			contains: []string{
				`q0 -- "a : 0" --> q0`,
				`q0 -- "b : ε" --> q1`,
			},
		},
		{
			name: "Escaping And Multi-Character Symbols",
			t:    quoted,
			contains: []string{
				`q0 -- "#quot; : ab c" --> q0`,
				"start --> q0",
			},
		},
		{
			name:    "Overlay",
			t:       sample(),
			overlay: &graph.GraphOverlay{Path: []domain.StateID{0, 0, 1}},
			contains: []string{
				"class q0 visited;",
				"class q1 current;",
			},
			excludes: []string{
				"class q1 visited;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.t, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, bad)
				}
			}
		})
	}
}
