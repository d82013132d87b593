package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ostia/pkg/domain"
)

// GraphOverlay contains dynamic data to visualize on the graph.
type GraphOverlay struct {
	// Path lists the states visited while reading an input, in order.
	Path []domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart of a transducer.
// It applies semantic styling:
// - Non-final state: ((Circle))
// - Final state: (((Double circle))), labelled with its final output
// - Edges: "symbol : output"
// The initial state is marked by an arrow from an invisible start point,
// labelled with the initial output when there is one.
// It also applies overlay styles (visited/current) if provided.
func GenerateMermaid(t *domain.Transducer, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	sb.WriteString("    start[ ]:::hidden\n")
	if len(t.InitialOutput) > 0 {
		fmt.Fprintf(&sb, "    start -- \"%s\" --> %s\n", escape(wordLabel(t.InitialOutput)), nodeID(t.Initial()))
	} else {
		fmt.Fprintf(&sb, "    start --> %s\n", nodeID(t.Initial()))
	}

	for _, id := range t.States() {
		if w, ok := t.Final(id).Word(); ok {
			fmt.Fprintf(&sb, "    %s(((\"%d / %s\")))\n", nodeID(id), id, escape(wordLabel(w)))
		} else {
			fmt.Fprintf(&sb, "    %s((\"%d\"))\n", nodeID(id), id)
		}
	}

	for _, tr := range t.Transitions() {
		fmt.Fprintf(&sb, "    %s -- \"%s : %s\" --> %s\n",
			nodeID(tr.From), escape(string(tr.Symbol)), escape(wordLabel(tr.Output)), nodeID(tr.To))
	}

	sb.WriteString("    classDef hidden display:none;\n")

	if overlay != nil && len(overlay.Path) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast on light fills, regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		last := overlay.Path[len(overlay.Path)-1]
		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.Path {
			if seen[id] || id == last || !t.Has(id) {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(id))
		}
		if t.Has(last) {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(last))
		}
	}

	return sb.String()
}

func nodeID(id domain.StateID) string {
	return fmt.Sprintf("q%d", id)
}

// wordLabel renders a word with spaces between symbols, and the empty word as ε.
func wordLabel(w domain.Word) string {
	if len(w) == 0 {
		return "ε"
	}
	if allSingleRune(w) {
		return w.String()
	}
	return w.Join(" ")
}

func allSingleRune(w domain.Word) bool {
	for _, s := range w {
		if len([]rune(string(s))) != 1 {
			return false
		}
	}
	return true
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
