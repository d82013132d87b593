package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/ostia/pkg/domain"
)

// TransducerMarkdown describes a learned transducer as a markdown document
// with a state table and a transition table.
func TransducerMarkdown(title string, t *domain.Transducer) string {
	var sb strings.Builder
	if title == "" {
		title = "Transducer"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**%d** states, **%d** transitions, initial output %s.\n\n",
		t.NumStates(), len(t.Transitions()), code(t.InitialOutput))

	sb.WriteString("## States\n\n")
	sb.WriteString("| State | Prefix | Final output |\n")
	sb.WriteString("|---|---|---|\n")
	for _, id := range t.States() {
		final := "undefined"
		if w, ok := t.Final(id).Word(); ok {
			final = code(w)
		}
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", id, code(t.Label(id)), final)
	}

	sb.WriteString("\n## Transitions\n\n")
	sb.WriteString("| From | Input | Output | To |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, tr := range t.Transitions() {
		fmt.Fprintf(&sb, "| %d | %s | %s | %d |\n", tr.From, code(domain.Word{tr.Symbol}), code(tr.Output), tr.To)
	}
	return sb.String()
}

// ApplyResult is one rewritten word, or the error that prevented it.
type ApplyResult struct {
	Input  domain.Word
	Output domain.Word
	Err    error
}

// ApplyMarkdown renders rewrite results as a markdown table.
func ApplyMarkdown(results []ApplyResult) string {
	var sb strings.Builder
	sb.WriteString("| Input | Output |\n")
	sb.WriteString("|---|---|\n")
	for _, r := range results {
		out := code(r.Output)
		if r.Err != nil {
			out = "⚠️ " + strings.ReplaceAll(r.Err.Error(), "|", "\\|")
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", code(r.Input), out)
	}
	return sb.String()
}

// code renders a word as inline code, using ε for the empty word.
func code(w domain.Word) string {
	if len(w) == 0 {
		return "ε"
	}
	sep := ""
	for _, s := range w {
		if len([]rune(string(s))) != 1 {
			sep = " "
			break
		}
	}
	return "`" + strings.ReplaceAll(w.Join(sep), "|", "\\|") + "`"
}
