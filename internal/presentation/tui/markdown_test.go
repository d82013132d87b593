package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/ostia/pkg/domain"
)

func TestTransducerMarkdown(t *testing.T) {
	tr := domain.NewTransducer(domain.ParseAlphabet("a"), domain.ParseAlphabet("0"))
	tr.SetFinal(tr.Initial(), domain.Defined(nil))
	tr.SetEdge(tr.Initial(), "a", domain.ParseWord("0"), tr.Initial())

	md := TransducerMarkdown("homomorphism", tr)

	assert.True(t, strings.HasPrefix(md, "# homomorphism\n"))
	assert.Contains(t, md, "**1** states, **1** transitions, initial output ε.")
	assert.Contains(t, md, "| 0 | ε | ε |")
	assert.Contains(t, md, "| 0 | `a` | `0` | 0 |")
}

func TestApplyMarkdown(t *testing.T) {
	md := ApplyMarkdown([]ApplyResult{
		{Input: domain.ParseWord("ab"), Output: domain.ParseWord("01")},
		{Input: domain.Word{"the", "cat"}, Output: domain.Word{"le", "chat"}},
		{Input: domain.ParseWord("c"), Err: errors.New("no | transition")},
	})

	assert.Contains(t, md, "| `ab` | `01` |")
	assert.Contains(t, md, "| `the cat` | `le chat` |")
	assert.Contains(t, md, `no \| transition`)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), `\___/|___/\__|_|\__,_|`)
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Title")
	assert.NoError(t, err)
	assert.Contains(t, out, "Title")
}
