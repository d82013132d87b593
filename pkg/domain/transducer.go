package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// StateID indexes a state in a Transducer's arena.
type StateID int

// NoState is returned by lookups that find nothing.
const NoState StateID = -1

// Edge is the outgoing transition of a state on one input symbol.
type Edge struct {
	Output Word
	Target StateID
}

// Transition is a flattened edge, used for listings and rendering.
type Transition struct {
	From   StateID `json:"from"`
	Symbol Symbol  `json:"symbol"`
	Output Word    `json:"output"`
	To     StateID `json:"to"`
}

type state struct {
	label Word
	final Output
	next  map[Symbol]Edge
	alive bool
}

// Transducer is a deterministic subsequential transducer stored as an arena
// of states indexed by StateID. Each state holds at most one edge per input
// symbol, so determinism holds by construction.
//
// Word values stored in a transducer are never mutated in place; callers
// replace them instead.
type Transducer struct {
	InputAlphabet  Alphabet
	OutputAlphabet Alphabet

	// InitialOutput is emitted before the first input symbol is read.
	InitialOutput Word

	initial StateID
	states  []state
}

// NewTransducer creates a transducer holding only the initial state, labelled
// with the empty prefix.
func NewTransducer(in, out Alphabet) *Transducer {
	t := &Transducer{
		InputAlphabet:  in,
		OutputAlphabet: out,
		InitialOutput:  Word{},
	}
	t.initial = t.AddState(Word{})
	return t
}

// Initial returns the initial state.
func (t *Transducer) Initial() StateID {
	return t.initial
}

// AddState appends a new non-final state with no edges and returns its id.
func (t *Transducer) AddState(label Word) StateID {
	t.states = append(t.states, state{
		label: label.Clone(),
		next:  make(map[Symbol]Edge),
		alive: true,
	})
	return StateID(len(t.states) - 1)
}

// Has reports whether id names a live state.
func (t *Transducer) Has(id StateID) bool {
	return id >= 0 && int(id) < len(t.states) && t.states[id].alive
}

// Label returns the input prefix that first reached the state.
func (t *Transducer) Label(id StateID) Word {
	return t.states[id].label
}

// Final returns the final output of a state.
func (t *Transducer) Final(id StateID) Output {
	return t.states[id].final
}

// SetFinal replaces the final output of a state.
func (t *Transducer) SetFinal(id StateID, o Output) {
	t.states[id].final = o
}

// Edge returns the edge leaving id on sym.
func (t *Transducer) Edge(id StateID, sym Symbol) (Edge, bool) {
	e, ok := t.states[id].next[sym]
	return e, ok
}

// SetEdge creates or replaces the edge leaving id on sym.
func (t *Transducer) SetEdge(id StateID, sym Symbol, output Word, target StateID) {
	if output == nil {
		output = Word{}
	}
	t.states[id].next[sym] = Edge{Output: output, Target: target}
}

// DeleteEdge removes the edge leaving id on sym, if any.
func (t *Transducer) DeleteEdge(id StateID, sym Symbol) {
	delete(t.states[id].next, sym)
}

// Symbols returns the symbols with an outgoing edge from id, ordered by their
// rank in the input alphabet. Symbols outside the alphabet sort last.
func (t *Transducer) Symbols(id StateID) []Symbol {
	syms := make([]Symbol, 0, len(t.states[id].next))
	for s := range t.states[id].next {
		syms = append(syms, s)
	}
	t.sortSymbols(syms)
	return syms
}

func (t *Transducer) sortSymbols(syms []Symbol) {
	rank := t.InputAlphabet.Set()
	slices.SortFunc(syms, func(a, b Symbol) int {
		ra, okA := rank[a]
		rb, okB := rank[b]
		switch {
		case okA && okB:
			return cmp.Compare(ra, rb)
		case okA:
			return -1
		case okB:
			return 1
		}
		return cmp.Compare(a, b)
	})
}

// Remove drops a state and all of its edges. Edges pointing to it are left
// untouched; callers must redirect them first.
func (t *Transducer) Remove(id StateID) {
	t.states[id] = state{}
}

// States returns the live states in ascending id order.
func (t *Transducer) States() []StateID {
	ids := make([]StateID, 0, len(t.states))
	for i := range t.states {
		if t.states[i].alive {
			ids = append(ids, StateID(i))
		}
	}
	return ids
}

// NumStates returns the number of live states.
func (t *Transducer) NumStates() int {
	n := 0
	for i := range t.states {
		if t.states[i].alive {
			n++
		}
	}
	return n
}

// Clone returns a deep copy sharing no maps, slices or words with t.
func (t *Transducer) Clone() *Transducer {
	c := &Transducer{
		InputAlphabet:  slices.Clone(t.InputAlphabet),
		OutputAlphabet: slices.Clone(t.OutputAlphabet),
		InitialOutput:  t.InitialOutput.Clone(),
		initial:        t.initial,
		states:         make([]state, len(t.states)),
	}
	for i, s := range t.states {
		if !s.alive {
			continue
		}
		next := make(map[Symbol]Edge, len(s.next))
		for sym, e := range s.next {
			next[sym] = Edge{Output: e.Output.Clone(), Target: e.Target}
		}
		c.states[i] = state{
			label: s.label.Clone(),
			final: s.final.clone(),
			next:  next,
			alive: true,
		}
	}
	return c
}

// Restore overwrites t with the contents of snapshot. The snapshot must not
// be used afterwards.
func (t *Transducer) Restore(snapshot *Transducer) {
	*t = *snapshot
}

// Compact drops states unreachable from the initial state and renumbers the
// rest breadth-first, visiting edges in alphabet order.
func (t *Transducer) Compact() {
	remap := map[StateID]StateID{t.initial: 0}
	order := []StateID{t.initial}
	for i := 0; i < len(order); i++ {
		for _, sym := range t.Symbols(order[i]) {
			target := t.states[order[i]].next[sym].Target
			if _, seen := remap[target]; !seen {
				remap[target] = StateID(len(order))
				order = append(order, target)
			}
		}
	}

	states := make([]state, len(order))
	for newID, oldID := range order {
		old := t.states[oldID]
		next := make(map[Symbol]Edge, len(old.next))
		for sym, e := range old.next {
			next[sym] = Edge{Output: e.Output, Target: remap[e.Target]}
		}
		states[newID] = state{label: old.label, final: old.final, next: next, alive: true}
	}
	t.states = states
	t.initial = 0
}

// Apply rewrites w. It walks one edge per symbol from the initial state,
// emitting InitialOutput, each edge output and, if defined, the final output
// of the state reached. Apply never modifies the transducer.
func (t *Transducer) Apply(w Word) (Word, error) {
	if t == nil || len(t.states) == 0 || !t.Has(t.initial) {
		return nil, ErrUnconstructedTransducer
	}

	result := t.InitialOutput.Clone()
	if result == nil {
		result = Word{}
	}
	current := t.initial
	for i, sym := range w {
		e, ok := t.states[current].next[sym]
		if !ok {
			return nil, &UnrecognizedInputError{Input: w.Clone(), Position: i, Symbol: sym}
		}
		result = append(result, e.Output...)
		current = e.Target
	}

	if fw, ok := t.states[current].final.Word(); ok {
		result = append(result, fw...)
	}
	return result, nil
}

// Trace returns the states visited while reading w, starting with the
// initial state. On an unrecognized symbol it returns the states visited so
// far together with an *UnrecognizedInputError.
func (t *Transducer) Trace(w Word) ([]StateID, error) {
	if t == nil || len(t.states) == 0 || !t.Has(t.initial) {
		return nil, ErrUnconstructedTransducer
	}
	path := []StateID{t.initial}
	current := t.initial
	for i, sym := range w {
		e, ok := t.states[current].next[sym]
		if !ok {
			return path, &UnrecognizedInputError{Input: w.Clone(), Position: i, Symbol: sym}
		}
		current = e.Target
		path = append(path, current)
	}
	return path, nil
}

// Transitions lists every edge of every live state, ordered by source state
// and then by symbol rank.
func (t *Transducer) Transitions() []Transition {
	var out []Transition
	for _, id := range t.States() {
		for _, sym := range t.Symbols(id) {
			e := t.states[id].next[sym]
			out = append(out, Transition{From: id, Symbol: sym, Output: e.Output, To: e.Target})
		}
	}
	return out
}

// String prints states, transitions and state outputs.
func (t *Transducer) String() string {
	var sb strings.Builder
	ids := t.States()

	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = fmt.Sprintf("%d:%q", id, t.Label(id).String())
	}
	fmt.Fprintf(&sb, "States: [%s]\n", strings.Join(labels, " "))

	edges := t.Transitions()
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = fmt.Sprintf("(%d, %s, %q, %d)", e.From, e.Symbol, e.Output.String(), e.To)
	}
	fmt.Fprintf(&sb, "Transitions: [%s]\n", strings.Join(parts, " "))

	finals := make([]string, len(ids))
	for i, id := range ids {
		finals[i] = fmt.Sprintf("%d:%s", id, t.Final(id))
	}
	fmt.Fprintf(&sb, "State outputs: {%s}\n", strings.Join(finals, " "))
	if len(t.InitialOutput) > 0 {
		fmt.Fprintf(&sb, "Initial output: %q\n", t.InitialOutput.String())
	}
	return sb.String()
}
