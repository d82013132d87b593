package learner

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/words"
)

// errIncompatible signals a failed merge attempt. It never leaves the merger:
// the attempt is rolled back and the next candidate is tried.
var errIncompatible = errors.New("incompatible merge")

// pair is a (kept, absorbed) couple waiting to be folded together.
type pair struct {
	kept     domain.StateID
	absorbed domain.StateID
}

type mergeStats struct {
	attempts   int
	merges     int
	rollbacks  int
	promotions int
}

// merger runs the red/blue state merging loop over an onward tree transducer.
//
// Red states are final members of the result. Blue states are the non-red
// targets of red edges; each is still the root of an untouched subtree of
// the original tree. The blue state with the smallest id is always processed
// next, which is the shortest-prefix-first order because BuildTree assigns
// ids in length-lex order.
type merger struct {
	t      *domain.Transducer
	red    []domain.StateID
	isRed  map[domain.StateID]bool
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	stats  mergeStats
}

func newMerger(t *domain.Transducer, logger *slog.Logger, hooks domain.LifecycleHooks) *merger {
	return &merger{
		t:      t,
		isRed:  make(map[domain.StateID]bool),
		logger: logger,
		hooks:  hooks,
	}
}

func (m *merger) run() error {
	m.red = append(m.red, m.t.Initial())
	m.isRed[m.t.Initial()] = true

	for {
		blue, ok := m.nextBlue()
		if !ok {
			return nil
		}

		merged := false
		for _, red := range m.red {
			m.stats.attempts++
			m.emit(m.hooks.OnMergeAttempt, domain.EventMergeAttempt, red, blue, "")

			snapshot := m.t.Clone()
			err := m.merge(red, blue)
			if err == nil {
				m.stats.merges++
				m.logger.Debug("merged state", "blue", blue, "red", red)
				m.emit(m.hooks.OnMerge, domain.EventMerge, red, blue, "")
				merged = true
				break
			}
			if !errors.Is(err, errIncompatible) {
				return err
			}

			m.t.Restore(snapshot)
			m.stats.rollbacks++
			m.logger.Debug("merge rolled back", "blue", blue, "red", red, "reason", err.Error())
			m.emit(m.hooks.OnRollback, domain.EventRollback, red, blue, err.Error())
		}

		if !merged {
			m.red = append(m.red, blue)
			m.isRed[blue] = true
			m.stats.promotions++
			m.logger.Debug("promoted state", "blue", blue, "red_states", len(m.red))
			m.emit(m.hooks.OnPromote, domain.EventPromote, domain.NoState, blue, "")
		}
	}
}

// nextBlue returns the smallest non-red target of a red edge.
func (m *merger) nextBlue() (domain.StateID, bool) {
	best := domain.NoState
	for _, r := range m.red {
		for _, sym := range m.t.Symbols(r) {
			e, _ := m.t.Edge(r, sym)
			if m.isRed[e.Target] {
				continue
			}
			if best == domain.NoState || e.Target < best {
				best = e.Target
			}
		}
	}
	return best, best != domain.NoState
}

// merge redirects the single incoming edge of blue to red and folds the
// subtree of blue into red.
func (m *merger) merge(red, blue domain.StateID) error {
	from, sym, ok := m.incomingEdge(blue)
	if !ok {
		return fmt.Errorf("merge: blue state %d has no incoming edge from a red state", blue)
	}
	e, _ := m.t.Edge(from, sym)
	m.t.SetEdge(from, sym, e.Output, red)
	return m.fold(red, blue)
}

func (m *merger) incomingEdge(blue domain.StateID) (domain.StateID, domain.Symbol, bool) {
	for _, r := range m.red {
		for _, sym := range m.t.Symbols(r) {
			if e, _ := m.t.Edge(r, sym); e.Target == blue {
				return r, sym, true
			}
		}
	}
	return domain.NoState, "", false
}

// fold merges absorbed into kept, recursively along common symbols, using an
// explicit stack. Every absorbed state is removed once its edges have been
// reconciled or adopted by the kept side.
func (m *merger) fold(kept, absorbed domain.StateID) error {
	stack := []pair{{kept: kept, absorbed: absorbed}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.kept == p.absorbed {
			continue
		}

		if err := m.foldFinal(p.kept, p.absorbed); err != nil {
			return err
		}

		for _, sym := range m.t.Symbols(p.absorbed) {
			eb, _ := m.t.Edge(p.absorbed, sym)
			ea, ok := m.t.Edge(p.kept, sym)
			if !ok {
				m.t.SetEdge(p.kept, sym, eb.Output, eb.Target)
				continue
			}
			if err := m.pushback(p.kept, p.absorbed, sym, ea, eb); err != nil {
				return err
			}
			stack = append(stack, pair{kept: ea.Target, absorbed: eb.Target})
		}
		m.t.Remove(p.absorbed)
	}
	return nil
}

// foldFinal reconciles the final outputs of two states being identified.
func (m *merger) foldFinal(kept, absorbed domain.StateID) error {
	fb := m.t.Final(absorbed)
	if !fb.IsDefined() {
		return nil
	}
	fa := m.t.Final(kept)
	if !fa.IsDefined() {
		m.t.SetFinal(kept, fb)
		return nil
	}
	if !fa.Equal(fb) {
		return fmt.Errorf("%w: states %d and %d have final outputs %q and %q",
			errIncompatible, kept, absorbed, fa.String(), fb.String())
	}
	return nil
}

// pushback makes the outputs of the two edges on sym equal to their longest
// common prefix, pushing each surplus into the edge's target. A surplus on
// the kept side cannot be pushed into a red state, because red states are
// shared by paths outside the folded subtree.
func (m *merger) pushback(kept, absorbed domain.StateID, sym domain.Symbol, ea, eb domain.Edge) error {
	u := words.CommonPrefix(ea.Output, eb.Output)

	ra, err := words.TrimPrefix(ea.Output, u)
	if err != nil {
		return err
	}
	if len(ra) > 0 {
		if m.isRed[ea.Target] {
			return fmt.Errorf("%w: output %q on %q from state %d cannot be delayed into red state %d",
				errIncompatible, ra.String(), string(sym), kept, ea.Target)
		}
		m.pushInto(ea.Target, ra)
		m.t.SetEdge(kept, sym, u, ea.Target)
	}

	rb, err := words.TrimPrefix(eb.Output, u)
	if err != nil {
		return err
	}
	if len(rb) > 0 {
		m.pushInto(eb.Target, rb)
		m.t.SetEdge(absorbed, sym, u, eb.Target)
	}
	return nil
}

// pushInto prepends w to the final output and every outgoing edge of q.
// q must have a single incoming edge, so no other path observes the change.
func (m *merger) pushInto(q domain.StateID, w domain.Word) {
	m.t.SetFinal(q, m.t.Final(q).Prepend(w))
	for _, sym := range m.t.Symbols(q) {
		e, _ := m.t.Edge(q, sym)
		m.t.SetEdge(q, sym, w.Concat(e.Output), e.Target)
	}
}

func (m *merger) emit(hook func(*domain.MergeEvent), typ domain.EventType, red, blue domain.StateID, reason string) {
	if hook == nil {
		return
	}
	hook(&domain.MergeEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: typ},
		Red:        red,
		Blue:       blue,
		Reason:     reason,
		Transducer: m.t,
	})
}
