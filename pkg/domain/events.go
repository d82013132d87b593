package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventPhase        EventType = "phase"
	EventMergeAttempt EventType = "merge_attempt"
	EventMerge        EventType = "merge"
	EventRollback     EventType = "rollback"
	EventPromote      EventType = "promote"
)

// Phase names a learning stage.
type Phase string

const (
	PhaseTree    Phase = "tree"
	PhaseOnward  Phase = "onward"
	PhaseMerge   Phase = "merge"
	PhaseCompact Phase = "compact"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// PhaseEvent is emitted when a learning stage completes.
type PhaseEvent struct {
	EventBase
	Phase    Phase         `json:"phase"`
	States   int           `json:"states"`
	Duration time.Duration `json:"duration"`
}

// MergeEvent describes one step of the merge loop. Red is the candidate
// (kept) state and Blue the state being folded into it. Transducer is the
// working copy at the time of the event; hooks must not modify it.
type MergeEvent struct {
	EventBase
	Red        StateID     `json:"red"`
	Blue       StateID     `json:"blue"`
	Reason     string      `json:"reason,omitempty"`
	Transducer *Transducer `json:"-"`
}

// LifecycleHooks defines callbacks for learner observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnPhase        func(*PhaseEvent)
	OnMergeAttempt func(*MergeEvent)
	OnMerge        func(*MergeEvent)
	OnRollback     func(*MergeEvent)
	OnPromote      func(*MergeEvent)
}

// Combine returns hooks that call every non-nil hook of h and others in order.
func (h LifecycleHooks) Combine(others ...LifecycleHooks) LifecycleHooks {
	all := append([]LifecycleHooks{h}, others...)
	return LifecycleHooks{
		OnPhase: func(e *PhaseEvent) {
			for _, x := range all {
				if x.OnPhase != nil {
					x.OnPhase(e)
				}
			}
		},
		OnMergeAttempt: fanOut(all, func(x LifecycleHooks) func(*MergeEvent) { return x.OnMergeAttempt }),
		OnMerge:        fanOut(all, func(x LifecycleHooks) func(*MergeEvent) { return x.OnMerge }),
		OnRollback:     fanOut(all, func(x LifecycleHooks) func(*MergeEvent) { return x.OnRollback }),
		OnPromote:      fanOut(all, func(x LifecycleHooks) func(*MergeEvent) { return x.OnPromote }),
	}
}

func fanOut(all []LifecycleHooks, pick func(LifecycleHooks) func(*MergeEvent)) func(*MergeEvent) {
	return func(e *MergeEvent) {
		for _, x := range all {
			if fn := pick(x); fn != nil {
				fn(e)
			}
		}
	}
}
