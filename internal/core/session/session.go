// Package session implements the labeling progression state machine
//
// A Machine walks a fixed number of paragraphs. It starts ACTIVE at cursor 0,
// advances by exactly one on each accepted submission and ends COMPLETE when
// the cursor reaches the paragraph count or the annotator terminates early.
// A persist failure ends it FAILED. Terminal phases accept nothing.
//
// The Machine is not safe for concurrent use; callers serialise access.
package session

import (
	stderrs "errors"

	"labelit/internal/core/annotate"
	perr "labelit/internal/platform/errors"
)

// Phase is the machine state
type Phase uint8

const (
	// PhaseActive means the paragraph at the cursor is awaiting a submission
	PhaseActive Phase = iota

	// PhaseComplete is terminal, all paragraphs were submitted or the annotator stopped
	PhaseComplete

	// PhaseFailed is terminal, a submission could not be persisted
	PhaseFailed
)

// String returns the upper case phase name
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "ACTIVE"
	case PhaseComplete:
		return "COMPLETE"
	case PhaseFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the phase name in JSON payloads
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Terminal reports whether no further transitions are possible
func (p Phase) Terminal() bool { return p != PhaseActive }

// Reason records why the machine left ACTIVE
type Reason string

const (
	// ReasonNone is set while ACTIVE
	ReasonNone Reason = ""
	// ReasonExhausted means every paragraph was submitted
	ReasonExhausted Reason = "exhausted"
	// ReasonTerminated means the annotator pressed done
	ReasonTerminated Reason = "terminated"
	// ReasonPersistFailed means a store write failed
	ReasonPersistFailed Reason = "persist_failed"
)

var (
	// ErrStale is returned when a submission does not target the paragraph at the cursor
	ErrStale = perr.New(perr.ErrorCodeConflict, "submission does not match the current item")

	// ErrClosed is returned for any event after the machine reached a terminal phase
	ErrClosed = perr.New(perr.ErrorCodeConflict, "session is closed")
)

// Entry is one accumulated submission in submission order
type Entry struct {
	Target  string `json:"target"`
	Content string `json:"content"`
}

// State is a point in time copy of the machine
type State struct {
	Cursor      int     `json:"cursor"`
	Total       int     `json:"total"`
	Phase       Phase   `json:"phase"`
	Reason      Reason  `json:"reason,omitempty"`
	Accumulated []Entry `json:"accumulated"`
}

// Submission is one annotator submit for the paragraph at Index
// Display is the on screen text that is accumulated, Annotation is what gets persisted
type Submission struct {
	Index      int
	Display    string
	Annotation annotate.Annotation
}

// Persist writes an annotation durably and returns only after it committed
type Persist func(annotate.Annotation) error

// Hook runs once when the machine enters COMPLETE
type Hook func(State) error

// Machine is the session progression state machine
type Machine struct {
	total  int
	cursor int
	phase  Phase
	reason Reason
	acc    []Entry

	hooks []Hook
	fired bool
}

// New returns an ACTIVE machine at cursor 0 for total paragraphs
func New(total int, hooks ...Hook) *Machine {
	if total < 0 {
		total = 0
	}
	return &Machine{
		total: total,
		phase: PhaseActive,
		acc:   make([]Entry, 0, total),
		hooks: hooks,
	}
}

// OnComplete registers a hook that runs once on entering COMPLETE
func (m *Machine) OnComplete(h Hook) {
	if h != nil {
		m.hooks = append(m.hooks, h)
	}
}

// Phase returns the current phase without checking for exhaustion
func (m *Machine) Phase() Phase { return m.phase }

// Check applies the exhaustion transition if it is due and returns the phase
// an empty corpus completes on the first Check
func (m *Machine) Check() (Phase, error) {
	if m.phase == PhaseActive && m.cursor >= m.total {
		return m.complete(ReasonExhausted)
	}
	return m.phase, nil
}

// Current returns the index of the paragraph to present, ok is false once terminal
func (m *Machine) Current() (int, bool) {
	if m.phase != PhaseActive || m.cursor >= m.total {
		return m.cursor, false
	}
	return m.cursor, true
}

// Submit persists s and advances the cursor
// a stale index or a terminal phase is rejected before persist is called
func (m *Machine) Submit(s Submission, persist Persist) (Phase, error) {
	if ph, err := m.Check(); ph != PhaseActive {
		if err != nil {
			return ph, stderrs.Join(ErrClosed, err)
		}
		return ph, ErrClosed
	}
	if s.Index != m.cursor {
		return m.phase, ErrStale
	}
	if persist == nil {
		return m.phase, perr.Internalf("session: nil persist")
	}

	if err := persist(s.Annotation); err != nil {
		m.phase = PhaseFailed
		m.reason = ReasonPersistFailed
		return m.phase, err
	}

	m.acc = append(m.acc, Entry{Target: s.Annotation.Target, Content: s.Display})
	m.cursor++
	if m.cursor == m.total {
		return m.complete(ReasonExhausted)
	}
	return m.phase, nil
}

// Terminate stops the session early without writing the current paragraph
func (m *Machine) Terminate() (Phase, error) {
	if m.phase != PhaseActive {
		return m.phase, ErrClosed
	}
	return m.complete(ReasonTerminated)
}

// Snapshot copies the current state
func (m *Machine) Snapshot() State {
	acc := make([]Entry, len(m.acc))
	copy(acc, m.acc)
	return State{
		Cursor:      m.cursor,
		Total:       m.total,
		Phase:       m.phase,
		Reason:      m.reason,
		Accumulated: acc,
	}
}

// complete moves ACTIVE to COMPLETE and fires hooks exactly once
// hook errors are joined and returned, the phase stays COMPLETE
func (m *Machine) complete(r Reason) (Phase, error) {
	m.phase = PhaseComplete
	m.reason = r
	if m.fired {
		return m.phase, nil
	}
	m.fired = true

	st := m.Snapshot()
	var errs []error
	for _, h := range m.hooks {
		if err := h(st); err != nil {
			errs = append(errs, err)
		}
	}
	return m.phase, stderrs.Join(errs...)
}
