// Package match implements the match lifecycle state machine that gates the
// simulation.
package match

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// State is the global match state.
type State uint8

const (
	Loading State = iota
	MainMenu
	GameInit
	InGame
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case MainMenu:
		return "main-menu"
	case GameInit:
		return "game-init"
	case InGame:
		return "in-game"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// ErrInvalidTransition is returned by Request for edges not in the lifecycle.
var ErrInvalidTransition = errors.New("invalid match state transition")

// allowed is the full lifecycle: Loading → MainMenu → GameInit → InGame → MainMenu.
var allowed = map[State]State{
	Loading:  MainMenu,
	MainMenu: GameInit,
	GameInit: InGame,
	InGame:   MainMenu,
}

// CanTransition reports whether from → to is a lifecycle edge.
func CanTransition(from, to State) bool {
	next, ok := allowed[from]
	return ok && next == to
}

// maxChain bounds how many transitions one Apply may perform when enter
// hooks request further transitions (GameInit → InGame).
const maxChain = 4

// Transition is one applied state change.
type Transition struct {
	From, To State
}

// Machine holds the current state and at most one pending request.
// Requests take effect on the next Apply, called once at the start of every
// tick. Not safe for concurrent use.
type Machine struct {
	current    State
	pending    State
	hasPending bool

	onEnter   map[State][]func()
	onExit    map[State][]func()
	observers []func(Transition)
	log       *zap.Logger
}

func NewMachine(log *zap.Logger) *Machine {
	return &Machine{
		current: Loading,
		onEnter: make(map[State][]func()),
		onExit:  make(map[State][]func()),
		log:     log,
	}
}

func (m *Machine) Current() State { return m.current }

// Is reports whether the machine is currently in s.
func (m *Machine) Is(s State) bool { return m.current == s }

// Pending returns the queued next state, if any.
func (m *Machine) Pending() (State, bool) { return m.pending, m.hasPending }

// Request queues a transition from the current state to next. Requesting the
// already pending state is a no-op, so repeated triggers (e.g. a death check
// that sees zero health twice) yield one transition.
func (m *Machine) Request(next State) error {
	if m.hasPending && m.pending == next {
		return nil
	}
	if !CanTransition(m.current, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, next)
	}
	m.pending = next
	m.hasPending = true
	return nil
}

// OnEnter registers fn to run synchronously when s becomes current.
func (m *Machine) OnEnter(s State, fn func()) {
	m.onEnter[s] = append(m.onEnter[s], fn)
}

// OnExit registers fn to run synchronously when s stops being current.
func (m *Machine) OnExit(s State, fn func()) {
	m.onExit[s] = append(m.onExit[s], fn)
}

// Observe registers fn to run after every applied transition.
func (m *Machine) Observe(fn func(Transition)) {
	m.observers = append(m.observers, fn)
}

// Apply performs the pending transition, plus any transitions requested by
// the enter hooks it triggers, and returns what was applied.
func (m *Machine) Apply() []Transition {
	var applied []Transition
	for i := 0; i < maxChain && m.hasPending; i++ {
		next := m.pending
		m.hasPending = false

		tr := Transition{From: m.current, To: next}
		for _, fn := range m.onExit[tr.From] {
			fn()
		}
		m.current = next
		m.log.Info("match state changed",
			zap.Stringer("from", tr.From),
			zap.Stringer("to", tr.To),
		)
		for _, fn := range m.onEnter[tr.To] {
			fn()
		}
		for _, fn := range m.observers {
			fn(tr)
		}
		applied = append(applied, tr)
	}
	return applied
}
