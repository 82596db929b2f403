package draft

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Session states. Untyped so they convert to statekit.StateID.
const (
	StateIdle     = "idle"
	StateDrafting = "drafting"
	StateDrafted  = "drafted"
	StateFailed   = "failed"
)

// Session events.
const (
	EventSubmit  = "submit"
	EventSucceed = "succeed"
	EventFail    = "fail"
	EventEdit    = "edit"
)

// ErrDraftInFlight is returned when a draft is requested while one is running.
var ErrDraftInFlight = errors.New("a draft is already in flight")

type sessionContext struct{}

// SessionMachine tracks whether a composer may submit. It replaces the
// loading flag a UI would otherwise hold.
type SessionMachine struct {
	interpreter *statekit.Interpreter[sessionContext]
}

func NewSessionMachine() (*SessionMachine, error) {
	builder := statekit.NewMachine[sessionContext]("draft-session").
		WithInitial(statekit.StateID(StateIdle)).
		WithContext(sessionContext{})

	builder.State(StateIdle).
		On(EventSubmit).Target(StateDrafting).
		Done()

	builder.State(StateDrafting).
		On(EventSucceed).Target(StateDrafted).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StateDrafted).
		On(EventSubmit).Target(StateDrafting).
		On(EventEdit).Target(StateIdle).
		Done()

	builder.State(StateFailed).
		On(EventSubmit).Target(StateDrafting).
		On(EventEdit).Target(StateIdle).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build session machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &SessionMachine{interpreter: interpreter}, nil
}

// Transition sends event and fails if the state did not change.
func (sm *SessionMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if sm.Current() != before {
		return nil
	}
	if before == StateDrafting && event == EventSubmit {
		return ErrDraftInFlight
	}
	return fmt.Errorf("event %q is not allowed in state %q", event, before)
}

func (sm *SessionMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// Busy reports whether a draft is in flight.
func (sm *SessionMachine) Busy() bool {
	return sm.Current() == StateDrafting
}
