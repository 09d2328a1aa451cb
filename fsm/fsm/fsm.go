package fsm

import (
	"fmt"
	"sync"
)

// State describes a position in the machine lifecycle.
type State string

func (s State) String() string {
	return string(s)
}

// Event triggers a transition between two states.
type Event string

func (e Event) String() string {
	return string(e)
}

// EventDesc wires one event to its source states and destination state.
// An event listed with several source states produces one transition per
// source, all landing in the same destination.
type EventDesc struct {
	Name Event

	SrcState []State

	DstState State
}

type trKey struct {
	source State
	event  Event
}

// FSM is a fixed transition table plus a current position. The table is
// immutable after construction, the position is guarded by a mutex so a
// single machine instance can be driven from concurrent handlers.
type FSM struct {
	name string

	initialState State

	currentState State

	transitions map[trKey]State

	// States with no outgoing transitions.
	finStates map[State]bool

	stateMu sync.RWMutex
}

// MustNewFSM constructs a machine and panics on wiring mistakes. Machines
// are package-level singletons assembled at init time, so a bad table is a
// programming error and must fail loudly.
func MustNewFSM(machineName string, initialState State, events []EventDesc) *FSM {
	if machineName == "" {
		panic("machine name cannot be empty")
	}

	if initialState == "" {
		panic("initial state cannot be empty")
	}

	if len(events) == 0 {
		panic("cannot init fsm with empty events")
	}

	f := &FSM{
		name:         machineName,
		initialState: initialState,
		currentState: initialState,
		transitions:  make(map[trKey]State),
		finStates:    make(map[State]bool),
	}

	allSources := make(map[State]bool)
	allStates := make(map[State]bool)

	for _, event := range events {
		if event.Name == "" {
			panic("event name cannot be empty")
		}

		if event.DstState == "" {
			panic(fmt.Sprintf("event \"%s\" dst state cannot be empty", event.Name))
		}

		if len(event.SrcState) == 0 {
			panic(fmt.Sprintf("event \"%s\" src states cannot be empty", event.Name))
		}

		allStates[event.DstState] = true

		for _, source := range event.SrcState {
			if source == "" {
				panic(fmt.Sprintf("event \"%s\" src state cannot be empty", event.Name))
			}

			key := trKey{source, event.Name}
			if _, exists := f.transitions[key]; exists {
				panic(fmt.Sprintf("duplicate transition for event \"%s\" from state \"%s\"", event.Name, source))
			}

			f.transitions[key] = event.DstState
			allSources[source] = true
			allStates[source] = true
		}
	}

	if !allStates[initialState] {
		panic(fmt.Sprintf("initial state \"%s\" does not take part in any transition", initialState))
	}

	for state := range allStates {
		if !allSources[state] {
			f.finStates[state] = true
		}
	}

	if len(f.finStates) == 0 {
		panic("fsm has no final states, transition table loops forever")
	}

	return f
}

// MustCopyWithState returns an independent copy of the machine positioned at
// the given state, or the initial state when state is empty. Used to resume a
// persisted lifecycle. Panics on a state the table does not know.
func (f *FSM) MustCopyWithState(state State) *FSM {
	f.stateMu.RLock()
	defer f.stateMu.RUnlock()

	cp := &FSM{
		name:         f.name,
		initialState: f.initialState,
		currentState: f.initialState,
		transitions:  f.transitions,
		finStates:    f.finStates,
	}

	if state == "" {
		return cp
	}

	if !f.StateExists(state) {
		panic(fmt.Sprintf("cannot set machine \"%s\" to unknown state \"%s\"", f.name, state))
	}

	cp.currentState = state

	return cp
}

// Do applies an event to the current state. On success the machine moves to
// the destination state and returns it. On an event the current state has no
// transition for, the position is unchanged and an error is returned.
func (f *FSM) Do(event Event) (State, error) {
	f.stateMu.Lock()
	defer f.stateMu.Unlock()

	dstState, ok := f.transitions[trKey{f.currentState, event}]
	if !ok {
		return f.currentState, fmt.Errorf(
			"cannot process event \"%s\" from state \"%s\"", event, f.currentState,
		)
	}

	f.currentState = dstState

	return f.currentState, nil
}

// Can reports whether the event has a transition from the current state.
func (f *FSM) Can(event Event) bool {
	f.stateMu.RLock()
	defer f.stateMu.RUnlock()

	_, ok := f.transitions[trKey{f.currentState, event}]
	return ok
}

func (f *FSM) Name() string {
	return f.name
}

func (f *FSM) InitialState() State {
	return f.initialState
}

func (f *FSM) State() State {
	f.stateMu.RLock()
	defer f.stateMu.RUnlock()

	return f.currentState
}

// StateExists reports whether the state takes part in any transition.
func (f *FSM) StateExists(state State) bool {
	for key, dst := range f.transitions {
		if key.source == state || dst == state {
			return true
		}
	}

	return false
}

// IsFinState reports whether the state has no outgoing transitions.
func (f *FSM) IsFinState(state State) bool {
	return f.finStates[state]
}

// EventsList returns all events from the transition table, deduplicated,
// in no particular order.
func (f *FSM) EventsList() []Event {
	seen := make(map[Event]bool)
	var events []Event

	for key := range f.transitions {
		if !seen[key.event] {
			seen[key.event] = true
			events = append(events, key.event)
		}
	}

	return events
}

// StatesList returns all states from the transition table, deduplicated,
// in no particular order.
func (f *FSM) StatesList() []State {
	seen := make(map[State]bool)
	var states []State

	for key, dst := range f.transitions {
		if !seen[key.source] {
			seen[key.source] = true
			states = append(states, key.source)
		}
		if !seen[dst] {
			seen[dst] = true
			states = append(states, dst)
		}
	}

	return states
}
