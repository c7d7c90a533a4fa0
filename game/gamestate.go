package game

import (
	"github.com/memmaker/voxelpeers/engine/util"
)

type StateKind int

const (
	StateNone StateKind = iota
	StateMenu
	StatePlay
)

func (k StateKind) String() string {
	switch k {
	case StateMenu:
		return "Menu"
	case StatePlay:
		return "Play"
	}
	return "None"
}

// StateHandlers are the hooks of one state. Nil hooks are skipped.
type StateHandlers struct {
	OnEnter func()
	OnExit  func()
	Update  func(dt float32, in Input)
	Render  func()
}

// Transitions lists which states may follow each state.
var Transitions = map[StateKind][]StateKind{
	StateNone: {StateMenu, StatePlay},
	StateMenu: {StatePlay},
	StatePlay: {StateMenu},
}

// StateMachine switches between a fixed set of states. Requests are queued
// and only take effect in ApplyPending, which the frame loop calls once at
// the start of every frame.
type StateMachine struct {
	handlers map[StateKind]StateHandlers
	current  StateKind
	pending  StateKind
}

func NewStateMachine(handlers map[StateKind]StateHandlers) *StateMachine {
	return &StateMachine{handlers: handlers}
}

func (m *StateMachine) Current() StateKind {
	return m.current
}

// Request queues a transition. A later request in the same frame replaces an
// earlier one.
func (m *StateMachine) Request(next StateKind) {
	util.LogGameDebug("[StateMachine] requested %s", next)
	m.pending = next
}

func (m *StateMachine) HasPending() bool {
	return m.pending != StateNone
}

// ApplyPending performs the queued transition, if it is allowed from the
// current state. It reports whether the state changed.
func (m *StateMachine) ApplyPending() bool {
	next := m.pending
	m.pending = StateNone
	if next == StateNone || next == m.current {
		return false
	}
	if !isAllowed(m.current, next) {
		util.LogGameError("[StateMachine] transition %s -> %s not allowed", m.current, next)
		return false
	}
	if h := m.handlers[m.current]; h.OnExit != nil {
		h.OnExit()
	}
	util.LogGameInfo("[StateMachine] %s -> %s", m.current, next)
	m.current = next
	if h := m.handlers[m.current]; h.OnEnter != nil {
		h.OnEnter()
	}
	return true
}

func (m *StateMachine) Update(dt float32, in Input) {
	if h := m.handlers[m.current]; h.Update != nil {
		h.Update(dt, in)
	}
}

func (m *StateMachine) Render() {
	if h := m.handlers[m.current]; h.Render != nil {
		h.Render()
	}
}

func isAllowed(from, to StateKind) bool {
	for _, candidate := range Transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
