package controller

import "github.com/milk9111/platformer/simulation"

// JumpState is the phase of the avatar's jump cycle.
type JumpState uint8

const (
	Grounded JumpState = iota
	PrepareToJump
	Jumping
	InFlight
	Landed
)

func (s JumpState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case PrepareToJump:
		return "prepare_to_jump"
	case Jumping:
		return "jumping"
	case InFlight:
		return "in_flight"
	case Landed:
		return "landed"
	default:
		return "unknown"
	}
}

// JumpMachine owns the jump state. The only writer of the state is the
// machine itself; callers feed it intents and the grounded signal.
type JumpMachine struct {
	state    JumpState
	stopJump bool
}

func NewJumpMachine() *JumpMachine {
	return &JumpMachine{state: Grounded}
}

// State returns the active jump state.
func (m *JumpMachine) State() JumpState {
	return m.state
}

// StopJump reports whether a jump release is waiting to be consumed.
func (m *JumpMachine) StopJump() bool {
	return m.stopJump
}

// RequestJump moves Grounded to PrepareToJump. Requests in any other state
// are ignored.
func (m *JumpMachine) RequestJump() bool {
	if m.state != Grounded {
		return false
	}
	m.state = PrepareToJump
	return true
}

// ReleaseJump flags the current jump to be cut short. It never changes the
// jump state.
func (m *JumpMachine) ReleaseJump() {
	m.stopJump = true
}

// ConsumeStopJump returns the stop flag and clears it.
func (m *JumpMachine) ConsumeStopJump() bool {
	stop := m.stopJump
	m.stopJump = false
	return stop
}

// Advance runs one tick of the jump cycle. It must be called exactly once per
// tick, before velocity resolution. jumpRequested is true only on the tick
// PrepareToJump becomes Jumping; evt is set when the tick crosses takeoff or
// touchdown.
func (m *JumpMachine) Advance(groundedNow bool) (jumpRequested bool, evt simulation.Kind, ok bool) {
	switch m.state {
	case PrepareToJump:
		m.state = Jumping
		m.stopJump = false
		return true, simulation.KindNone, false
	case Jumping:
		if !groundedNow {
			m.state = InFlight
			return false, simulation.KindJumped, true
		}
	case InFlight:
		if groundedNow {
			m.state = Landed
			return false, simulation.KindLanded, true
		}
	case Landed:
		m.state = Grounded
	}
	return false, simulation.KindNone, false
}

// Reset puts the machine back on the ground, e.g. after a respawn.
func (m *JumpMachine) Reset() {
	m.state = Grounded
	m.stopJump = false
}
