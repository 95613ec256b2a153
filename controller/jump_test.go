package controller

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/simulation"
)

func TestJumpMachineTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      JumpState
		grounded  bool
		want      JumpState
		wantJump  bool
		wantEvent simulation.Kind
	}{
		{"grounded_stays", Grounded, true, Grounded, false, simulation.KindNone},
		{"grounded_airborne_stays", Grounded, false, Grounded, false, simulation.KindNone},
		{"prepare_to_jumping", PrepareToJump, true, Jumping, true, simulation.KindNone},
		{"prepare_to_jumping_airborne", PrepareToJump, false, Jumping, true, simulation.KindNone},
		{"jumping_waits_for_takeoff", Jumping, true, Jumping, false, simulation.KindNone},
		{"jumping_takeoff", Jumping, false, InFlight, false, simulation.KindJumped},
		{"in_flight_stays", InFlight, false, InFlight, false, simulation.KindNone},
		{"in_flight_lands", InFlight, true, Landed, false, simulation.KindLanded},
		{"landed_to_grounded", Landed, false, Grounded, false, simulation.KindNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &JumpMachine{state: tc.from}
			jump, evt, ok := m.Advance(tc.grounded)
			assert.Equal(t, tc.want, m.State())
			assert.Equal(t, tc.wantJump, jump)
			assert.Equal(t, tc.wantEvent, evt)
			assert.Equal(t, tc.wantEvent != simulation.KindNone, ok)
		})
	}
}

func TestJumpMachineRequestOnlyFromGround(t *testing.T) {
	for _, s := range []JumpState{PrepareToJump, Jumping, InFlight, Landed} {
		m := &JumpMachine{state: s}
		assert.False(t, m.RequestJump(), s.String())
		assert.Equal(t, s, m.State())
	}

	m := NewJumpMachine()
	assert.True(t, m.RequestJump())
	assert.Equal(t, PrepareToJump, m.State())
}

func TestJumpMachineReleaseKeepsState(t *testing.T) {
	m := &JumpMachine{state: InFlight}
	m.ReleaseJump()
	assert.Equal(t, InFlight, m.State())
	assert.True(t, m.StopJump())
	assert.True(t, m.ConsumeStopJump())
	assert.False(t, m.StopJump())
	assert.False(t, m.ConsumeStopJump())
}

func TestJumpMachinePrepareClearsStop(t *testing.T) {
	m := NewJumpMachine()
	m.ReleaseJump()
	require.True(t, m.RequestJump())
	m.Advance(true)
	assert.False(t, m.StopJump())
}

func TestJumpMachineStaysJumpingWhileGrounded(t *testing.T) {
	m := &JumpMachine{state: Jumping}
	for i := 0; i < 1000; i++ {
		_, evt, ok := m.Advance(true)
		require.False(t, ok)
		require.Equal(t, simulation.KindNone, evt)
	}
	assert.Equal(t, Jumping, m.State())
}

func TestJumpMachineInFlightNeverLandsInAir(t *testing.T) {
	m := &JumpMachine{state: InFlight}
	for i := 0; i < 1000; i++ {
		_, _, ok := m.Advance(false)
		require.False(t, ok)
	}
	assert.Equal(t, InFlight, m.State())
}

// Random grounded signals and jump requests only ever walk the jump cycle.
func TestJumpMachineOnlyCycleEdges(t *testing.T) {
	next := map[JumpState]JumpState{
		Grounded:      PrepareToJump,
		PrepareToJump: Jumping,
		Jumping:       InFlight,
		InFlight:      Landed,
		Landed:        Grounded,
	}

	rng := rand.New(rand.NewSource(7))
	m := NewJumpMachine()
	for i := 0; i < 10000; i++ {
		before := m.State()
		if rng.Intn(3) == 0 {
			m.RequestJump()
		}
		if rng.Intn(4) == 0 {
			m.ReleaseJump()
		}
		mid := m.State()
		if mid != before {
			require.Equal(t, next[before], mid, "request edge from %s", before)
		}
		m.Advance(rng.Intn(2) == 0)
		after := m.State()
		if after != mid {
			require.Equal(t, next[mid], after, "advance edge from %s", mid)
		}
	}
}

func TestJumpStateString(t *testing.T) {
	assert.Equal(t, "grounded", Grounded.String())
	assert.Equal(t, "prepare_to_jump", PrepareToJump.String())
	assert.Equal(t, "jumping", Jumping.String())
	assert.Equal(t, "in_flight", InFlight.String())
	assert.Equal(t, "landed", Landed.String())
	assert.Equal(t, "unknown", JumpState(42).String())
}
