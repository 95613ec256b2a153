package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/simulation"
)

func testModel() prefabs.ModelSpec {
	return prefabs.ModelSpec{JumpModifier: 1, JumpDeceleration: 0.5, Gravity: 9.81, PixelsPerUnit: 32, TickRate: 60}
}

func testOptions(m prefabs.ModelSpec) controller.Options {
	opts := controller.DefaultOptions()
	opts.Config.JumpModifier = m.JumpModifier
	opts.Config.JumpDeceleration = m.JumpDeceleration
	return opts
}

func allEvents(rows []Row) []simulation.Kind {
	var out []simulation.Kind
	for _, r := range rows {
		out = append(out, r.Events...)
	}
	return out
}

func TestReplayScripted(t *testing.T) {
	tr, err := LoadTraceFile("testdata/scripted.yaml")
	require.NoError(t, err)

	m := testModel()
	rows, err := Replay(tr, testOptions(m), m)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	states := make([]controller.JumpState, len(rows))
	for i, r := range rows {
		states[i] = r.State
	}
	assert.Equal(t, []controller.JumpState{
		controller.Grounded,
		controller.Jumping,
		controller.InFlight,
		controller.Landed,
		controller.Grounded,
	}, states)
	assert.InDelta(t, 7.0, rows[1].VelocityY, 1e-9)
	assert.InDelta(t, 6.0, rows[2].VelocityY, 1e-9)
	assert.Equal(t, []simulation.Kind{simulation.KindJumped}, rows[2].Events)
	assert.Equal(t, []simulation.Kind{simulation.KindLanded}, rows[3].Events)
}

func TestReplaySimulatedJump(t *testing.T) {
	tr, err := LoadTraceFile("testdata/jump.yaml")
	require.NoError(t, err)

	m := testModel()
	rows, err := Replay(tr, testOptions(m), m)
	require.NoError(t, err)
	require.Len(t, rows, 5+1+10+1+200)

	assert.Equal(t, []simulation.Kind{simulation.KindJumped, simulation.KindStopJump, simulation.KindLanded}, allEvents(rows))
	assert.Equal(t, controller.Grounded, rows[len(rows)-1].State)
	assert.Zero(t, rows[len(rows)-1].Height)

	// cutting the jump short scales the upward speed
	cut := rows[16]
	require.Equal(t, []simulation.Kind{simulation.KindStopJump}, cut.Events)
	assert.Less(t, cut.VelocityY, rows[15].VelocityY*0.6)
}

func TestReplayDoubleTap(t *testing.T) {
	tr, err := LoadTrace(strings.NewReader(`
ticks:
  - {left_pressed: true, left: true, grounded: true}
  - {grounded: true}
  - {left_pressed: true, left: true, grounded: true}
  - {grounded: true, repeat: 30}
  - {right_pressed: true, grounded: true}
  - {grounded: true, repeat: 30}
`))
	require.NoError(t, err)

	m := testModel()
	rows, err := Replay(tr, testOptions(m), m)
	require.NoError(t, err)

	assert.Equal(t, []simulation.Kind{simulation.KindDoubleTapLeft, simulation.KindSingleTapRight}, allEvents(rows))
	assert.Equal(t, controller.FacingLeft, rows[0].Facing)
}

func TestLoadTraceErrors(t *testing.T) {
	_, err := LoadTrace(strings.NewReader("ticks: []\n"))
	assert.ErrorIs(t, err, errEmptyTrace)

	_, err = LoadTrace(strings.NewReader("ticks:\n  - {jmup: true}\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = LoadTraceFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestRowString(t *testing.T) {
	r := Row{Tick: 3, State: controller.InFlight, Events: []simulation.Kind{simulation.KindJumped}}
	s := r.String()
	assert.Contains(t, s, "in_flight")
	assert.Contains(t, s, "jumped")
}
