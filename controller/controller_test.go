package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/simulation"
)

func kinds(events []simulation.Event) []simulation.Kind {
	var out []simulation.Kind
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Config = Config{
		MaxSpeed:         7,
		JumpTakeOffSpeed: 7,
		JumpModifier:     1,
		JumpDeceleration: 0.5,
		DeadZone:         DefaultDeadZone,
	}
	return opts
}

func TestControllerJumpCycle(t *testing.T) {
	c := New(nil, testOptions())

	ticks := []struct {
		name      string
		in        TickInput
		wantState JumpState
		wantY     float64
	}{
		{"idle", TickInput{Grounded: true}, Grounded, 0},
		{"press", TickInput{Raw: RawInput{Jump: true, JumpPressed: true}, Grounded: true}, Jumping, 7},
		{"takeoff", TickInput{Grounded: false, VelocityY: 6.8}, InFlight, 6.8},
		{"touchdown", TickInput{Grounded: true}, Landed, 0},
		{"settle", TickInput{Grounded: true}, Grounded, 0},
	}

	var events []simulation.Kind
	for _, tick := range ticks {
		out := c.Tick(tick.in)
		assert.Equal(t, tick.wantState, out.State, tick.name)
		assert.InDelta(t, tick.wantY, out.Velocity.Y, 1e-9, tick.name)
		events = append(events, kinds(out.Events)...)
	}

	assert.Equal(t, []simulation.Kind{simulation.KindJumped, simulation.KindLanded}, events)
	assert.Equal(t, Grounded, c.State())
}

func TestControllerJumpRequestedOnlyOnce(t *testing.T) {
	c := New(nil, testOptions())

	out := c.Tick(TickInput{Raw: RawInput{JumpPressed: true}, Grounded: true})
	assert.True(t, out.JumpRequested)

	// still grounded: the machine waits in Jumping and does not re-launch
	out = c.Tick(TickInput{Raw: RawInput{JumpPressed: true}, Grounded: true, VelocityY: 0})
	assert.False(t, out.JumpRequested)
	assert.Equal(t, Jumping, out.State)
	assert.Empty(t, out.Events)
}

func TestControllerJumpCutShort(t *testing.T) {
	c := New(nil, testOptions())

	c.Tick(TickInput{Raw: RawInput{JumpPressed: true}, Grounded: true})
	out := c.Tick(TickInput{Grounded: false, VelocityY: 6})
	require.Equal(t, []simulation.Kind{simulation.KindJumped}, kinds(out.Events))

	out = c.Tick(TickInput{Raw: RawInput{JumpReleased: true}, Grounded: false, VelocityY: 10})
	assert.InDelta(t, 5, out.Velocity.Y, 1e-9)
	assert.Equal(t, []simulation.Kind{simulation.KindStopJump}, kinds(out.Events))
	assert.Equal(t, InFlight, out.State)

	// the stop flag is consumed once
	out = c.Tick(TickInput{Grounded: false, VelocityY: 4})
	assert.InDelta(t, 4, out.Velocity.Y, 1e-9)
}

func TestControllerStopJumpDeferredOnTransitionTick(t *testing.T) {
	c := New(nil, testOptions())

	c.Tick(TickInput{Raw: RawInput{JumpPressed: true}, Grounded: true})

	// release lands on the takeoff tick: jumped goes first, stop-jump next tick
	out := c.Tick(TickInput{Raw: RawInput{JumpReleased: true}, Grounded: false, VelocityY: 6})
	assert.Equal(t, []simulation.Kind{simulation.KindJumped}, kinds(out.Events))
	assert.InDelta(t, 3, out.Velocity.Y, 1e-9)

	out = c.Tick(TickInput{Grounded: false, VelocityY: 3})
	assert.Equal(t, []simulation.Kind{simulation.KindStopJump}, kinds(out.Events))
	assert.InDelta(t, 3, out.Velocity.Y, 1e-9)
}

func TestControllerPressWhileAirborneIgnored(t *testing.T) {
	c := New(nil, testOptions())
	c.Tick(TickInput{Raw: RawInput{JumpPressed: true}, Grounded: true})
	c.Tick(TickInput{Grounded: false, VelocityY: 5})

	out := c.Tick(TickInput{Raw: RawInput{JumpPressed: true}, Grounded: false, VelocityY: 4})
	assert.False(t, out.JumpRequested)
	assert.Equal(t, InFlight, out.State)
	assert.InDelta(t, 4, out.Velocity.Y, 1e-9)
}

func TestControllerHorizontalAndFacing(t *testing.T) {
	c := New(nil, testOptions())

	out := c.Tick(TickInput{Raw: RawInput{Left: true}, Grounded: true, VelocityX: -3.5})
	assert.InDelta(t, -7, out.Velocity.TargetX, 1e-9)
	assert.Equal(t, FacingLeft, out.Facing)
	assert.True(t, out.FacingChanged)
	assert.InDelta(t, 0.5, out.Speed, 1e-9)

	out = c.Tick(TickInput{Raw: RawInput{Axis: 0.01}, Grounded: true})
	assert.Equal(t, FacingLeft, out.Facing)
	assert.False(t, out.FacingChanged)

	out = c.Tick(TickInput{Raw: RawInput{Axis: 0.5}, Grounded: true})
	assert.Equal(t, FacingRight, out.Facing)
	assert.True(t, out.FacingChanged)
}

func TestControllerDisabled(t *testing.T) {
	c := New(nil, testOptions())
	c.SetEnabled(false)
	assert.False(t, c.Enabled())

	out := c.Tick(TickInput{Raw: RawInput{Right: true, JumpPressed: true, AttackPressed: true}, Grounded: true})
	assert.Equal(t, 0.0, out.Velocity.TargetX)
	assert.Equal(t, Grounded, out.State)
	assert.False(t, out.HitboxActive)
	assert.Empty(t, out.Events)
}

func TestControllerDisableMidAirStillLands(t *testing.T) {
	c := New(nil, testOptions())
	c.Tick(TickInput{Raw: RawInput{JumpPressed: true}, Grounded: true})
	c.Tick(TickInput{Grounded: false, VelocityY: 5})
	c.SetEnabled(false)

	out := c.Tick(TickInput{Grounded: true})
	assert.Equal(t, []simulation.Kind{simulation.KindLanded}, kinds(out.Events))
}

func TestControllerSurfacesTimerEvents(t *testing.T) {
	q := simulation.NewTimerQueue()
	c := New(q, testOptions())

	out := c.Tick(TickInput{Raw: RawInput{Left: true, LeftPressed: true, AttackPressed: true}, Grounded: true})
	assert.Equal(t, []simulation.Kind{simulation.KindAttack}, kinds(out.Events))
	assert.True(t, out.HitboxActive)
	assert.Equal(t, 1, out.ComboStep)

	q.Advance(time.Second)

	out = c.Tick(TickInput{Grounded: true})
	assert.ElementsMatch(t, []simulation.Kind{simulation.KindSingleTapLeft, simulation.KindAttackEnd}, kinds(out.Events))
	assert.False(t, out.HitboxActive)
}

func TestControllerDualKeyJump(t *testing.T) {
	opts := testOptions()
	opts.Bindings.DualKeyJump = true
	c := New(nil, opts)

	out := c.Tick(TickInput{Raw: RawInput{Left: true, Right: true}, Grounded: true})
	assert.True(t, out.JumpRequested)
	assert.InDelta(t, 7, out.Velocity.Y, 1e-9)
}

func TestControllerSetOptionsAndReset(t *testing.T) {
	c := New(nil, testOptions())
	opts := testOptions()
	opts.Config.MaxSpeed = 10
	c.SetOptions(opts)
	assert.Equal(t, 10.0, c.Config().MaxSpeed)

	c.Tick(TickInput{Raw: RawInput{Left: true, JumpPressed: true}, Grounded: true})
	require.Equal(t, Jumping, c.State())
	require.Equal(t, FacingLeft, c.Facing())

	c.Reset()
	assert.Equal(t, Grounded, c.State())
	assert.Equal(t, FacingRight, c.Facing())
}
