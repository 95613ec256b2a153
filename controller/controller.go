// Package controller is the tick-driven core of the player avatar: input
// debouncing, the jump state machine, velocity resolution, tap gestures and
// the melee combo. It has no engine dependencies; a game loop feeds it one
// TickInput per simulation step and applies the TickOutput.
package controller

import (
	"time"

	"github.com/milk9111/platformer/simulation"
)

// Options configures a Controller.
type Options struct {
	Config   Config
	Bindings Bindings
	TapTime  time.Duration
	Melee    MeleeConfig
}

func DefaultOptions() Options {
	return Options{
		Config:   DefaultConfig(),
		Bindings: DefaultBindings(),
		TapTime:  DefaultTapTime,
		Melee:    DefaultMeleeConfig(),
	}
}

// TickInput is what the host supplies each tick. Grounded and the velocity
// come from the physics collaborator.
type TickInput struct {
	Raw       RawInput
	Grounded  bool
	VelocityX float64
	VelocityY float64
}

// TickOutput is what the host applies after a tick.
type TickOutput struct {
	Intent        MovementIntent
	State         JumpState
	JumpRequested bool
	Velocity      Velocity
	Facing        Facing
	FacingChanged bool
	Grounded      bool
	// Speed is |vx| / MaxSpeed for animation.
	Speed        float64
	HitboxActive bool
	ComboStep    int
	// Events raised since the previous tick, in the order they happened.
	Events []simulation.Event
}

// Controller drives one avatar. It is single-threaded: Tick and the timer
// callbacks it schedules must run on the same loop.
type Controller struct {
	cfg      Config
	bindings Bindings

	jump  *JumpMachine
	taps  *TapDetector
	melee *Melee

	facing      Facing
	enabled     bool
	pendingStop bool
	events      []simulation.Event
}

// New creates a controller whose timers run on the given clock.
func New(timers *simulation.TimerQueue, opts Options) *Controller {
	if timers == nil {
		timers = simulation.NewTimerQueue()
	}
	c := &Controller{
		cfg:      opts.Config,
		bindings: opts.Bindings,
		jump:     NewJumpMachine(),
		enabled:  true,
	}
	c.taps = NewTapDetector(timers, opts.TapTime, func(kind simulation.Kind) {
		c.push(simulation.Event{Kind: kind})
	})
	c.melee = NewMelee(timers, opts.Melee, func(kind simulation.Kind, step int) {
		c.push(simulation.Event{Kind: kind, Step: step})
	})
	return c
}

// Config returns the active movement tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetOptions swaps tuning in place, keeping the jump state and facing.
func (c *Controller) SetOptions(opts Options) {
	c.cfg = opts.Config
	c.bindings = opts.Bindings
	c.taps.SetTapTime(opts.TapTime)
	c.melee.SetConfig(opts.Melee)
}

// State returns the current jump state.
func (c *Controller) State() JumpState {
	return c.jump.State()
}

// Facing returns the current facing.
func (c *Controller) Facing() Facing {
	return c.facing
}

// Enabled reports whether input is being read.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// SetEnabled toggles input. While disabled the avatar gets no horizontal
// intent and presses are ignored, but the jump cycle keeps following physics.
func (c *Controller) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if !enabled {
		c.taps.Reset()
		c.melee.Cancel()
	}
}

// Reset returns the avatar to a grounded, idle state.
func (c *Controller) Reset() {
	c.jump.Reset()
	c.taps.Reset()
	c.melee.Cancel()
	c.pendingStop = false
	c.facing = FacingRight
}

// Tick runs one simulation step.
func (c *Controller) Tick(in TickInput) TickOutput {
	var intent MovementIntent
	if c.enabled {
		intent = c.bindings.Intent(in.Raw)
		c.handleIntent(intent)
		c.handleGestures(in.Raw)
	}

	jumpRequested, kind, transitioned := c.jump.Advance(in.Grounded)
	if transitioned {
		c.push(simulation.Event{Kind: kind})
	} else if c.pendingStop {
		c.pendingStop = false
		c.push(simulation.Event{Kind: simulation.KindStopJump})
	}

	stop := false
	if !(jumpRequested && in.Grounded) {
		stop = c.jump.ConsumeStopJump()
	}
	vel := Resolve(c.cfg, ResolveInput{
		JumpRequested:     jumpRequested,
		Grounded:          in.Grounded,
		StopJump:          stop,
		Horizontal:        intent.Horizontal,
		PreviousVelocityY: in.VelocityY,
	})

	prev := c.facing
	c.facing = NextFacing(c.facing, intent.Horizontal, c.cfg.DeadZone)

	out := TickOutput{
		Intent:        intent,
		State:         c.jump.State(),
		JumpRequested: jumpRequested,
		Velocity:      vel,
		Facing:        c.facing,
		FacingChanged: prev != c.facing,
		Grounded:      in.Grounded,
		Speed:         NormalizedSpeed(in.VelocityX, c.cfg.MaxSpeed),
		HitboxActive:  c.melee.HitboxActive(),
		ComboStep:     c.melee.ComboStep(),
		Events:        c.events,
	}
	c.events = nil
	return out
}

func (c *Controller) handleIntent(intent MovementIntent) {
	if intent.JumpPressed && c.jump.RequestJump() {
		return
	}
	if intent.JumpReleased {
		c.jump.ReleaseJump()
		c.pendingStop = true
	}
}

func (c *Controller) handleGestures(raw RawInput) {
	if raw.LeftPressed {
		c.taps.Press(TapLeft)
	}
	if raw.RightPressed {
		c.taps.Press(TapRight)
	}
	if raw.AttackPressed {
		c.melee.Press()
	}
}

func (c *Controller) push(evt simulation.Event) {
	c.events = append(c.events, evt)
}
