package controller

import "math"

// RawInput is one tick of polled device state. Held fields are levels,
// Pressed/Released fields are edges for this tick.
type RawInput struct {
	Axis float64

	Left          bool
	Right         bool
	LeftPressed   bool
	RightPressed  bool
	LeftReleased  bool
	RightReleased bool

	Jump         bool
	JumpPressed  bool
	JumpReleased bool

	AttackPressed bool
}

// MovementIntent is the debounced input the controller acts on.
type MovementIntent struct {
	Horizontal   float64
	JumpPressed  bool
	JumpReleased bool
}

// Bindings tunes how raw input maps to intent.
type Bindings struct {
	// AxisDeadZone is the analog magnitude below which the digital
	// left/right keys take over.
	AxisDeadZone float64
	// DualKeyJump treats holding left and right together as a jump press,
	// and releasing both on the same tick as a jump release.
	DualKeyJump bool
}

// DefaultBindings uses the dedicated jump key only.
func DefaultBindings() Bindings {
	return Bindings{AxisDeadZone: 0.2}
}

// Intent debounces raw input into a MovementIntent.
func (b Bindings) Intent(raw RawInput) MovementIntent {
	h := 0.0
	if math.Abs(raw.Axis) > b.AxisDeadZone {
		h = raw.Axis
	} else {
		if raw.Left {
			h--
		}
		if raw.Right {
			h++
		}
	}

	intent := MovementIntent{
		Horizontal:   clampUnit(h),
		JumpPressed:  raw.JumpPressed,
		JumpReleased: raw.JumpReleased,
	}

	if b.DualKeyJump {
		if raw.Left && raw.Right {
			intent.JumpPressed = true
		} else if raw.LeftReleased && raw.RightReleased {
			intent.JumpReleased = true
		}
	}
	return intent
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
