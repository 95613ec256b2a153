package controller

import "math"

// DefaultDeadZone is the horizontal intent magnitude below which facing is
// left unchanged.
const DefaultDeadZone = 0.01

// Config carries the movement tuning. JumpModifier and JumpDeceleration come
// from the model settings rather than the player prefab.
type Config struct {
	MaxSpeed         float64
	JumpTakeOffSpeed float64
	JumpModifier     float64
	JumpDeceleration float64
	DeadZone         float64
}

// DefaultConfig matches the stock player prefab.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:         7,
		JumpTakeOffSpeed: 7,
		JumpModifier:     1.5,
		JumpDeceleration: 0.5,
		DeadZone:         DefaultDeadZone,
	}
}

// Vector is a 2D vector with Y pointing up.
type Vector struct {
	X float64
	Y float64
}

// ResolveInput is everything the resolver reads for one tick.
type ResolveInput struct {
	JumpRequested     bool
	Grounded          bool
	StopJump          bool
	Horizontal        float64
	PreviousVelocityY float64
}

// Velocity is the resolver output. Y is the new vertical speed; TargetX is the
// horizontal speed the physics collaborator should converge to.
type Velocity struct {
	TargetX float64
	Y       float64
}

// Vector returns the velocity as a target vector.
func (v Velocity) Vector() Vector {
	return Vector{X: v.TargetX, Y: v.Y}
}

// Resolve computes the target velocity for one tick.
func Resolve(cfg Config, in ResolveInput) Velocity {
	y := in.PreviousVelocityY
	if in.JumpRequested && in.Grounded {
		y = cfg.JumpTakeOffSpeed * cfg.JumpModifier
	} else if in.StopJump && in.PreviousVelocityY > 0 {
		// scale rather than zero so the cutoff eases out
		y = in.PreviousVelocityY * cfg.JumpDeceleration
	}
	return Velocity{
		TargetX: in.Horizontal * cfg.MaxSpeed,
		Y:       y,
	}
}

// Facing is the horizontal direction the avatar looks at.
type Facing int8

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// FlipX reports whether a right-facing sprite must be mirrored.
func (f Facing) FlipX() bool {
	return f == FacingLeft
}

// Sign is -1 for left and 1 for right.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// NextFacing flips only when the intent is strictly outside the dead zone, so
// ±deadZone itself keeps the current facing.
func NextFacing(current Facing, horizontal, deadZone float64) Facing {
	switch {
	case horizontal > deadZone:
		return FacingRight
	case horizontal < -deadZone:
		return FacingLeft
	default:
		return current
	}
}

// NormalizedSpeed maps a horizontal speed to [0, 1] of maxSpeed for animation.
func NormalizedSpeed(vx, maxSpeed float64) float64 {
	if maxSpeed == 0 {
		return 0
	}
	return math.Abs(vx) / maxSpeed
}
