package system

import (
	"fmt"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// Clip names picked by AnimationSystem.
const (
	ClipIdle = "idle"
	ClipRun  = "run"
	ClipJump = "jump"
	ClipFall = "fall"
	ClipLand = "land"
)

// runThreshold is the normalized speed above which the avatar runs.
const runThreshold = 0.1

// AnimationSystem resolves animator parameters into a clip, the way an
// animation graph would. It runs after PlayerControllerSystem.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimatorComponent, func(e ecs.Entity, anim *component.Animator) {
		vy := 0.0
		if kin, ok := ecs.Get(w, e, component.KinematicComponent); ok {
			vy = kin.Velocity.Y
		}

		clip := PickClip(*anim, vy)
		if clip != anim.Clip {
			anim.Clip = clip
			anim.ClipTicks = 0
			return
		}
		anim.ClipTicks++
	})
}

// PickClip maps animator parameters to a clip. Attacks override movement.
func PickClip(anim component.Animator, velocityY float64) string {
	if anim.Attack > 0 {
		return fmt.Sprintf("attack%d", anim.Attack)
	}
	switch anim.JumpState {
	case controller.Landed.String():
		return ClipLand
	case controller.PrepareToJump.String(), controller.Jumping.String():
		return ClipJump
	case controller.InFlight.String():
		if velocityY > 0 {
			return ClipJump
		}
		return ClipFall
	}
	if !anim.Grounded {
		return ClipFall
	}
	if anim.VelocityX > runThreshold {
		return ClipRun
	}
	return ClipIdle
}
