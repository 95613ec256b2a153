package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestPickClip(t *testing.T) {
	tests := []struct {
		name string
		anim component.Animator
		vy   float64
		want string
	}{
		{"idle", component.Animator{Grounded: true, JumpState: controller.Grounded.String()}, 0, ClipIdle},
		{"run", component.Animator{Grounded: true, VelocityX: 0.5, JumpState: controller.Grounded.String()}, 0, ClipRun},
		{"creep_is_idle", component.Animator{Grounded: true, VelocityX: 0.05, JumpState: controller.Grounded.String()}, 0, ClipIdle},
		{"prepare", component.Animator{Grounded: true, JumpState: controller.PrepareToJump.String()}, 0, ClipJump},
		{"rising", component.Animator{JumpState: controller.InFlight.String()}, 3, ClipJump},
		{"falling", component.Animator{JumpState: controller.InFlight.String()}, -3, ClipFall},
		{"walked_off_ledge", component.Animator{JumpState: controller.Grounded.String()}, -1, ClipFall},
		{"landed", component.Animator{Grounded: true, JumpState: controller.Landed.String()}, 0, ClipLand},
		{"attack_overrides", component.Animator{JumpState: controller.InFlight.String(), Attack: 2}, -3, "attack2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickClip(tt.anim, tt.vy))
		})
	}
}

func TestAnimationSystemCountsClipTicks(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.AnimatorComponent, component.Animator{Grounded: true, JumpState: controller.Grounded.String()}))
	require.NoError(t, ecs.Add(w, e, component.KinematicComponent, component.Kinematic{}))

	sys := NewAnimationSystem()
	sys.Update(w)
	sys.Update(w)
	sys.Update(w)

	anim, _ := ecs.Get(w, e, component.AnimatorComponent)
	assert.Equal(t, ClipIdle, anim.Clip)
	assert.Equal(t, 2, anim.ClipTicks)

	ptr, _ := ecs.GetPtr(w, e, component.AnimatorComponent)
	ptr.JumpState = controller.Jumping.String()
	sys.Update(w)

	anim, _ = ecs.Get(w, e, component.AnimatorComponent)
	assert.Equal(t, ClipJump, anim.Clip)
	assert.Zero(t, anim.ClipTicks)
}

func TestSquash(t *testing.T) {
	sx, sy := Squash(component.Animator{Clip: ClipJump})
	assert.Less(t, sx, 1.0)
	assert.Greater(t, sy, 1.0)

	sx, sy = Squash(component.Animator{Clip: ClipLand})
	assert.Greater(t, sx, 1.0)
	assert.Less(t, sy, 1.0)

	sx, sy = Squash(component.Animator{Clip: ClipJump, ClipTicks: 10})
	assert.Equal(t, 1.0, sx)
	assert.Equal(t, 1.0, sy)

	sx, sy = Squash(component.Animator{Clip: ClipRun})
	assert.Equal(t, 1.0, sx)
	assert.Equal(t, 1.0, sy)
}

func TestWhiteFlashTogglesAndExpires(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.WhiteFlashComponent, component.WhiteFlash{Frames: 4, Interval: 2}))

	sys := NewWhiteFlashSystem()
	var on []bool
	for i := 0; i < 4; i++ {
		sys.Update(w)
		wf, ok := ecs.Get(w, e, component.WhiteFlashComponent)
		if !ok {
			break
		}
		on = append(on, wf.On)
	}

	assert.Equal(t, []bool{false, true, true}, on)
	assert.False(t, ecs.Has(w, e, component.WhiteFlashComponent))
}
