package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/simulation"
)

var playerColor = color.RGBA{R: 0xe8, G: 0xc5, B: 0x47, A: 0xff}

// NewPlayerAt builds the avatar at (x, y). Its controller schedules tap and
// combo timers on timers, which must be the clock the game advances.
func NewPlayerAt(w *ecs.World, timers *simulation.TimerQueue, player prefabs.PlayerSpec, model prefabs.ModelSpec, x, y float64) (ecs.Entity, error) {
	opts := player.Options(model)
	e := w.CreateEntity()

	adds := []func() error{
		func() error { return ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerComponent, component.Player{Name: player.Name, Options: opts})
		},
		func() error { return ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}) },
		func() error { return ecs.Add(w, e, component.InputComponent, component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerStateComponent, component.PlayerState{
				Controller: controller.New(timers, opts),
			})
		},
		func() error { return ecs.Add(w, e, component.KinematicComponent, component.Kinematic{}) },
		func() error { return ecs.Add(w, e, component.PlayerCollisionComponent, component.PlayerCollision{}) },
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
				Width:    player.Collider.Width,
				Height:   player.Collider.Height,
				Mass:     player.Collider.Mass,
				Friction: player.Collider.Friction,
			})
		},
		func() error {
			return ecs.Add(w, e, component.SpriteComponent, component.Sprite{
				Width:  player.Collider.Width,
				Height: player.Collider.Height,
				Color:  player.Sprite.Color.RGBA8(playerColor),
			})
		},
		func() error { return ecs.Add(w, e, component.AnimatorComponent, component.Animator{}) },
		func() error {
			return ecs.Add(w, e, component.HitboxComponent, component.Hitbox{
				Width:   player.Hitbox.Width,
				Height:  player.Hitbox.Height,
				OffsetX: player.Hitbox.OffsetX,
				OffsetY: player.Hitbox.OffsetY,
				Damage:  player.Hitbox.Damage,
			})
		},
		func() error {
			return ecs.Add(w, e, component.RespawnComponent, component.Respawn{X: x, Y: y, Delay: player.RespawnDelay.Duration()})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("player: %w", err)
		}
	}
	return e, nil
}

// ApplyPlayerSpec pushes reloaded tuning into a live avatar without
// resetting its jump cycle.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, player prefabs.PlayerSpec, model prefabs.ModelSpec) error {
	opts := player.Options(model)

	p, ok := ecs.GetPtr(w, e, component.PlayerComponent)
	if !ok {
		return fmt.Errorf("player: %w", component.ErrEntityNotAlive)
	}
	p.Name = player.Name
	p.Options = opts

	if state, ok := ecs.GetPtr(w, e, component.PlayerStateComponent); ok && state.Controller != nil {
		state.Controller.SetOptions(opts)
	}
	if body, ok := ecs.GetPtr(w, e, component.PhysicsBodyComponent); ok {
		body.Friction = player.Collider.Friction
		if body.Shape != nil {
			body.Shape.SetFriction(player.Collider.Friction)
		}
	}
	if sprite, ok := ecs.GetPtr(w, e, component.SpriteComponent); ok {
		sprite.Color = player.Sprite.Color.RGBA8(playerColor)
	}
	if hb, ok := ecs.GetPtr(w, e, component.HitboxComponent); ok {
		hb.Width = player.Hitbox.Width
		hb.Height = player.Hitbox.Height
		hb.OffsetX = player.Hitbox.OffsetX
		hb.OffsetY = player.Hitbox.OffsetY
		hb.Damage = player.Hitbox.Damage
	}
	if r, ok := ecs.GetPtr(w, e, component.RespawnComponent); ok {
		r.Delay = player.RespawnDelay.Duration()
	}
	return nil
}
