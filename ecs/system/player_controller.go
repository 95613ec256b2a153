package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/simulation"
)

// PlayerControllerSystem ticks each avatar controller once per frame and
// applies its decisions to the engine-facing components. It must run after
// ClockSystem and before PhysicsSystem.
type PlayerControllerSystem struct {
	events *simulation.Scheduler
	log    *zap.Logger
}

func NewPlayerControllerSystem(events *simulation.Scheduler, log *zap.Logger) *PlayerControllerSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlayerControllerSystem{events: events, log: log}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerStateComponent.Kind(),
		component.KinematicComponent.Kind(),
	)
	for _, e := range entities {
		state, ok := ecs.GetPtr(w, e, component.PlayerStateComponent)
		if !ok || state.Controller == nil {
			continue
		}
		kin, ok := ecs.GetPtr(w, e, component.KinematicComponent)
		if !ok {
			continue
		}

		p.applyInterrupt(w, e, state.Controller)

		var raw controller.RawInput
		if input, ok := ecs.Get(w, e, component.InputComponent); ok {
			raw = input.Raw
		}
		collision, _ := ecs.Get(w, e, component.PlayerCollisionComponent)

		out := state.Controller.Tick(controller.TickInput{
			Raw:       raw,
			Grounded:  collision.Grounded,
			VelocityX: kin.Velocity.X,
			VelocityY: kin.Velocity.Y,
		})
		state.Last = out
		kin.Target = out.Velocity.Vector()

		if sprite, ok := ecs.GetPtr(w, e, component.SpriteComponent); ok {
			sprite.FlipX = out.Facing.FlipX()
		}
		if anim, ok := ecs.GetPtr(w, e, component.AnimatorComponent); ok {
			anim.Grounded = out.Grounded
			anim.VelocityX = out.Speed
			anim.JumpState = out.State.String()
			anim.Attack = out.ComboStep
		}
		if hb, ok := ecs.GetPtr(w, e, component.HitboxComponent); ok {
			if hb.Step != out.ComboStep {
				hb.HitTargets = nil
			}
			hb.Active = out.HitboxActive
			hb.Step = out.ComboStep
		}

		for _, evt := range out.Events {
			evt.Entity = uint64(e)
			p.logEvent(evt, out)
			p.events.Schedule(evt, 0)
		}
	}
}

func (p *PlayerControllerSystem) applyInterrupt(w *ecs.World, e ecs.Entity, c *controller.Controller) {
	interrupt, ok := ecs.Get(w, e, component.PlayerStateInterruptComponent)
	if !ok {
		return
	}
	_ = ecs.Remove(w, e, component.PlayerStateInterruptComponent)

	if interrupt.Reset {
		c.Reset()
	}
	if interrupt.Enable != nil {
		c.SetEnabled(*interrupt.Enable)
		p.log.Info("player control toggled", zap.Stringer("entity", e), zap.Bool("enabled", *interrupt.Enable))
	}
}

func (p *PlayerControllerSystem) logEvent(evt simulation.Event, out controller.TickOutput) {
	switch evt.Kind {
	case simulation.KindSingleTapLeft, simulation.KindSingleTapRight,
		simulation.KindDoubleTapLeft, simulation.KindDoubleTapRight:
		p.log.Debug("tap", zap.String("kind", string(evt.Kind)))
	default:
		p.log.Debug("player event",
			zap.String("kind", string(evt.Kind)),
			zap.Stringer("state", out.State),
			zap.Int("step", evt.Step),
		)
	}
}
