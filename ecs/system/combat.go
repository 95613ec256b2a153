package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/simulation"
)

// Rect is an axis-aligned box in pixels, top-left origin.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// HitboxRect places a hitbox around its owner's centre, mirrored when the
// owner faces left.
func HitboxRect(t component.Transform, hb component.Hitbox, flipX bool) Rect {
	ox := hb.OffsetX
	if flipX {
		ox = -ox
	}
	return Rect{
		X: t.X + ox - hb.Width/2,
		Y: t.Y + hb.OffsetY - hb.Height/2,
		W: hb.Width,
		H: hb.Height,
	}
}

func HurtboxRect(t component.Transform, hb component.Hurtbox) Rect {
	return Rect{
		X: t.X + hb.OffsetX - hb.Width/2,
		Y: t.Y + hb.OffsetY - hb.Height/2,
		W: hb.Width,
		H: hb.Height,
	}
}

const (
	hitFlashFrames   = 12
	hitFlashInterval = 3
)

// CombatSystem resolves active melee hitboxes against hurtboxes. Each target
// takes damage at most once per combo step.
type CombatSystem struct {
	events *simulation.Scheduler
	log    *zap.Logger
}

func NewCombatSystem(events *simulation.Scheduler, log *zap.Logger) *CombatSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CombatSystem{events: events, log: log}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	targets := w.Query(component.HurtboxComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range w.Query(component.HitboxComponent.Kind(), component.TransformComponent.Kind()) {
		hb, ok := ecs.GetPtr(w, e, component.HitboxComponent)
		if !ok || !hb.Active {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		flip := false
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent); ok {
			flip = sprite.FlipX
		}
		box := HitboxRect(transform, *hb, flip)

		for _, t := range targets {
			if t == e || hb.HitTargets[uint64(t)] {
				continue
			}
			hurt, _ := ecs.Get(w, t, component.HurtboxComponent)
			tTransform, _ := ecs.Get(w, t, component.TransformComponent)
			if !box.Intersects(HurtboxRect(tTransform, hurt)) {
				continue
			}

			if hb.HitTargets == nil {
				hb.HitTargets = make(map[uint64]bool)
			}
			hb.HitTargets[uint64(t)] = true

			if h, ok := ecs.GetPtr(w, t, component.HealthComponent); ok {
				h.Current -= hb.Damage
				h.Hits++
				if h.Current <= 0 {
					h.Current = h.Max
					s.log.Info("target defeated", zap.Stringer("entity", t))
				}
			}

			_ = ecs.Add(w, t, component.WhiteFlashComponent, component.WhiteFlash{Frames: hitFlashFrames, Interval: hitFlashInterval})

			s.log.Debug("hit",
				zap.Stringer("attacker", e),
				zap.Stringer("target", t),
				zap.Int("step", hb.Step),
			)
			s.events.Schedule(simulation.Event{
				Kind:   simulation.KindHit,
				Entity: uint64(e),
				Target: uint64(t),
				Step:   hb.Step,
			}, 0)
		}
	}
}
