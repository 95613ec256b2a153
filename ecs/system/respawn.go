package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/simulation"
)

// fallMargin is how far below the level a player may drop before respawning.
const fallMargin = 64

type RespawnSystem struct {
	events *simulation.Scheduler
	log    *zap.Logger
}

func NewRespawnSystem(events *simulation.Scheduler, log *zap.Logger) *RespawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &RespawnSystem{events: events, log: log}
}

// Update returns players that fell out of the level to their spawn point.
// Control stays disabled for the respawn delay. It should run after the
// PhysicsSystem so the transform reflects this tick's step.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent)

	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.RespawnComponent.Kind(), component.TransformComponent.Kind()) {
		respawn, _ := ecs.GetPtr(w, e, component.RespawnComponent)
		t, _ := ecs.GetPtr(w, e, component.TransformComponent)
		if respawn.Pending || t.Y <= bounds.Height+fallMargin {
			continue
		}

		t.X = respawn.X
		t.Y = respawn.Y
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Body != nil {
			body.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			body.Body.SetVelocityVector(cp.Vector{})
		}
		if kin, ok := ecs.GetPtr(w, e, component.KinematicComponent); ok {
			kin.Velocity = controller.Vector{}
			kin.Target = controller.Vector{}
		}

		disable := false
		_ = ecs.Add(w, e, component.PlayerStateInterruptComponent, component.PlayerStateInterrupt{
			Enable: &disable,
			Reset:  true,
		})
		respawn.Pending = true

		s.log.Info("player respawned", zap.Stringer("entity", e), zap.Duration("delay", respawn.Delay))
		s.events.Schedule(simulation.Event{Kind: simulation.KindRespawn, Entity: uint64(e)}, 0)

		player := e
		s.events.Timers().After(respawn.Delay, func() {
			s.restore(w, player)
		})
	}
}

func (s *RespawnSystem) restore(w *ecs.World, e ecs.Entity) {
	respawn, ok := ecs.GetPtr(w, e, component.RespawnComponent)
	if !ok {
		return
	}
	respawn.Pending = false
	enable := true
	// keep a reset that has not been consumed yet
	interrupt, _ := ecs.Get(w, e, component.PlayerStateInterruptComponent)
	interrupt.Enable = &enable
	_ = ecs.Add(w, e, component.PlayerStateInterruptComponent, interrupt)
}
