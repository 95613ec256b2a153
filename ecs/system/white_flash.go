package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// WhiteFlashSystem blinks hit targets and drops the flash once it runs out.
type WhiteFlashSystem struct{}

func NewWhiteFlashSystem() *WhiteFlashSystem { return &WhiteFlashSystem{} }

func (s *WhiteFlashSystem) Update(w *ecs.World) {
	var done []ecs.Entity
	ecs.ForEach(w, component.WhiteFlashComponent, func(e ecs.Entity, wf *component.WhiteFlash) {
		if !wf.Tick() {
			done = append(done, e)
		}
	})
	for _, e := range done {
		ecs.Remove(w, e, component.WhiteFlashComponent)
	}
}
