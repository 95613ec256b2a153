package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var (
	platformColor = color.RGBA{R: 0x4a, G: 0x5a, B: 0x6e, A: 0xff}
	dummyColor    = color.RGBA{R: 0xc0, G: 0x5a, B: 0x4a, A: 0xff}
)

// LoadLevelToWorld creates the bounds, platforms and training dummies of a
// level. It returns the entities it created so a reload can remove them.
func LoadLevelToWorld(w *ecs.World, lvl prefabs.LevelSpec) ([]ecs.Entity, error) {
	var created []ecs.Entity
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range created {
			w.DestroyEntity(e)
		}
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}

	bounds := w.CreateEntity()
	created = append(created, bounds)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent, component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return fail(err)
	}

	for _, p := range lvl.Platforms {
		e := w.CreateEntity()
		created = append(created, e)
		if err := addPlatform(w, e, p); err != nil {
			return fail(err)
		}
	}

	for _, d := range lvl.Dummies {
		e := w.CreateEntity()
		created = append(created, e)
		if err := addDummy(w, e, d); err != nil {
			return fail(err)
		}
	}

	return created, nil
}

func addPlatform(w *ecs.World, e ecs.Entity, p prefabs.PlatformSpec) error {
	if err := ecs.Add(w, e, component.PlatformTagComponent, component.PlatformTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: p.X, Y: p.Y}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:    p.Width,
		Height:   p.Height,
		Friction: p.Friction,
		Static:   true,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent, component.Sprite{
		Width:  p.Width,
		Height: p.Height,
		Color:  p.Color.RGBA8(platformColor),
	})
}

// addDummy creates a training target. Dummies have no physics body; they
// stand where the level puts them.
func addDummy(w *ecs.World, e ecs.Entity, d prefabs.DummySpec) error {
	if err := ecs.Add(w, e, component.DummyTagComponent, component.DummyTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: d.X, Y: d.Y}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.HurtboxComponent, component.Hurtbox{Width: d.Width, Height: d.Height}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.HealthComponent, component.Health{Max: d.Health, Current: d.Health}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent, component.Sprite{
		Width:  d.Width,
		Height: d.Height,
		Color:  dummyColor,
	})
}
