package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

var (
	hitboxColor  = color.RGBA{R: 255, G: 80, B: 80, A: 160}
	hurtboxColor = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	facingColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	flashColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// RenderSystem draws sprites as flat rectangles through a camera that follows
// the player, clamped to the level bounds.
type RenderSystem struct {
	// Debug outlines hurtboxes in addition to the active hitbox.
	Debug bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{Debug: debug}
}

// Camera returns the top-left world position the screen is showing.
func (r *RenderSystem) Camera(w *ecs.World, screenW, screenH float64) (float64, float64) {
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	t, _ := ecs.Get(w, player, component.TransformComponent)
	camX := t.X - screenW/2
	camY := t.Y - screenH/2

	if boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		b, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent)
		camX = clampCamera(camX, b.Width-screenW)
		camY = clampCamera(camY, b.Height-screenH)
	}
	return camX, camY
}

func clampCamera(v, max float64) float64 {
	if max <= 0 {
		return max / 2
	}
	return math.Max(0, math.Min(v, max))
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	bounds := screen.Bounds()
	camX, camY := r.Camera(w, float64(bounds.Dx()), float64(bounds.Dy()))

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	// player last so it draws over platforms and dummies
	sort.SliceStable(entities, func(i, j int) bool {
		pi := ecs.Has(w, entities[i], component.PlayerTagComponent)
		pj := ecs.Has(w, entities[j], component.PlayerTagComponent)
		if pi != pj {
			return pj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		s, _ := ecs.Get(w, e, component.SpriteComponent)

		sw, sh := s.Width, s.Height
		if anim, ok := ecs.Get(w, e, component.AnimatorComponent); ok {
			sx, sy := Squash(anim)
			sw, sh = sw*sx, sh*sy
		}
		fill := s.Color
		if wf, ok := ecs.Get(w, e, component.WhiteFlashComponent); ok && wf.On {
			fill = flashColor
		}

		// squash keeps the feet planted
		x := float32(t.X - camX - sw/2)
		y := float32(t.Y - camY + s.Height/2 - sh)
		vector.DrawFilledRect(screen, x, y, float32(sw), float32(sh), fill, false)

		if ecs.Has(w, e, component.PlayerTagComponent) {
			r.drawFacing(screen, t, s, camX, camY)
		}

		if hb, ok := ecs.Get(w, e, component.HitboxComponent); ok && hb.Active {
			rect := HitboxRect(t, hb, s.FlipX)
			vector.DrawFilledRect(screen, float32(rect.X-camX), float32(rect.Y-camY), float32(rect.W), float32(rect.H), hitboxColor, false)
		}

		if r.Debug {
			if hurt, ok := ecs.Get(w, e, component.HurtboxComponent); ok {
				rect := HurtboxRect(t, hurt)
				vector.StrokeRect(screen, float32(rect.X-camX), float32(rect.Y-camY), float32(rect.W), float32(rect.H), 1, hurtboxColor, false)
			}
		}
	}
}

// drawFacing marks the side of the sprite the avatar is looking toward.
func (r *RenderSystem) drawFacing(screen *ebiten.Image, t component.Transform, s component.Sprite, camX, camY float64) {
	const eye = 4.0
	ex := t.X + s.Width/4 - eye/2
	if s.FlipX {
		ex = t.X - s.Width/4 - eye/2
	}
	ey := t.Y - s.Height/4 - eye/2
	vector.DrawFilledRect(screen, float32(ex-camX), float32(ey-camY), eye, eye, facingColor, false)
}

// Squash returns the sprite scale for the current clip: a short stretch on
// takeoff and a squash on touchdown.
func Squash(anim component.Animator) (float64, float64) {
	const ticks = 6
	if anim.ClipTicks >= ticks {
		return 1, 1
	}
	k := 1 - float64(anim.ClipTicks)/ticks
	switch anim.Clip {
	case ClipJump:
		return 1 - 0.15*k, 1 + 0.2*k
	case ClipLand:
		return 1 + 0.2*k, 1 - 0.15*k
	}
	return 1, 1
}
