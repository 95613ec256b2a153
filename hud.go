package main

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/simulation"
)

const (
	hudLogLines = 6
	// hudLogFade is how long an event line stays on screen.
	hudLogFade = 2 * time.Second
)

type hudLine struct {
	text string
	at   time.Duration
}

// HUD shows recent gameplay events and, in debug mode, the avatar's
// controller state.
type HUD struct {
	face  text.Face
	clock func() time.Duration
	debug bool

	lines   []hudLine
	jumps   int
	landing int
	hits    int
}

func newFontFace(size float64) (text.Face, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	return &text.GoTextFace{Source: s, Size: size}, nil
}

func NewHUD(events *simulation.Scheduler, face text.Face, debug bool) *HUD {
	h := &HUD{face: face, clock: events.Now, debug: debug}
	events.SubscribeAll(h.onEvent)
	return h
}

func (h *HUD) onEvent(evt simulation.Event) {
	switch evt.Kind {
	case simulation.KindJumped:
		h.jumps++
	case simulation.KindLanded:
		h.landing++
	case simulation.KindHit:
		h.hits++
	}

	line := string(evt.Kind)
	if evt.Step > 0 {
		line = fmt.Sprintf("%s %d", evt.Kind, evt.Step)
	}
	h.lines = append(h.lines, hudLine{text: line, at: h.clock()})
	if len(h.lines) > hudLogLines {
		h.lines = h.lines[len(h.lines)-hudLogLines:]
	}
}

// Stats returns the jumped, landed and hit counts.
func (h *HUD) Stats() (jumps, landings, hits int) {
	return h.jumps, h.landing, h.hits
}

// visibleLines returns the event lines still on screen with their alpha.
func (h *HUD) visibleLines() ([]string, []float32) {
	now := h.clock()
	var lines []string
	var alphas []float32
	for _, l := range h.lines {
		age := now - l.at
		if age >= hudLogFade {
			continue
		}
		t := common.Clamp01(float32(age) / float32(hudLogFade))
		lines = append(lines, l.text)
		alphas = append(alphas, common.Lerp(1, 0.2, t))
	}
	return lines, alphas
}

func (h *HUD) Draw(screen *ebiten.Image, last controller.TickOutput) {
	if h == nil || h.face == nil {
		return
	}

	h.drawText(screen, fmt.Sprintf("jumps %d  landings %d  hits %d", h.jumps, h.landing, h.hits), 16, 16, color.White)

	y := 40.0
	if h.debug {
		h.drawText(screen, fmt.Sprintf("state %s  facing %s  grounded %t", last.State, last.Facing, last.Grounded), 16, y, color.White)
		y += 20
		h.drawText(screen, fmt.Sprintf("target %.2f, %.2f  speed %.2f  combo %d", last.Velocity.TargetX, last.Velocity.Y, last.Speed, last.ComboStep), 16, y, color.White)
		y += 20
	}

	lines, alphas := h.visibleLines()
	for i, line := range lines {
		c := color.RGBA{R: 0xc8, G: 0xd6, B: 0xe5, A: 0xff}
		op := &text.DrawOptions{}
		op.GeoM.Translate(16, y+float64(i)*18)
		op.ColorScale.ScaleWithColor(c)
		op.ColorScale.ScaleAlpha(alphas[i])
		text.Draw(screen, line, h.face, op)
	}
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, h.face, op)
}
