package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// KeySource polls one frame of device state.
type KeySource interface {
	Poll() controller.RawInput
}

type InputSystem struct {
	source KeySource
}

// NewInputSystem reads from source, or from ebiten when source is nil.
func NewInputSystem(source KeySource) *InputSystem {
	if source == nil {
		source = EbitenKeys{}
	}
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	raw := i.source.Poll()
	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		input.Raw = raw
	})
}

// EbitenKeys maps keyboard, mouse and the first gamepad to raw input.
type EbitenKeys struct{}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

func (EbitenKeys) Poll() controller.RawInput {
	const stickDeadzone = 0.2

	leftKeys := []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys := []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	jumpKeys := []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}

	raw := controller.RawInput{
		Left:          anyPressed(leftKeys...),
		Right:         anyPressed(rightKeys...),
		LeftPressed:   anyJustPressed(leftKeys...),
		RightPressed:  anyJustPressed(rightKeys...),
		LeftReleased:  anyJustReleased(leftKeys...),
		RightReleased: anyJustReleased(rightKeys...),
		Jump:          anyPressed(jumpKeys...),
		JumpPressed:   anyJustPressed(jumpKeys...),
		JumpReleased:  anyJustReleased(jumpKeys...),
		AttackPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyJ),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			raw.Axis = leftX
		}

		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.JumpPressed = raw.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.JumpReleased = raw.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
		raw.AttackPressed = raw.AttackPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)

		// d-pad doubles as digital left/right so taps work on a pad
		raw.Left = raw.Left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		raw.Right = raw.Right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		raw.LeftPressed = raw.LeftPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		raw.RightPressed = raw.RightPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftRight)
	}

	return raw
}
