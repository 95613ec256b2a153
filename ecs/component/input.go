package component

import "github.com/milk9111/platformer/controller"

// Input stores per-frame device state for an entity.
type Input struct {
	Raw controller.RawInput
}

var InputComponent = NewComponent[Input]()
