package component

import "github.com/milk9111/platformer/controller"

// PlayerState owns the avatar controller and the result of its last tick, so
// later systems in the frame can read what the controller decided.
type PlayerState struct {
	Controller *controller.Controller
	Last       controller.TickOutput
}

var PlayerStateComponent = NewComponent[PlayerState]()
