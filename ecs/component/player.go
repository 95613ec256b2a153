package component

import "github.com/milk9111/platformer/controller"

// Player holds the avatar tuning the controller is built from.
type Player struct {
	Name    string
	Options controller.Options
}

var PlayerComponent = NewComponent[Player]()
