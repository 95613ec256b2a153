package component

import "github.com/milk9111/platformer/controller"

// Kinematic is the avatar's velocity in world units per second with Y up.
// Target is what the controller asks for this tick; Velocity is what physics
// produced on the last step.
type Kinematic struct {
	Velocity controller.Vector
	Target   controller.Vector
}

var KinematicComponent = NewComponent[Kinematic]()
