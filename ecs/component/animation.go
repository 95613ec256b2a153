package component

// Animator carries the parameters an animation graph reads each frame.
type Animator struct {
	Grounded bool
	// VelocityX is |vx| / max speed.
	VelocityX float64
	JumpState string
	Attack    int

	// Clip is the state AnimationSystem picked from the parameters above;
	// ClipTicks counts ticks since it last changed.
	Clip      string
	ClipTicks int
}

var AnimatorComponent = NewComponent[Animator]()
