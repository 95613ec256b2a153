package component

// PlayerCollision stores per-player collision state derived from physics
// contacts. Grounded is the signal the jump state machine advances on.
type PlayerCollision struct {
	Grounded bool
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
