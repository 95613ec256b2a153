package component

// PlayerStateInterrupt is a one-shot request consumed by the player controller
// system on its next tick. Systems add it to a player entity to toggle control
// or put the avatar back on its feet.
type PlayerStateInterrupt struct {
	// Enable sets control on or off when non-nil.
	Enable *bool
	// Reset returns the jump cycle, taps and combo to idle.
	Reset bool
}

var PlayerStateInterruptComponent = NewComponent[PlayerStateInterrupt]()
