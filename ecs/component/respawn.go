package component

import "time"

// Respawn is where a player returns to after leaving the level bounds.
type Respawn struct {
	X float64
	Y float64
	// Delay keeps control disabled after respawning.
	Delay time.Duration
	// Pending is true while control is suspended.
	Pending bool
}

var RespawnComponent = NewComponent[Respawn]()
