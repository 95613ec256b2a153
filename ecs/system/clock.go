package system

import (
	"time"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/simulation"
)

// DefaultTickRate matches ebiten's default TPS.
const DefaultTickRate = 60

// ClockSystem advances the simulated clock by a fixed step each tick. Tap and
// combo timers fire and queued events are dispatched here, so it runs before
// the player controller.
type ClockSystem struct {
	events *simulation.Scheduler
	dt     time.Duration
}

func NewClockSystem(events *simulation.Scheduler, tickRate int) *ClockSystem {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &ClockSystem{events: events, dt: time.Second / time.Duration(tickRate)}
}

// Step returns the fixed tick duration.
func (c *ClockSystem) Step() time.Duration {
	return c.dt
}

func (c *ClockSystem) Update(_ *ecs.World) {
	c.events.Advance(c.dt)
}
