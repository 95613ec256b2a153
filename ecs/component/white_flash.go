package component

// WhiteFlash blinks a sprite white for a number of ticks. CombatSystem starts
// it on the target of a hit.
type WhiteFlash struct {
	// Frames left in the whole effect.
	Frames int
	// Interval is the number of ticks between toggles.
	Interval int
	Timer    int
	On       bool
}

// Tick advances the blink by one tick and reports whether the effect is still
// running.
func (f *WhiteFlash) Tick() bool {
	if f.Interval <= 0 {
		f.Interval = 1
	}
	f.Timer++
	if f.Timer >= f.Interval {
		f.Timer = 0
		f.On = !f.On
		f.Frames -= f.Interval
	}
	return f.Frames > 0
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
