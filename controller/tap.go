package controller

import (
	"time"

	"github.com/milk9111/platformer/simulation"
)

// DefaultTapTime is the window that separates a double tap from two single
// taps.
const DefaultTapTime = 300 * time.Millisecond

// TapDirection selects the left or right tap counter.
type TapDirection int8

const (
	TapLeft TapDirection = iota
	TapRight
)

func (d TapDirection) singleKind() simulation.Kind {
	if d == TapLeft {
		return simulation.KindSingleTapLeft
	}
	return simulation.KindSingleTapRight
}

func (d TapDirection) doubleKind() simulation.Kind {
	if d == TapLeft {
		return simulation.KindDoubleTapLeft
	}
	return simulation.KindDoubleTapRight
}

// TapDetector classifies direction presses into single and double taps. A
// single tap is only known once the tap window has passed without a second
// press, so it is reported from a timer on the shared clock.
type TapDetector struct {
	timers  *simulation.TimerQueue
	tapTime time.Duration
	emit    func(simulation.Kind)

	tapping   bool
	lastTap   time.Duration
	hasTapped bool
	counts    [2]int
	pending   *simulation.Timer
}

func NewTapDetector(timers *simulation.TimerQueue, tapTime time.Duration, emit func(simulation.Kind)) *TapDetector {
	if tapTime <= 0 {
		tapTime = DefaultTapTime
	}
	if emit == nil {
		emit = func(simulation.Kind) {}
	}
	return &TapDetector{
		timers:  timers,
		tapTime: tapTime,
		emit:    emit,
	}
}

// SetTapTime changes the tap window for subsequent presses.
func (d *TapDetector) SetTapTime(tapTime time.Duration) {
	if tapTime > 0 {
		d.tapTime = tapTime
	}
}

// Tapping reports whether a single tap is still waiting on its window.
func (d *TapDetector) Tapping() bool {
	return d.tapping
}

// Count returns the presses counted for a direction since its last tap.
func (d *TapDetector) Count(dir TapDirection) int {
	return d.counts[dir]
}

// Press records a press edge for dir.
func (d *TapDetector) Press(dir TapDirection) {
	now := d.timers.Now()
	d.counts[dir]++

	if !d.tapping {
		d.tapping = true
		d.pending = d.timers.After(d.tapTime, func() { d.singleTap(dir) })
	}

	if d.hasTapped && now-d.lastTap < d.tapTime && d.counts[dir] >= 2 {
		d.counts[dir] = 0
		d.tapping = false
		d.pending.Cancel()
		d.pending = nil
		d.emit(dir.doubleKind())
	}

	d.lastTap = now
	d.hasTapped = true
}

func (d *TapDetector) singleTap(dir TapDirection) {
	if !d.tapping {
		return
	}
	d.tapping = false
	d.pending = nil
	// the window closed, so presses counted in it can no longer pair up
	d.counts = [2]int{}
	d.emit(dir.singleKind())
}

// Reset drops any in-flight tap.
func (d *TapDetector) Reset() {
	d.pending.Cancel()
	d.pending = nil
	d.tapping = false
	d.hasTapped = false
	d.counts = [2]int{}
}
