package simulation

import (
	"container/heap"
	"time"
)

// Timer is a one-shot callback scheduled on a TimerQueue.
type Timer struct {
	at        time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	fired     bool
	index     int
}

// Cancel prevents the timer from firing. Cancelling a fired or already
// cancelled timer is a no-op.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Pending reports whether the timer will still fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.cancelled && !t.fired
}

// At returns the simulated time the timer fires at.
func (t *Timer) At() time.Duration {
	if t == nil {
		return 0
	}
	return t.at
}

// TimerQueue is a delay queue driven by a simulated clock. It is not safe for
// concurrent use; the game loop is the only writer.
type TimerQueue struct {
	now   time.Duration
	seq   uint64
	items timerHeap
}

func NewTimerQueue() *TimerQueue {
	return &TimerQueue{}
}

// Now returns the current simulated time.
func (q *TimerQueue) Now() time.Duration {
	if q == nil {
		return 0
	}
	return q.now
}

// Len returns the number of queued timers, including cancelled ones that have
// not been popped yet.
func (q *TimerQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// After schedules fn to run once delay has elapsed on the simulated clock.
// Negative delays are treated as zero.
func (q *TimerQueue) After(delay time.Duration, fn func()) *Timer {
	if q == nil || fn == nil {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	q.seq++
	t := &Timer{at: q.now + delay, seq: q.seq, fn: fn}
	heap.Push(&q.items, t)
	return t
}

// Advance moves the clock forward by dt and runs every timer that is due, in
// fire-time then scheduling order. Timers scheduled by a callback that fall
// due within the same window also run. Returns the number of callbacks run.
func (q *TimerQueue) Advance(dt time.Duration) int {
	if q == nil {
		return 0
	}
	if dt > 0 {
		q.now += dt
	}
	fired := 0
	for len(q.items) > 0 {
		next := q.items[0]
		if next.at > q.now {
			break
		}
		heap.Pop(&q.items)
		if next.cancelled {
			continue
		}
		next.fired = true
		next.fn()
		fired++
	}
	return fired
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at == h[j].at {
		return h[i].seq < h[j].seq
	}
	return h[i].at < h[j].at
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
