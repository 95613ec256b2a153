package simulation

import (
	"time"

	"go.uber.org/zap"
)

// Handler consumes a dispatched event.
type Handler func(Event)

// Scheduler queues events on a simulated clock and dispatches them to
// subscribers when they fall due. Dispatch happens only inside Advance, so
// handlers always run on the game loop.
type Scheduler struct {
	timers   *TimerQueue
	handlers map[Kind][]Handler
	any      []Handler
	log      *zap.Logger
}

// NewScheduler creates a scheduler. A nil timer queue gets a private one; pass
// a shared queue so controller timers and events advance on one clock.
func NewScheduler(timers *TimerQueue, log *zap.Logger) *Scheduler {
	if timers == nil {
		timers = NewTimerQueue()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		timers:   timers,
		handlers: make(map[Kind][]Handler),
		log:      log,
	}
}

// Timers returns the clock the scheduler dispatches on.
func (s *Scheduler) Timers() *TimerQueue {
	if s == nil {
		return nil
	}
	return s.timers
}

// Now returns the current simulated time.
func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.timers.Now()
}

// Subscribe registers a handler for one event kind.
func (s *Scheduler) Subscribe(kind Kind, h Handler) {
	if s == nil || h == nil {
		return
	}
	s.handlers[kind] = append(s.handlers[kind], h)
}

// SubscribeAll registers a handler for every event kind.
func (s *Scheduler) SubscribeAll(h Handler) {
	if s == nil || h == nil {
		return
	}
	s.any = append(s.any, h)
}

// Schedule queues evt for dispatch after delay. A zero delay dispatches on the
// next Advance.
func (s *Scheduler) Schedule(evt Event, delay time.Duration) *Timer {
	if s == nil || evt.Kind == KindNone {
		return nil
	}
	return s.timers.After(delay, func() { s.dispatch(evt) })
}

// Advance moves the clock forward by dt and dispatches everything due.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s == nil {
		return 0
	}
	return s.timers.Advance(dt)
}

func (s *Scheduler) dispatch(evt Event) {
	s.log.Debug("dispatch event",
		zap.String("kind", string(evt.Kind)),
		zap.Uint64("entity", evt.Entity),
		zap.Int("step", evt.Step),
		zap.Duration("at", s.timers.Now()),
	)
	for _, h := range s.handlers[evt.Kind] {
		h(evt)
	}
	for _, h := range s.any {
		h(evt)
	}
}
