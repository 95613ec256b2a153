package controller

import (
	"time"

	"github.com/milk9111/platformer/simulation"
)

const (
	DefaultAttackActiveTime = 250 * time.Millisecond
	DefaultMaxCombo         = 3
)

// MeleeConfig tunes the attack combo.
type MeleeConfig struct {
	// ActiveTime is how long each combo step keeps its hitbox enabled.
	ActiveTime time.Duration
	// MaxCombo is the last step a chain can reach.
	MaxCombo int
}

func DefaultMeleeConfig() MeleeConfig {
	return MeleeConfig{ActiveTime: DefaultAttackActiveTime, MaxCombo: DefaultMaxCombo}
}

// Melee sequences attack presses into combo steps. Step 0 means idle; while a
// step is active its hitbox is enabled.
type Melee struct {
	timers *simulation.TimerQueue
	cfg    MeleeConfig
	emit   func(kind simulation.Kind, step int)

	step   int
	queued bool
	active *simulation.Timer
}

func NewMelee(timers *simulation.TimerQueue, cfg MeleeConfig, emit func(simulation.Kind, int)) *Melee {
	if emit == nil {
		emit = func(simulation.Kind, int) {}
	}
	m := &Melee{timers: timers, emit: emit}
	m.SetConfig(cfg)
	return m
}

// SetConfig applies new tuning. An in-flight step keeps its original timing.
func (m *Melee) SetConfig(cfg MeleeConfig) {
	if cfg.ActiveTime <= 0 {
		cfg.ActiveTime = DefaultAttackActiveTime
	}
	if cfg.MaxCombo <= 0 {
		cfg.MaxCombo = 1
	}
	m.cfg = cfg
}

// ComboStep returns the active step, or 0 when idle.
func (m *Melee) ComboStep() int {
	return m.step
}

// HitboxActive reports whether the attack collider should be enabled.
func (m *Melee) HitboxActive() bool {
	return m.step > 0
}

// Press handles an attack button-down edge. Pressing during a step queues the
// next one; presses past MaxCombo are dropped.
func (m *Melee) Press() {
	if m.step == 0 {
		m.start(1)
		return
	}
	if m.step < m.cfg.MaxCombo {
		m.queued = true
	}
}

// Cancel ends any active combo immediately.
func (m *Melee) Cancel() {
	if m.step == 0 {
		return
	}
	m.active.Cancel()
	m.active = nil
	m.end()
}

func (m *Melee) start(step int) {
	m.step = step
	m.queued = false
	m.emit(simulation.KindAttack, step)
	m.active = m.timers.After(m.cfg.ActiveTime, m.finish)
}

func (m *Melee) finish() {
	m.active = nil
	if m.queued && m.step < m.cfg.MaxCombo {
		m.start(m.step + 1)
		return
	}
	m.end()
}

func (m *Melee) end() {
	m.step = 0
	m.queued = false
	m.emit(simulation.KindAttackEnd, 0)
}
