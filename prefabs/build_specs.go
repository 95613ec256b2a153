package prefabs

import (
	"github.com/milk9111/platformer/controller"
)

// Options combines avatar and model tuning into controller options. Zero
// durations and counts fall back to the controller defaults.
func (p PlayerSpec) Options(m ModelSpec) controller.Options {
	opts := controller.DefaultOptions()
	opts.Config = controller.Config{
		MaxSpeed:         p.MaxSpeed,
		JumpTakeOffSpeed: p.JumpTakeOffSpeed,
		JumpModifier:     m.JumpModifier,
		JumpDeceleration: m.JumpDeceleration,
		DeadZone:         p.DeadZone,
	}
	opts.Bindings = controller.Bindings{
		AxisDeadZone: p.Bindings.AxisDeadZone,
		DualKeyJump:  p.Bindings.DualKeyJump,
	}
	if p.TapTime > 0 {
		opts.TapTime = p.TapTime.Duration()
	}
	if p.Melee.ActiveTime > 0 {
		opts.Melee.ActiveTime = p.Melee.ActiveTime.Duration()
	}
	if p.Melee.MaxCombo > 0 {
		opts.Melee.MaxCombo = p.Melee.MaxCombo
	}
	return opts
}

// Bundle is the full set of specs a running game is built from.
type Bundle struct {
	Player PlayerSpec
	Model  ModelSpec
	Level  LevelSpec
}

// LoadBundle loads player.yaml, model.yaml and the named level.
func LoadBundle(level string) (Bundle, error) {
	var b Bundle
	var err error
	if b.Player, err = LoadPlayerSpec(); err != nil {
		return Bundle{}, err
	}
	if b.Model, err = LoadModelSpec(); err != nil {
		return Bundle{}, err
	}
	if level == "" {
		level = "level.yaml"
	}
	if b.Level, err = LoadLevelSpec(level); err != nil {
		return Bundle{}, err
	}
	return b, nil
}
