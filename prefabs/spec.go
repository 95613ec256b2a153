package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec wraps every validation failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type validator interface {
	Validate() error
}

// loadValidated loads filename and runs the spec's own checks.
func loadValidated[T validator](filename string) (T, error) {
	spec, err := LoadSpec[T](filename)
	if err != nil {
		return spec, err
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("%s: %w", filename, err)
	}
	return spec, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}

// Seconds is a duration written in YAML as float seconds.
type Seconds time.Duration

func (s Seconds) Duration() time.Duration {
	return time.Duration(s)
}

func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	var f float64
	if err := value.Decode(&f); err != nil {
		return fmt.Errorf("duration must be seconds: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid duration: %s", value.Value)
	}
	*s = Seconds(time.Duration(f * float64(time.Second)))
	return nil
}

func (s Seconds) MarshalYAML() (any, error) {
	return time.Duration(s).Seconds(), nil
}

// PlayerSpec tunes the avatar.
type PlayerSpec struct {
	Name             string       `yaml:"name"`
	MaxSpeed         float64      `yaml:"max_speed"`
	JumpTakeOffSpeed float64      `yaml:"jump_take_off_speed"`
	DeadZone         float64      `yaml:"dead_zone"`
	TapTime          Seconds      `yaml:"tap_time"`
	Melee            MeleeSpec    `yaml:"melee"`
	Bindings         BindingsSpec `yaml:"bindings"`
	RespawnDelay     Seconds      `yaml:"respawn_delay"`
	Collider         ColliderSpec `yaml:"collider"`
	Sprite           SpriteSpec   `yaml:"sprite"`
	Hitbox           HitboxSpec   `yaml:"hitbox"`
}

type MeleeSpec struct {
	ActiveTime Seconds `yaml:"active_time"`
	MaxCombo   int     `yaml:"max_combo"`
}

type BindingsSpec struct {
	AxisDeadZone float64 `yaml:"axis_dead_zone"`
	DualKeyJump  bool    `yaml:"dual_key_jump"`
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return loadValidated[PlayerSpec]("player.yaml")
}

func (p PlayerSpec) Validate() error {
	switch {
	case p.MaxSpeed <= 0:
		return invalid("max_speed must be positive, got %v", p.MaxSpeed)
	case p.JumpTakeOffSpeed <= 0:
		return invalid("jump_take_off_speed must be positive, got %v", p.JumpTakeOffSpeed)
	case p.DeadZone < 0 || p.DeadZone >= 1:
		return invalid("dead_zone must be in [0, 1), got %v", p.DeadZone)
	case p.TapTime < 0:
		return invalid("tap_time must not be negative")
	case p.Melee.ActiveTime < 0:
		return invalid("melee.active_time must not be negative")
	case p.Melee.MaxCombo < 0:
		return invalid("melee.max_combo must not be negative, got %d", p.Melee.MaxCombo)
	case p.Bindings.AxisDeadZone < 0 || p.Bindings.AxisDeadZone >= 1:
		return invalid("bindings.axis_dead_zone must be in [0, 1), got %v", p.Bindings.AxisDeadZone)
	case p.RespawnDelay < 0:
		return invalid("respawn_delay must not be negative")
	}
	if err := p.Collider.validate("collider"); err != nil {
		return err
	}
	return nil
}

// ModelSpec holds world-level tuning shared by every avatar.
type ModelSpec struct {
	JumpModifier     float64 `yaml:"jump_modifier"`
	JumpDeceleration float64 `yaml:"jump_deceleration"`
	Gravity          float64 `yaml:"gravity"`
	PixelsPerUnit    float64 `yaml:"pixels_per_unit"`
	TickRate         int     `yaml:"tick_rate"`
}

func LoadModelSpec() (ModelSpec, error) {
	return loadValidated[ModelSpec]("model.yaml")
}

func (m ModelSpec) Validate() error {
	switch {
	case m.JumpModifier <= 0:
		return invalid("jump_modifier must be positive, got %v", m.JumpModifier)
	case m.JumpDeceleration < 0 || m.JumpDeceleration > 1:
		return invalid("jump_deceleration must be in [0, 1], got %v", m.JumpDeceleration)
	case m.Gravity < 0:
		return invalid("gravity must not be negative, got %v", m.Gravity)
	case m.PixelsPerUnit <= 0:
		return invalid("pixels_per_unit must be positive, got %v", m.PixelsPerUnit)
	case m.TickRate < 0:
		return invalid("tick_rate must not be negative, got %d", m.TickRate)
	}
	return nil
}

// LevelSpec lays out a test level in pixels, Y down.
type LevelSpec struct {
	Name       string         `yaml:"name"`
	Width      float64        `yaml:"width"`
	Height     float64        `yaml:"height"`
	Background *YAMLColor     `yaml:"background"`
	Spawn      PointSpec      `yaml:"spawn"`
	Platforms  []PlatformSpec `yaml:"platforms"`
	Dummies    []DummySpec    `yaml:"dummies"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlatformSpec is a static box given by its centre.
type PlatformSpec struct {
	X        float64    `yaml:"x"`
	Y        float64    `yaml:"y"`
	Width    float64    `yaml:"width"`
	Height   float64    `yaml:"height"`
	Friction float64    `yaml:"friction"`
	Color    *YAMLColor `yaml:"color"`
}

type DummySpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health int     `yaml:"health"`
}

// LoadLevelSpec loads a level by file name, e.g. "level.yaml".
func LoadLevelSpec(name string) (LevelSpec, error) {
	return loadValidated[LevelSpec](name)
}

func (l LevelSpec) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return invalid("level %q: size must be positive, got %vx%v", l.Name, l.Width, l.Height)
	}
	if !l.contains(l.Spawn.X, l.Spawn.Y) {
		return invalid("level %q: spawn (%v, %v) outside level", l.Name, l.Spawn.X, l.Spawn.Y)
	}
	for i, p := range l.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return invalid("level %q: platforms[%d] size must be positive", l.Name, i)
		}
	}
	for i, d := range l.Dummies {
		if d.Width <= 0 || d.Height <= 0 {
			return invalid("level %q: dummies[%d] size must be positive", l.Name, i)
		}
		if d.Health <= 0 {
			return invalid("level %q: dummies[%d] health must be positive", l.Name, i)
		}
	}
	return nil
}

func (l LevelSpec) contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= l.Width && y <= l.Height
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

func (c ColliderSpec) validate(field string) error {
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("%s size must be positive, got %vx%v", field, c.Width, c.Height)
	}
	if c.Mass < 0 {
		return invalid("%s.mass must not be negative", field)
	}
	return nil
}

type SpriteSpec struct {
	Color *YAMLColor `yaml:"color"`
}

type HitboxSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Damage  int     `yaml:"damage"`
}

type YAMLColor struct {
	color.Color
}

// RGBA8 converts the colour, falling back to def when unset.
func (c *YAMLColor) RGBA8(def color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return def
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
