package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/simulation"
)

var errEmptyTrace = errors.New("jumptrace: trace has no ticks")

// Trace is a scripted input sequence replayed through one controller.
type Trace struct {
	// TickRate defaults to the model spec's.
	TickRate int `yaml:"tick_rate"`
	// Simulate integrates a flat-floor ballistic model so ticks need not
	// script grounded and velocity themselves.
	Simulate bool        `yaml:"simulate"`
	Ticks    []TraceTick `yaml:"ticks"`
}

// TraceTick is one step of input. Repeat runs it several times.
type TraceTick struct {
	Repeat int `yaml:"repeat"`

	Axis         float64 `yaml:"axis"`
	Left         bool    `yaml:"left"`
	Right        bool    `yaml:"right"`
	LeftPressed  bool    `yaml:"left_pressed"`
	RightPressed bool    `yaml:"right_pressed"`
	Jump         bool    `yaml:"jump"`
	JumpPressed  bool    `yaml:"jump_pressed"`
	JumpReleased bool    `yaml:"jump_released"`
	Attack       bool    `yaml:"attack"`

	// Grounded and VelocityY override the simulated values when set.
	Grounded  *bool    `yaml:"grounded"`
	VelocityY *float64 `yaml:"velocity_y"`
}

func (t TraceTick) raw() controller.RawInput {
	return controller.RawInput{
		Axis:          t.Axis,
		Left:          t.Left,
		Right:         t.Right,
		LeftPressed:   t.LeftPressed,
		RightPressed:  t.RightPressed,
		Jump:          t.Jump,
		JumpPressed:   t.JumpPressed,
		JumpReleased:  t.JumpReleased,
		AttackPressed: t.Attack,
	}
}

func LoadTrace(r io.Reader) (Trace, error) {
	var tr Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tr); err != nil {
		return Trace{}, fmt.Errorf("jumptrace: decode: %w", err)
	}
	if len(tr.Ticks) == 0 {
		return Trace{}, errEmptyTrace
	}
	return tr, nil
}

func LoadTraceFile(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trace{}, fmt.Errorf("jumptrace: %w", err)
	}
	defer f.Close()
	return LoadTrace(f)
}

// Row is the observable result of one replayed tick.
type Row struct {
	Tick      int
	Time      time.Duration
	State     controller.JumpState
	Grounded  bool
	TargetX   float64
	VelocityY float64
	Facing    controller.Facing
	Height    float64
	Events    []simulation.Kind
}

func (r Row) String() string {
	events := "-"
	if len(r.Events) > 0 {
		parts := make([]string, len(r.Events))
		for i, k := range r.Events {
			parts[i] = string(k)
		}
		events = strings.Join(parts, ",")
	}
	return fmt.Sprintf("%4d %8s %-16s grounded=%-5t vx=%6.2f vy=%7.3f h=%6.3f %-5s %s",
		r.Tick, r.Time, r.State, r.Grounded, r.TargetX, r.VelocityY, r.Height, r.Facing, events)
}

// body is the flat-floor stand-in for the physics collaborator.
type body struct {
	height   float64
	vy       float64
	grounded bool
}

func (b *body) step(vy, gravity, dt float64) {
	b.vy = vy - gravity*dt
	b.height += b.vy * dt
	if b.height <= 0 {
		b.height = 0
		if b.vy < 0 {
			b.vy = 0
		}
		b.grounded = true
		return
	}
	b.grounded = false
}

// Replay runs the trace through a fresh controller and returns one row per
// tick. Events are reported on the tick they were raised.
func Replay(tr Trace, opts controller.Options, model prefabs.ModelSpec) ([]Row, error) {
	if len(tr.Ticks) == 0 {
		return nil, errEmptyTrace
	}
	rate := tr.TickRate
	if rate <= 0 {
		rate = model.TickRate
	}
	if rate <= 0 {
		rate = 60
	}
	dt := time.Second / time.Duration(rate)

	timers := simulation.NewTimerQueue()
	c := controller.New(timers, opts)
	b := &body{grounded: true}

	var rows []Row
	n := 0
	for _, tick := range tr.Ticks {
		repeat := tick.Repeat
		if repeat <= 0 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			timers.Advance(dt)

			in := controller.TickInput{Raw: tick.raw(), Grounded: b.grounded, VelocityY: b.vy}
			if !tr.Simulate {
				in.Grounded, in.VelocityY = false, 0
			}
			if tick.Grounded != nil {
				in.Grounded = *tick.Grounded
			}
			if tick.VelocityY != nil {
				in.VelocityY = *tick.VelocityY
			}

			out := c.Tick(in)
			if tr.Simulate {
				b.step(out.Velocity.Y, model.Gravity, dt.Seconds())
			}

			row := Row{
				Tick:      n,
				Time:      timers.Now(),
				State:     out.State,
				Grounded:  in.Grounded,
				TargetX:   out.Velocity.TargetX,
				VelocityY: out.Velocity.Y,
				Facing:    out.Facing,
				Height:    b.height,
			}
			for _, evt := range out.Events {
				row.Events = append(row.Events, evt.Kind)
			}
			rows = append(rows, row)
			n++
		}
	}
	return rows, nil
}
