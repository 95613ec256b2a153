package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/platformer/simulation"
)

type tapRecorder struct {
	kinds []simulation.Kind
}

func (r *tapRecorder) emit(k simulation.Kind) {
	r.kinds = append(r.kinds, k)
}

func TestTapDetector(t *testing.T) {
	type step struct {
		wait  time.Duration
		press *TapDirection
	}
	left, right := TapLeft, TapRight

	tests := []struct {
		name  string
		steps []step
		want  []simulation.Kind
	}{
		{
			name:  "single_left",
			steps: []step{{press: &left}, {wait: 300 * time.Millisecond}},
			want:  []simulation.Kind{simulation.KindSingleTapLeft},
		},
		{
			name:  "single_right_not_before_window",
			steps: []step{{press: &right}, {wait: 299 * time.Millisecond}},
			want:  nil,
		},
		{
			name: "double_left",
			steps: []step{
				{press: &left},
				{wait: 100 * time.Millisecond, press: &left},
				{wait: time.Second},
			},
			want: []simulation.Kind{simulation.KindDoubleTapLeft},
		},
		{
			name: "double_right",
			steps: []step{
				{press: &right},
				{wait: 200 * time.Millisecond, press: &right},
				{wait: time.Second},
			},
			want: []simulation.Kind{simulation.KindDoubleTapRight},
		},
		{
			name: "slow_presses_are_two_singles",
			steps: []step{
				{press: &left},
				{wait: 400 * time.Millisecond, press: &left},
				{wait: 400 * time.Millisecond},
			},
			want: []simulation.Kind{simulation.KindSingleTapLeft, simulation.KindSingleTapLeft},
		},
		{
			name: "mixed_directions_do_not_pair",
			steps: []step{
				{press: &left},
				{wait: 100 * time.Millisecond, press: &right},
				{wait: time.Second},
			},
			want: []simulation.Kind{simulation.KindSingleTapLeft},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := simulation.NewTimerQueue()
			rec := &tapRecorder{}
			d := NewTapDetector(q, DefaultTapTime, rec.emit)

			for _, s := range tc.steps {
				q.Advance(s.wait)
				if s.press != nil {
					d.Press(*s.press)
				}
			}
			assert.Equal(t, tc.want, rec.kinds)
		})
	}
}

func TestTapDetectorDoubleCancelsPendingSingle(t *testing.T) {
	q := simulation.NewTimerQueue()
	rec := &tapRecorder{}
	d := NewTapDetector(q, DefaultTapTime, rec.emit)

	d.Press(TapLeft)
	q.Advance(50 * time.Millisecond)
	d.Press(TapLeft)
	assert.False(t, d.Tapping())
	assert.Equal(t, 0, d.Count(TapLeft))

	// a fresh press after the double tap starts a new window of its own
	q.Advance(50 * time.Millisecond)
	d.Press(TapRight)
	q.Advance(300 * time.Millisecond)

	assert.Equal(t, []simulation.Kind{simulation.KindDoubleTapLeft, simulation.KindSingleTapRight}, rec.kinds)
}

func TestTapDetectorReset(t *testing.T) {
	q := simulation.NewTimerQueue()
	rec := &tapRecorder{}
	d := NewTapDetector(q, 0, rec.emit)

	d.Press(TapRight)
	d.Reset()
	q.Advance(time.Second)

	assert.Empty(t, rec.kinds)
	assert.False(t, d.Tapping())
}
