package spring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain steps a until it goes idle and returns every frame produced.
func drain(t *testing.T, a *Animator, max int) []Frame {
	t.Helper()
	var frames []Frame
	for i := 0; i < max; i++ {
		f, ok := a.Step()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
	t.Fatalf("animator still active after %d frames", max)
	return nil
}

func TestParamsDerivation(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, math.Sqrt(300), p.AngularFrequency(), 1e-9)
	assert.InDelta(t, 30/(2*math.Sqrt(300)), p.DampingRatio(), 1e-9)
	assert.Equal(t, time.Second/60, New(p).Interval())

	zero := New(Params{})
	assert.Equal(t, DefaultParams(), zero.Params())
}

func TestRunConvergesMonotonicallyAndCompletesOnce(t *testing.T) {
	a := New(DefaultParams())
	run := a.Start(0, -640, 0)

	frames := drain(t, a, 300)
	require.NotEmpty(t, frames)

	prev := 0.0
	done := 0
	for _, f := range frames {
		assert.Equal(t, run, f.Run)
		assert.LessOrEqual(t, f.Value, prev, "value moved away from target")
		assert.GreaterOrEqual(t, f.Value, -640.0, "value passed target")
		prev = f.Value
		if f.Done {
			done++
		}
	}
	assert.Equal(t, 1, done)
	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.Equal(t, -640.0, last.Value)
	assert.False(t, a.Active())

	_, ok := a.Step()
	assert.False(t, ok, "no frames after completion")
}

func TestLargeVelocityIsClampedAtTarget(t *testing.T) {
	a := New(DefaultParams())
	a.Start(-20, -640, -20000)

	frames := drain(t, a, 300)
	for _, f := range frames {
		assert.GreaterOrEqual(t, f.Value, -640.0)
	}
	assert.True(t, frames[len(frames)-1].Done)
}

func TestVelocityAwayFromTargetIsDiscarded(t *testing.T) {
	a := New(DefaultParams())
	a.Start(-10, 0, -500)

	f, ok := a.Step()
	require.True(t, ok)
	assert.Greater(t, f.Value, -10.0, "first frame should already head to the target")
}

func TestStartReplacesInFlightRun(t *testing.T) {
	a := New(DefaultParams())
	first := a.Start(0, -640, 0)
	for i := 0; i < 3; i++ {
		_, ok := a.Step()
		require.True(t, ok)
	}
	second := a.Start(a.Value(), 0, 0)
	require.NotEqual(t, first, second)

	for _, f := range drain(t, a, 300) {
		assert.Equal(t, second, f.Run, "replaced run must not emit frames")
	}
	assert.Equal(t, 0.0, a.Value())
}

func TestCancelEmitsNoCompletion(t *testing.T) {
	a := New(DefaultParams())
	a.Start(0, -640, 0)
	_, _ = a.Step()
	a.Cancel()

	assert.False(t, a.Active())
	_, ok := a.Step()
	assert.False(t, ok)
}

func TestZeroDistanceCompletesImmediately(t *testing.T) {
	a := New(DefaultParams())
	a.Start(-320, -320, 0)
	frames := drain(t, a, 2)
	require.Len(t, frames, 1)
	assert.True(t, frames[0].Done)
	assert.Equal(t, -320.0, frames[0].Value)
}

func TestMaxDurationStopsSlowSpring(t *testing.T) {
	a := New(Params{Tension: 1e-6, Friction: 1, FPS: 60, MaxDuration: 100 * time.Millisecond})
	a.Start(0, -640, 0)
	frames := drain(t, a, 10)
	assert.Len(t, frames, 6)
	assert.True(t, frames[len(frames)-1].Done)
	assert.Equal(t, -640.0, frames[len(frames)-1].Value)
}
