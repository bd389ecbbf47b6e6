package carousel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jask/onboard/internal/gesture"
	"github.com/jask/onboard/internal/logger"
	"github.com/jask/onboard/internal/spring"
)

const unit = 400.0

type startCall struct {
	from, to, velocity float64
}

// recordingAnimator records Start calls and wraps a real spring.
type recordingAnimator struct {
	*spring.Animator
	starts []startCall
}

func (r *recordingAnimator) Start(from, to, velocity float64) spring.Run {
	r.starts = append(r.starts, startCall{from: from, to: to, velocity: velocity})
	return r.Animator.Start(from, to, velocity)
}

func newMachine(t *testing.T) (*Machine, *recordingAnimator) {
	t.Helper()
	anim := &recordingAnimator{Animator: spring.New(spring.DefaultParams())}
	m, err := New(Config{Steps: 4, Unit: unit, Tuning: DefaultTuning()}, anim, logger.Test(t))
	require.NoError(t, err)
	return m, anim
}

func settleAll(t *testing.T, m *Machine) int {
	t.Helper()
	frames := 0
	for m.Advance() {
		frames++
		checkInvariants(t, m)
		if frames > 1000 {
			t.Fatalf("animation did not settle")
		}
	}
	checkInvariants(t, m)
	return frames
}

func checkInvariants(t *testing.T, m *Machine) {
	t.Helper()
	off := m.Offset()
	if off > 0 || off < -float64(m.Steps()-1)*m.Unit() {
		t.Fatalf("offset %v out of range", off)
	}
	if m.Phase() == Idle {
		if want := -float64(m.CurrentStep()-1) * m.Unit(); off != want {
			t.Fatalf("idle offset = %v, want %v for step %d", off, want, m.CurrentStep())
		}
		if m.PendingTarget() != 0 {
			t.Fatalf("idle with pending target %d", m.PendingTarget())
		}
	}
}

func swipe(m *Machine, translation, velocity float64) Intent {
	m.OnGesture(gesture.Sample{Phase: gesture.Began})
	m.OnGesture(gesture.Sample{Translation: translation, Velocity: velocity, Phase: gesture.Changed})
	return m.OnGesture(gesture.Sample{Translation: translation, Velocity: velocity, Phase: gesture.Ended})
}

func TestNewValidates(t *testing.T) {
	anim := spring.New(spring.DefaultParams())
	_, err := New(Config{Steps: 0, Unit: unit}, anim, nil)
	require.Error(t, err)
	_, err = New(Config{Steps: 4, Unit: 0}, anim, nil)
	require.Error(t, err)
	_, err = New(Config{Steps: 4, Unit: unit}, nil, nil)
	require.Error(t, err)

	m, err := New(Config{Steps: 4, Unit: unit}, anim, nil)
	require.NoError(t, err)
	assert.Equal(t, State{CurrentStep: 1, Phase: Idle}, m.State())
	assert.Equal(t, DefaultTuning(), m.Tuning())
}

func TestTranslationPastThresholdAdvances(t *testing.T) {
	m, anim := newMachine(t)

	intent := swipe(m, -40, 0)
	assert.Equal(t, Next, intent)
	assert.Equal(t, 2, m.CurrentStep(), "step updates before the animation completes")
	assert.Equal(t, Animating, m.Phase())
	assert.Equal(t, 2, m.PendingTarget())
	require.Len(t, anim.starts, 1)
	assert.Equal(t, startCall{from: -40, to: -unit, velocity: 0}, anim.starts[0])

	settleAll(t, m)
	assert.Equal(t, Idle, m.Phase())
	assert.Equal(t, -unit, m.Offset())
}

func TestFastFlickAdvancesDespiteSmallTranslation(t *testing.T) {
	m, anim := newMachine(t)
	require.True(t, m.SkipToStep(2))
	settleAll(t, m)

	intent := swipe(m, -10, -500)
	assert.Equal(t, Next, intent)
	assert.Equal(t, 3, m.CurrentStep())
	last := anim.starts[len(anim.starts)-1]
	assert.Equal(t, -2*unit, last.to)
	assert.Equal(t, -500.0, last.velocity, "release velocity seeds the spring")

	settleAll(t, m)
	assert.Equal(t, -2*unit, m.Offset())
}

func TestBelowThresholdsSnapsBack(t *testing.T) {
	m, anim := newMachine(t)
	require.True(t, m.SkipToStep(2))
	settleAll(t, m)

	intent := swipe(m, -10, -50)
	assert.Equal(t, None, intent)
	assert.Equal(t, 2, m.CurrentStep())
	assert.Equal(t, -unit, anim.starts[len(anim.starts)-1].to)

	settleAll(t, m)
	assert.Equal(t, -unit, m.Offset())
}

func TestBackwardSwipeRetreats(t *testing.T) {
	m, _ := newMachine(t)
	m.SkipToStep(3)
	settleAll(t, m)

	assert.Equal(t, Previous, swipe(m, 35, 0))
	assert.Equal(t, 2, m.CurrentStep())
	settleAll(t, m)

	assert.Equal(t, Previous, swipe(m, 5, 400))
	assert.Equal(t, 1, m.CurrentStep())
	settleAll(t, m)
}

func TestBoundaryIntentsBecomeNone(t *testing.T) {
	m, _ := newMachine(t)

	assert.Equal(t, None, swipe(m, 200, 2000), "no previous from step 1")
	assert.Equal(t, 1, m.CurrentStep())
	settleAll(t, m)

	m.SkipToStep(4)
	settleAll(t, m)
	assert.Equal(t, None, swipe(m, -200, -2000), "no next from step N")
	assert.Equal(t, 4, m.CurrentStep())
	settleAll(t, m)
}

func TestDecideIsInclusive(t *testing.T) {
	tune := DefaultTuning()
	assert.Equal(t, Next, Decide(1, 4, -30, 0, tune))
	assert.Equal(t, Next, Decide(1, 4, 0, -300, tune))
	assert.Equal(t, Previous, Decide(2, 4, 30, 0, tune))
	assert.Equal(t, Previous, Decide(2, 4, 0, 300, tune))
	assert.Equal(t, None, Decide(2, 4, -29.9, -299, tune))
	// Forward wins when a drag and its velocity disagree.
	assert.Equal(t, Next, Decide(2, 4, -40, 500, tune))
	// At N the forward drag falls through to the backward check.
	assert.Equal(t, Previous, Decide(4, 4, -40, 500, tune))
}

func TestDragClampsOverscroll(t *testing.T) {
	m, _ := newMachine(t)
	m.OnGesture(gesture.Sample{Phase: gesture.Began})
	assert.Equal(t, Dragging, m.Phase())
	assert.Equal(t, 0.0, m.Offset(), "began does not move the strip")

	m.OnGesture(gesture.Sample{Translation: 150, Phase: gesture.Changed})
	assert.Equal(t, 0.0, m.Offset())

	m.OnGesture(gesture.Sample{Translation: -10000, Phase: gesture.Changed})
	assert.Equal(t, -3*unit, m.Offset())

	m.OnGesture(gesture.Sample{Translation: -120, Phase: gesture.Changed})
	assert.Equal(t, -120.0, m.Offset())
	checkInvariants(t, m)
}

func TestCancelledSnapsBack(t *testing.T) {
	m, anim := newMachine(t)
	m.OnGesture(gesture.Sample{Phase: gesture.Began})
	m.OnGesture(gesture.Sample{Translation: -300, Velocity: -900, Phase: gesture.Changed})
	m.OnGesture(gesture.Sample{Translation: -300, Velocity: -900, Phase: gesture.Cancelled})

	assert.Equal(t, Animating, m.Phase())
	assert.Equal(t, 1, m.CurrentStep())
	assert.Equal(t, startCall{from: -300, to: 0, velocity: 0}, anim.starts[0])
	settleAll(t, m)
	assert.Equal(t, 0.0, m.Offset())
}

func TestGestureIgnoredWhileAnimating(t *testing.T) {
	m, anim := newMachine(t)
	swipe(m, -40, 0)
	require.Equal(t, Animating, m.Phase())
	m.Advance()

	before := m.State()
	m.OnGesture(gesture.Sample{Phase: gesture.Began})
	m.OnGesture(gesture.Sample{Translation: -300, Phase: gesture.Changed})
	assert.Equal(t, None, m.OnGesture(gesture.Sample{Translation: -300, Velocity: -900, Phase: gesture.Ended}))

	assert.Equal(t, before, m.State())
	assert.Len(t, anim.starts, 1, "no second animation")
	settleAll(t, m)
	assert.Equal(t, 2, m.CurrentStep())
}

func TestStraySamplesInIdleAreIgnored(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.DebugLevel)
	m, err := New(Config{Steps: 4, Unit: unit}, spring.New(spring.DefaultParams()), lggr)
	require.NoError(t, err)

	m.OnGesture(gesture.Sample{Translation: -80, Phase: gesture.Changed})
	m.OnGesture(gesture.Sample{Translation: -80, Velocity: -900, Phase: gesture.Ended})
	assert.Equal(t, State{CurrentStep: 1, Phase: Idle}, m.State())
	assert.Equal(t, 2, logs.FilterMessage("gesture ignored").Len())
}

func TestSkipToStep(t *testing.T) {
	m, anim := newMachine(t)

	assert.False(t, m.SkipToStep(1), "skip to the current step while idle is a no-op")
	assert.Equal(t, Idle, m.Phase())
	assert.Empty(t, anim.starts)

	assert.True(t, m.SkipToStep(4))
	assert.Equal(t, 4, m.CurrentStep())
	assert.Equal(t, Animating, m.Phase())
	assert.Equal(t, -3*unit, anim.starts[0].to)
	settleAll(t, m)
	assert.Equal(t, -3*unit, m.Offset())

	assert.True(t, m.SkipToStep(-5), "out of range clamps to step 1")
	assert.Equal(t, 1, m.CurrentStep())
	settleAll(t, m)

	m.SkipToStep(99)
	assert.Equal(t, 4, m.CurrentStep())
	settleAll(t, m)
}

func TestSkipDuringDragBypassesDecision(t *testing.T) {
	m, _ := newMachine(t)
	m.OnGesture(gesture.Sample{Phase: gesture.Began})
	m.OnGesture(gesture.Sample{Translation: -60, Phase: gesture.Changed})

	require.True(t, m.SkipToStep(4))
	assert.Equal(t, Animating, m.Phase())
	assert.Equal(t, None, m.OnGesture(gesture.Sample{Translation: -60, Phase: gesture.Ended}), "the abandoned drag cannot decide")
	settleAll(t, m)
	assert.Equal(t, 4, m.CurrentStep())
}

func TestSkipWhileAnimatingReplacesRun(t *testing.T) {
	m, anim := newMachine(t)
	swipe(m, -40, 0)
	m.Advance()
	m.Advance()

	require.True(t, m.SkipToStep(4))
	assert.Equal(t, 4, m.PendingTarget())
	require.Len(t, anim.starts, 2)
	assert.Equal(t, m.Offset(), anim.starts[1].from, "replacement starts where the strip is")
	settleAll(t, m)
	assert.Equal(t, 4, m.CurrentStep())
	assert.Equal(t, -3*unit, m.Offset())
}

func TestSetUnit(t *testing.T) {
	m, _ := newMachine(t)
	m.SkipToStep(3)
	settleAll(t, m)

	m.SetUnit(200)
	assert.Equal(t, -400.0, m.Offset())
	checkInvariants(t, m)

	m.SetUnit(-1)
	assert.Equal(t, 200.0, m.Unit())

	swipe(m, -40, 0)
	m.Advance()
	m.SetUnit(100)
	assert.Equal(t, Animating, m.Phase())
	settleAll(t, m)
	assert.Equal(t, -300.0, m.Offset())
}

func TestSetTuningAffectsNextDecision(t *testing.T) {
	m, _ := newMachine(t)
	m.SetTuning(Tuning{SwipeThreshold: 100, VelocityThreshold: 1000, VelocityScale: 0.5})
	assert.Equal(t, None, swipe(m, -40, -500))
	settleAll(t, m)
	assert.Equal(t, Next, swipe(m, -120, -500))
}

func TestVelocityScaleSeedsSpring(t *testing.T) {
	m, anim := newMachine(t)
	m.SetTuning(Tuning{SwipeThreshold: 30, VelocityThreshold: 300, VelocityScale: 0.25})
	swipe(m, -40, -800)
	assert.Equal(t, -200.0, anim.starts[0].velocity)
}

// Random gesture and skip sequences never break the offset invariants.
func TestInvariantsHoldUnderRandomInput(t *testing.T) {
	m, _ := newMachine(t)
	rng := rand.New(rand.NewSource(7))
	phases := []gesture.Phase{gesture.Began, gesture.Changed, gesture.Changed, gesture.Ended, gesture.Cancelled}

	for i := 0; i < 5000; i++ {
		switch rng.Intn(10) {
		case 0:
			m.SkipToStep(rng.Intn(8) - 2)
		case 1, 2, 3:
			m.Advance()
		default:
			m.OnGesture(gesture.Sample{
				Translation: (rng.Float64() - 0.5) * 4 * unit,
				Velocity:    (rng.Float64() - 0.5) * 3000,
				Phase:       phases[rng.Intn(len(phases))],
			})
		}
		checkInvariants(t, m)
		if step := m.CurrentStep(); step < 1 || step > 4 {
			t.Fatalf("step %d out of range", step)
		}
	}
	// Whatever was in flight resolves to a consistent idle state.
	if m.Phase() == Dragging {
		m.OnGesture(gesture.Sample{Phase: gesture.Cancelled})
	}
	settleAll(t, m)
	assert.Equal(t, Idle, m.Phase())
}
