// Package carousel owns the onboarding carousel state: the discrete step
// index and the continuous strip offset.
//
// Offsets run from 0 (step 1 centred) down to -(N-1)*unit (step N centred).
// A negative drag moves the strip left and advances; a positive drag
// retreats. The Machine is the only writer of its State. Gesture samples and
// spring frames are fed in by the caller, one at a time, on a single
// goroutine.
package carousel

import (
	"fmt"
	"math"

	"github.com/jask/onboard/internal/gesture"
	"github.com/jask/onboard/internal/logger"
	"github.com/jask/onboard/internal/spring"
)

// Phase is the machine's coarse state.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Intent is the discrete outcome of a finished gesture.
type Intent int

const (
	None Intent = iota
	Next
	Previous
)

func (i Intent) String() string {
	switch i {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return "none"
	}
}

// Tuning holds the gesture decision constants.
type Tuning struct {
	SwipeThreshold    float64 // dp
	VelocityThreshold float64 // dp/s
	// VelocityScale converts the release velocity into the spring's
	// initial velocity.
	VelocityScale float64
}

// DefaultTuning is small enough that a short fast flick counts.
func DefaultTuning() Tuning {
	return Tuning{
		SwipeThreshold:    30,
		VelocityThreshold: 300,
		VelocityScale:     1,
	}
}

// Config sizes a Machine.
type Config struct {
	Steps  int     // N
	Unit   float64 // layout extent of one step, dp
	Tuning Tuning
}

// State is a snapshot of the carousel.
type State struct {
	CurrentStep int
	// PendingTarget is the step an animation is heading to, 0 when none.
	PendingTarget int
	Offset        float64
	Phase         Phase
}

// Animator is the spring the machine drives. *spring.Animator satisfies it.
type Animator interface {
	Start(from, to, velocity float64) spring.Run
	Step() (spring.Frame, bool)
	Cancel()
	Active() bool
}

// Machine is the carousel state machine.
type Machine struct {
	n      int
	unit   float64
	tuning Tuning
	anim   Animator
	lggr   logger.Logger

	state State
	run   spring.Run
}

// New returns a machine resting on step 1.
func New(cfg Config, anim Animator, lggr logger.Logger) (*Machine, error) {
	if cfg.Steps < 1 {
		return nil, fmt.Errorf("carousel needs at least one step, got %d", cfg.Steps)
	}
	if cfg.Unit <= 0 || math.IsNaN(cfg.Unit) || math.IsInf(cfg.Unit, 0) {
		return nil, fmt.Errorf("carousel unit must be positive, got %v", cfg.Unit)
	}
	if anim == nil {
		return nil, fmt.Errorf("carousel needs an animator")
	}
	if lggr == nil {
		lggr = logger.Nop()
	}
	return &Machine{
		n:      cfg.Steps,
		unit:   cfg.Unit,
		tuning: normalizeTuning(cfg.Tuning),
		anim:   anim,
		lggr:   lggr,
		state:  State{CurrentStep: 1, Phase: Idle},
	}, nil
}

func normalizeTuning(t Tuning) Tuning {
	def := DefaultTuning()
	if t.SwipeThreshold <= 0 {
		t.SwipeThreshold = def.SwipeThreshold
	}
	if t.VelocityThreshold <= 0 {
		t.VelocityThreshold = def.VelocityThreshold
	}
	if t.VelocityScale < 0 {
		t.VelocityScale = def.VelocityScale
	}
	return t
}

// Decide maps a finished gesture on step of n to an intent. Thresholds are
// inclusive and an intent that would leave [1..n] becomes None.
func Decide(step, n int, translation, velocity float64, t Tuning) Intent {
	switch {
	case (translation <= -t.SwipeThreshold || velocity <= -t.VelocityThreshold) && step < n:
		return Next
	case (translation >= t.SwipeThreshold || velocity >= t.VelocityThreshold) && step > 1:
		return Previous
	default:
		return None
	}
}

// OnGesture consumes one sample. For a terminal sample that is accepted it
// returns the decided intent; otherwise None.
func (m *Machine) OnGesture(s gesture.Sample) Intent {
	switch m.state.Phase {
	case Idle:
		if s.Phase == gesture.Began {
			m.state.Phase = Dragging
			return None
		}
	case Dragging:
		switch s.Phase {
		case gesture.Began:
			// Restarted gesture; the drag continues from the settled offset.
			return None
		case gesture.Changed:
			m.state.Offset = m.clamp(m.settled(m.state.CurrentStep) + s.Translation)
			return None
		case gesture.Ended:
			return m.release(s.Translation, s.Velocity)
		case gesture.Cancelled:
			m.lggr.Debugw("gesture cancelled", "step", m.state.CurrentStep)
			m.animateTo(m.state.CurrentStep, 0)
			return None
		}
	}
	m.lggr.Debugw("gesture ignored", "phase", s.Phase.String(), "state", m.state.Phase.String())
	return None
}

func (m *Machine) release(translation, velocity float64) Intent {
	from := m.state.CurrentStep
	intent := Decide(from, m.n, translation, velocity, m.tuning)
	to := from
	switch intent {
	case Next:
		to++
	case Previous:
		to--
	}
	m.lggr.Debugw("gesture decided",
		"intent", intent.String(),
		"from", from,
		"to", to,
		"translation", translation,
		"velocity", velocity,
	)
	m.state.CurrentStep = to
	m.animateTo(to, velocity*m.tuning.VelocityScale)
	return intent
}

// SkipToStep jumps straight to step n, clamped to [1..N]. From Idle on the
// current step it does nothing. It reports whether an animation started.
func (m *Machine) SkipToStep(n int) bool {
	target := n
	if target < 1 {
		target = 1
	}
	if target > m.n {
		target = m.n
	}
	if target != n {
		m.lggr.Debugw("skip target clamped", "requested", n, "step", target)
	}
	if m.state.Phase == Idle && target == m.state.CurrentStep {
		return false
	}
	m.lggr.Debugw("skip", "from", m.state.CurrentStep, "to", target, "state", m.state.Phase.String())
	m.state.CurrentStep = target
	m.animateTo(target, 0)
	return true
}

func (m *Machine) animateTo(step int, velocity float64) {
	m.state.Phase = Animating
	m.state.PendingTarget = step
	m.run = m.anim.Start(m.state.Offset, m.settled(step), velocity)
}

// Advance consumes one animation frame and reports whether more frames are
// needed.
func (m *Machine) Advance() bool {
	if m.state.Phase != Animating {
		return false
	}
	f, ok := m.anim.Step()
	if !ok || f.Run != m.run {
		m.settle()
		return false
	}
	m.state.Offset = m.clamp(f.Value)
	if f.Done {
		m.settle()
		return false
	}
	return true
}

func (m *Machine) settle() {
	m.state.Phase = Idle
	m.state.PendingTarget = 0
	m.state.Offset = m.settled(m.state.CurrentStep)
	m.lggr.Debugw("settled", "step", m.state.CurrentStep)
}

// SetUnit changes the per-step extent after a layout change.
func (m *Machine) SetUnit(unit float64) {
	if unit <= 0 || math.IsNaN(unit) || math.IsInf(unit, 0) || unit == m.unit {
		return
	}
	scale := unit / m.unit
	m.unit = unit
	switch m.state.Phase {
	case Idle:
		m.state.Offset = m.settled(m.state.CurrentStep)
	case Dragging:
		m.state.Offset = m.clamp(m.state.Offset * scale)
	case Animating:
		m.state.Offset = m.clamp(m.state.Offset * scale)
		m.run = m.anim.Start(m.state.Offset, m.settled(m.state.PendingTarget), 0)
	}
}

// SetTuning replaces the decision constants for subsequent gestures.
func (m *Machine) SetTuning(t Tuning) {
	m.tuning = normalizeTuning(t)
}

// Tuning returns the decision constants in use.
func (m *Machine) Tuning() Tuning {
	return m.tuning
}

// CurrentStep is the decided step, which leads the animation.
func (m *Machine) CurrentStep() int {
	return m.state.CurrentStep
}

// Offset is the strip offset to render this frame.
func (m *Machine) Offset() float64 {
	return m.state.Offset
}

func (m *Machine) Phase() Phase {
	return m.state.Phase
}

func (m *Machine) PendingTarget() int {
	return m.state.PendingTarget
}

func (m *Machine) State() State {
	return m.state
}

// Steps is N.
func (m *Machine) Steps() int {
	return m.n
}

func (m *Machine) Unit() float64 {
	return m.unit
}

// SettledOffset is the resting offset of step.
func (m *Machine) SettledOffset(step int) float64 {
	return m.settled(step)
}

func (m *Machine) settled(step int) float64 {
	if step <= 1 {
		return 0
	}
	return -float64(step-1) * m.unit
}

func (m *Machine) clamp(offset float64) float64 {
	lo := m.settled(m.n)
	switch {
	case math.IsNaN(offset):
		return m.settled(m.state.CurrentStep)
	case offset < lo:
		return lo
	case offset > 0:
		return 0
	default:
		return offset
	}
}
