// Package spring drives a scalar from one value to another with a damped
// spring, one display frame at a time.
package spring

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Params configures the spring. Tension and friction follow the usual
// mass-spring-damper reading: stiffness and damping coefficient.
type Params struct {
	Tension  float64
	Friction float64
	Mass     float64
	FPS      int
	// RestDisplacement is how close to the target a value must get before
	// the run completes.
	RestDisplacement float64
	// MaxDuration bounds a run; the value snaps to the target when exceeded.
	MaxDuration time.Duration
}

// DefaultParams is a near-critically damped spring (damping ratio ~0.87).
func DefaultParams() Params {
	return Params{
		Tension:          300,
		Friction:         30,
		Mass:             1,
		FPS:              60,
		RestDisplacement: 0.5,
		MaxDuration:      5 * time.Second,
	}
}

func (p Params) normalized() Params {
	def := DefaultParams()
	if p.Tension <= 0 {
		p.Tension = def.Tension
	}
	if p.Friction <= 0 {
		p.Friction = def.Friction
	}
	if p.Mass <= 0 {
		p.Mass = def.Mass
	}
	if p.FPS <= 0 {
		p.FPS = def.FPS
	}
	if p.RestDisplacement <= 0 {
		p.RestDisplacement = def.RestDisplacement
	}
	if p.MaxDuration <= 0 {
		p.MaxDuration = def.MaxDuration
	}
	return p
}

// AngularFrequency is sqrt(k/m).
func (p Params) AngularFrequency() float64 {
	p = p.normalized()
	return math.Sqrt(p.Tension / p.Mass)
}

// DampingRatio is c / (2*sqrt(k*m)).
func (p Params) DampingRatio() float64 {
	p = p.normalized()
	return p.Friction / (2 * math.Sqrt(p.Tension*p.Mass))
}

// Run identifies one Start call.
type Run uint64

// Frame is one emitted value. Done is set on exactly one frame per run that
// is not replaced or cancelled.
type Frame struct {
	Run      Run
	Value    float64
	Velocity float64
	Done     bool
}

// Animator holds the transient state of a single in-flight run. It never
// owns the value it animates; callers feed it a start point and read frames.
type Animator struct {
	params Params
	spring harmonica.Spring

	run    Run
	active bool
	from   float64
	to     float64
	pos    float64 // spring position, may overshoot
	vel    float64
	value  float64 // last emitted, monotone towards to
	frames int
	limit  int
}

// New returns an idle animator.
func New(p Params) *Animator {
	a := &Animator{}
	a.SetParams(p)
	return a
}

// SetParams replaces the spring parameters. An in-flight run keeps going
// with the new spring from its current position.
func (a *Animator) SetParams(p Params) {
	p = p.normalized()
	a.params = p
	a.spring = harmonica.NewSpring(harmonica.FPS(p.FPS), p.AngularFrequency(), p.DampingRatio())
	a.limit = int((p.MaxDuration*time.Duration(p.FPS) + time.Second - 1) / time.Second)
}

// Params returns the normalized parameters in use.
func (a *Animator) Params() Params {
	return a.params
}

// Start begins a run from from to to. Any run in flight is replaced and will
// never report Done. A velocity pointing away from to is discarded.
func (a *Animator) Start(from, to, velocity float64) Run {
	a.run++
	a.active = true
	a.from, a.to = from, to
	a.pos, a.value = from, from
	a.frames = 0
	if (to-from)*velocity <= 0 {
		velocity = 0
	}
	a.vel = velocity
	return a.run
}

// Step advances the active run by one frame. ok is false when no run is active.
func (a *Animator) Step() (Frame, bool) {
	if !a.active {
		return Frame{}, false
	}
	a.frames++
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.to)

	dir := a.to - a.from
	next := a.pos
	switch {
	case dir == 0:
		next = a.to
	case (a.to-next)*dir < 0:
		// Overshot: hold at the target.
		next = a.to
	case (next-a.value)*dir < 0:
		// Moving away from the target: hold.
		next = a.value
	}
	a.value = next

	if math.Abs(a.to-a.value) <= a.params.RestDisplacement || a.frames >= a.limit {
		a.value = a.to
		a.active = false
		return Frame{Run: a.run, Value: a.to, Done: true}, true
	}
	return Frame{Run: a.run, Value: a.value, Velocity: a.vel}, true
}

// Cancel stops the active run without completing it.
func (a *Animator) Cancel() {
	a.active = false
}

// Active reports whether a run is in flight.
func (a *Animator) Active() bool {
	return a.active
}

// Target is the destination of the current or last run.
func (a *Animator) Target() float64 {
	return a.to
}

// Value is the last emitted value.
func (a *Animator) Value() float64 {
	return a.value
}

// Interval is the duration of one frame.
func (a *Animator) Interval() time.Duration {
	return time.Second / time.Duration(a.params.FPS)
}
