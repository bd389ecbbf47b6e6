// Package gesture turns platform drag events into a normalized stream of
// horizontal pan samples.
//
// Sign convention: negative translation and velocity point forward (a swipe
// to the left, towards the next step); positive values point backward.
package gesture

// Phase is the lifecycle position of a sample within one gesture.
type Phase int

const (
	Began Phase = iota
	Changed
	Ended
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Changed:
		return "changed"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether p ends a gesture.
func (p Phase) Terminal() bool {
	return p == Ended || p == Cancelled
}

// RawEvent is a drag event as delivered by the platform recognizer, in
// platform pixels along the pagination axis.
type RawEvent struct {
	Translation float64
	Velocity    float64
	Phase       Phase
}

// Sample is a RawEvent converted to device-independent pixels (dp, dp/s).
type Sample struct {
	Translation float64
	Velocity    float64
	Phase       Phase
}

// Sampler normalizes raw events. It tracks only whether a gesture is open;
// nothing is buffered.
type Sampler struct {
	density float64
	active  bool
	dropped int
}

// NewSampler returns a sampler for a display with density platform pixels per dp.
// Non-positive densities are treated as 1.
func NewSampler(density float64) *Sampler {
	if density <= 0 {
		density = 1
	}
	return &Sampler{density: density}
}

// Feed converts ev into a Sample. Events that do not belong to an open
// gesture are dropped and ok is false.
func (s *Sampler) Feed(ev RawEvent) (Sample, bool) {
	switch ev.Phase {
	case Began:
		s.active = true
	case Changed, Ended, Cancelled:
		if !s.active {
			s.dropped++
			return Sample{}, false
		}
		if ev.Phase.Terminal() {
			s.active = false
		}
	default:
		s.dropped++
		return Sample{}, false
	}
	return Sample{
		Translation: ev.Translation / s.density,
		Velocity:    ev.Velocity / s.density,
		Phase:       ev.Phase,
	}, true
}

// Active reports whether a gesture is open.
func (s *Sampler) Active() bool {
	return s.active
}

// Dropped is the number of malformed events discarded so far.
func (s *Sampler) Dropped() int {
	return s.dropped
}

// SetDensity changes the px-per-dp factor for subsequent events.
func (s *Sampler) SetDensity(density float64) {
	if density > 0 {
		s.density = density
	}
}
