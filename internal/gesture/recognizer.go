package gesture

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RecognizerConfig describes how terminal cells map to platform pixels and
// when a press becomes a pan.
type RecognizerConfig struct {
	CellWidth      float64       // px per column
	CellHeight     float64       // px per row
	TouchSlop      float64       // px of travel before a pan activates
	VelocityWindow time.Duration // trailing window used to estimate velocity
}

// DefaultRecognizerConfig matches a typical 8x16 terminal cell.
func DefaultRecognizerConfig() RecognizerConfig {
	return RecognizerConfig{
		CellWidth:      8,
		CellHeight:     16,
		TouchSlop:      8,
		VelocityWindow: 100 * time.Millisecond,
	}
}

type recognizerState int

const (
	stateIdle recognizerState = iota
	statePossible
	stateActive
	stateFailed
)

type point struct {
	x  float64
	at time.Time
}

// PanRecognizer is the platform side of the pipeline for terminals: it reads
// single-pointer mouse events and reports a horizontal pan as RawEvents. A
// press whose travel is vertical-dominant fails and reports nothing, leaving
// vertical scrolling to whatever sits inside the step.
type PanRecognizer struct {
	cfg     RecognizerConfig
	state   recognizerState
	originX float64
	originY float64
	recent  []point
}

// NewPanRecognizer returns a recognizer for cfg; zero fields take defaults.
func NewPanRecognizer(cfg RecognizerConfig) *PanRecognizer {
	def := DefaultRecognizerConfig()
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = def.CellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = def.CellHeight
	}
	if cfg.TouchSlop < 0 {
		cfg.TouchSlop = 0
	}
	if cfg.VelocityWindow <= 0 {
		cfg.VelocityWindow = def.VelocityWindow
	}
	return &PanRecognizer{cfg: cfg}
}

// Handle consumes one mouse event observed at time at.
func (r *PanRecognizer) Handle(msg tea.MouseMsg, at time.Time) []RawEvent {
	x := float64(msg.X) * r.cfg.CellWidth
	y := float64(msg.Y) * r.cfg.CellHeight

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		var out []RawEvent
		if r.state == stateActive {
			// A second press without a release means the release was lost.
			out = append(out, RawEvent{Translation: r.translation(), Phase: Cancelled})
		}
		r.state = statePossible
		r.originX, r.originY = x, y
		r.recent = append(r.recent[:0], point{x: x, at: at})
		return out

	case tea.MouseActionMotion:
		switch r.state {
		case statePossible:
			dx, dy := math.Abs(x-r.originX), math.Abs(y-r.originY)
			if math.Max(dx, dy) < r.cfg.TouchSlop || dx == dy {
				r.track(x, at)
				return nil
			}
			if dy > dx {
				r.state = stateFailed
				return nil
			}
			r.state = stateActive
			r.track(x, at)
			return []RawEvent{
				{Phase: Began},
				{Translation: x - r.originX, Velocity: r.velocity(), Phase: Changed},
			}
		case stateActive:
			r.track(x, at)
			return []RawEvent{{Translation: x - r.originX, Velocity: r.velocity(), Phase: Changed}}
		}
		return nil

	case tea.MouseActionRelease:
		prev := r.state
		r.state = stateIdle
		if prev != stateActive {
			return nil
		}
		r.track(x, at)
		return []RawEvent{{Translation: x - r.originX, Velocity: r.velocity(), Phase: Ended}}
	}
	return nil
}

// Cancel aborts an active pan, e.g. when the window is resized mid-drag.
func (r *PanRecognizer) Cancel() []RawEvent {
	prev := r.state
	r.state = stateIdle
	if prev != stateActive {
		return nil
	}
	return []RawEvent{{Translation: r.translation(), Phase: Cancelled}}
}

// Active reports whether a pan has been recognized and not yet finished.
func (r *PanRecognizer) Active() bool {
	return r.state == stateActive
}

// Tracking reports whether a press is held that may still become, or already
// is, a pan.
func (r *PanRecognizer) Tracking() bool {
	return r.state == statePossible || r.state == stateActive
}

func (r *PanRecognizer) translation() float64 {
	if len(r.recent) == 0 {
		return 0
	}
	return r.recent[len(r.recent)-1].x - r.originX
}

func (r *PanRecognizer) track(x float64, at time.Time) {
	r.recent = append(r.recent, point{x: x, at: at})
	cutoff := at.Add(-r.cfg.VelocityWindow)
	i := 0
	for i < len(r.recent)-1 && r.recent[i].at.Before(cutoff) {
		i++
	}
	r.recent = r.recent[i:]
}

// velocity is px/s across the points retained in the window.
func (r *PanRecognizer) velocity() float64 {
	if len(r.recent) < 2 {
		return 0
	}
	first, last := r.recent[0], r.recent[len(r.recent)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) / dt
}
