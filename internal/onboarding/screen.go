// Package onboarding is the carousel's view: it renders the step strip at the
// machine's offset, forwards pointer drags into the gesture pipeline and
// exposes the Skip and Get Started controls.
package onboarding

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/onboard/core"
	"github.com/jask/onboard/internal/carousel"
	"github.com/jask/onboard/internal/catalog"
	"github.com/jask/onboard/internal/config"
	"github.com/jask/onboard/internal/gesture"
	"github.com/jask/onboard/internal/logger"
	"github.com/jask/onboard/internal/spring"
)

// FrameMsg asks the screen to advance the settle animation by one frame.
type FrameMsg struct{}

// Options wires a Screen.
type Options struct {
	Catalog *catalog.Catalog
	Config  config.Config
	Keys    *core.KeyRegistry
	Logger  logger.Logger
	// Now stamps mouse events; defaults to time.Now.
	Now func() time.Time
	// Width is the initial strip width in columns, before the first resize.
	Width int
}

// geometry maps terminal cells to platform pixels and pixels to dp.
type geometry struct {
	cellWidth  float64 // px per column
	density    float64 // px per dp
	recognizer gesture.RecognizerConfig
}

func geometryFor(cfg config.Config) geometry {
	def := config.Default()
	g := geometry{cellWidth: cfg.UI.CellWidth, density: cfg.Gesture.Density}
	if g.cellWidth <= 0 {
		g.cellWidth = def.UI.CellWidth
	}
	if g.density <= 0 {
		g.density = def.Gesture.Density
	}
	g.recognizer = gesture.RecognizerConfig{
		CellWidth:      g.cellWidth,
		CellHeight:     cfg.UI.CellHeight,
		TouchSlop:      cfg.Gesture.TouchSlop,
		VelocityWindow: cfg.Gesture.VelocityWindow,
	}
	return g
}

// unit is the dp extent of one step laid out across width columns.
func (g geometry) unit(width int) float64 {
	return float64(max(1, width)) * g.cellWidth / g.density
}

// Screen implements core.Screen.
type Screen struct {
	catalog    *catalog.Catalog
	keys       *core.KeyRegistry
	lggr       logger.Logger
	now        func() time.Time
	geom       geometry
	recognizer *gesture.PanRecognizer
	sampler    *gesture.Sampler
	anim       *spring.Animator
	machine    *carousel.Machine

	// pending holds reloaded geometry until the pointer is released.
	pending *geometry
	width   int
	height  int
	ticking bool
}

func New(opts Options) (*Screen, error) {
	if opts.Catalog == nil {
		return nil, errors.New("onboarding: catalog is required")
	}
	if opts.Keys == nil {
		opts.Keys = core.NewKeyRegistry(core.DefaultKeyBindings())
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	cfg := opts.Config
	geom := geometryFor(cfg)

	anim := spring.New(springParams(cfg.Spring))
	machine, err := carousel.New(carousel.Config{
		Steps:  opts.Catalog.Len(),
		Unit:   geom.unit(opts.Width),
		Tuning: tuning(cfg.Carousel),
	}, anim, opts.Logger.Named("carousel"))
	if err != nil {
		return nil, fmt.Errorf("onboarding: %w", err)
	}

	return &Screen{
		catalog:    opts.Catalog,
		keys:       opts.Keys,
		lggr:       opts.Logger.Named("onboarding"),
		now:        opts.Now,
		geom:       geom,
		recognizer: gesture.NewPanRecognizer(geom.recognizer),
		sampler:    gesture.NewSampler(geom.density),
		anim:       anim,
		machine:    machine,
		width:      opts.Width,
	}, nil
}

func springParams(c config.SpringConfig) spring.Params {
	p := spring.DefaultParams()
	p.Tension = c.Tension
	p.Friction = c.Friction
	p.Mass = c.Mass
	p.FPS = c.FPS
	p.RestDisplacement = c.RestDisplacement
	return p
}

func tuning(c config.CarouselConfig) carousel.Tuning {
	return carousel.Tuning{
		SwipeThreshold:    c.SwipeThreshold,
		VelocityThreshold: c.VelocityThreshold,
		VelocityScale:     c.VelocityScale,
	}
}

func (s *Screen) Scope() string { return core.ScopeOnboarding }

func (s *Screen) Title() string {
	step := s.machine.CurrentStep()
	return fmt.Sprintf("Step %d of %d · %s", step, s.machine.Steps(), s.catalog.Step(step).Title)
}

// CurrentStep is the decided step.
func (s *Screen) CurrentStep() int { return s.machine.CurrentStep() }

// Offset is the strip offset in dp.
func (s *Screen) Offset() float64 { return s.machine.Offset() }

// Phase is the carousel phase.
func (s *Screen) Phase() carousel.Phase { return s.machine.Phase() }

func (s *Screen) lastStep() bool {
	return s.machine.CurrentStep() == s.machine.Steps()
}

// BindingEnabled hides controls that do nothing on the current step.
func (s *Screen) BindingEnabled(action string) bool {
	step := s.machine.CurrentStep()
	switch action {
	case core.ActionGetStarted:
		return s.lastStep()
	case core.ActionSkip, core.ActionNext:
		return step < s.machine.Steps()
	case core.ActionPrevious:
		return step > 1
	default:
		return true
	}
}

func (s *Screen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.feed(s.recognizer.Cancel())
		if !s.applyPending() {
			s.machine.SetUnit(s.geom.unit(msg.Width))
		}
		return s, s.ensureTicking(), false

	case tea.MouseMsg:
		s.feed(s.recognizer.Handle(msg, s.now()))
		s.applyPending()
		return s, s.ensureTicking(), false

	case FrameMsg:
		s.ticking = false
		if s.machine.Advance() {
			return s, s.ensureTicking(), false
		}
		return s, nil, false

	case core.ConfigReloadedMsg:
		s.applyConfig(msg.Config)
		return s, core.StatusCmd("Config reloaded"), false

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil, false
}

func (s *Screen) handleKey(msg tea.KeyMsg) (core.Screen, tea.Cmd, bool) {
	step := s.machine.CurrentStep()
	switch s.keys.Action(msg, s.Scope()) {
	case core.ActionNext:
		if step < s.machine.Steps() {
			s.machine.SkipToStep(step + 1)
		}
	case core.ActionPrevious:
		if step > 1 {
			s.machine.SkipToStep(step - 1)
		}
	case core.ActionSkip:
		if step < s.machine.Steps() {
			s.lggr.Debugw("skip pressed", "from", step)
			s.machine.SkipToStep(s.machine.Steps())
		}
	case core.ActionGetStarted:
		if s.lastStep() {
			s.lggr.Infow("onboarding completed", "steps", s.machine.Steps())
			return s, core.OnboardingCompleteCmd(s.now()), true
		}
	case core.ActionQuit:
		return s, tea.Quit, false
	}
	return s, s.ensureTicking(), false
}

// feed pushes recognizer output through the sampler into the machine.
func (s *Screen) feed(events []gesture.RawEvent) {
	for _, ev := range events {
		sample, ok := s.sampler.Feed(ev)
		if !ok {
			s.lggr.Debugw("gesture event dropped", "phase", ev.Phase.String(), "dropped", s.sampler.Dropped())
			continue
		}
		s.machine.OnGesture(sample)
	}
}

func (s *Screen) ensureTicking() tea.Cmd {
	if s.ticking || s.machine.Phase() != carousel.Animating {
		return nil
	}
	s.ticking = true
	return tea.Tick(s.anim.Interval(), func(time.Time) tea.Msg { return FrameMsg{} })
}

func (s *Screen) applyConfig(cfg config.Config) {
	s.machine.SetTuning(tuning(cfg.Carousel))
	s.anim.SetParams(springParams(cfg.Spring))
	geom := geometryFor(cfg)
	s.pending = &geom
	if !s.applyPending() {
		s.lggr.Debugw("geometry change waits for pointer release")
	}
	s.lggr.Infow("config reloaded",
		"swipe_threshold", cfg.Carousel.SwipeThreshold,
		"velocity_threshold", cfg.Carousel.VelocityThreshold,
		"tension", cfg.Spring.Tension,
		"friction", cfg.Spring.Friction,
	)
}

// applyPending installs reloaded geometry once no press is being tracked. It
// reports whether anything was applied.
func (s *Screen) applyPending() bool {
	if s.pending == nil || s.recognizer.Tracking() {
		return false
	}
	s.geom = *s.pending
	s.pending = nil
	s.recognizer = gesture.NewPanRecognizer(s.geom.recognizer)
	s.sampler.SetDensity(s.geom.density)
	s.machine.SetUnit(s.geom.unit(s.width))
	return true
}
