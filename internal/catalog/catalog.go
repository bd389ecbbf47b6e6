// Package catalog holds the ordered, immutable sequence of onboarding steps.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrNoSteps is returned when a catalog document defines no steps.
var ErrNoSteps = errors.New("no steps defined in catalog")

// Step is the content of one onboarding page. It carries no behaviour.
type Step struct {
	Title         string   `toml:"title"`
	ImageRef      string   `toml:"image_ref"`
	Heading       string   `toml:"heading"`
	Description   string   `toml:"description"`
	ShowChecklist bool     `toml:"show_checklist"`
	Checklist     []string `toml:"checklist"`
}

type catalogFile struct {
	Step []Step `toml:"step"`
}

// Catalog is an ordered sequence of steps indexed from 1.
type Catalog struct {
	steps []Step
}

const defaultCatalogTOML = `# Onboarding steps, shown in order.

[[step]]
title = "Welcome"
image_ref = "welcome"
heading = "Welcome aboard"
description = "A short tour of the basics. It takes less than a minute."

[[step]]
title = "Navigate"
image_ref = "navigate"
heading = "Move at your own pace"
description = "Drag sideways with the mouse or use the arrow keys to change pages."

[[step]]
title = "Customise"
image_ref = "customise"
heading = "Make it yours"
description = "Settings live in a TOML file. Run onboard config init to write one you can edit."

[[step]]
title = "Ready"
image_ref = "ready"
heading = "You're all set"
description = "A few things to try next:"
show_checklist = true
checklist = ["Write a config file", "Tune the swipe thresholds", "Add your own steps with onboard catalog init"]
`

// New builds a catalog from steps. The slice is copied.
func New(steps []Step) (*Catalog, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	for i, s := range steps {
		if strings.TrimSpace(s.Title) == "" {
			return nil, fmt.Errorf("step[%d]: title is required", i+1)
		}
		if strings.TrimSpace(s.Heading) == "" {
			return nil, fmt.Errorf("step[%d] %q: heading is required", i+1, s.Title)
		}
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Checklist = append([]string(nil), s.Checklist...)
		out[i] = s
	}
	return &Catalog{steps: out}, nil
}

// Default returns the built-in four step catalog.
func Default() *Catalog {
	c, err := Parse([]byte(defaultCatalogTOML))
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// DefaultTOML returns the built-in catalog document.
func DefaultTOML() []byte {
	return []byte(defaultCatalogTOML)
}

// Parse decodes and validates a TOML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Step)
}

// Load reads the catalog at path. An empty path yields the default catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode renders the catalog as a TOML document accepted by Parse.
func (c *Catalog) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(catalogFile{Step: c.Steps()}); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Len is the number of steps, N.
func (c *Catalog) Len() int {
	return len(c.steps)
}

// Step returns step n (1-based). Out of range ordinals clamp to the nearest step.
func (c *Catalog) Step(n int) Step {
	if n < 1 {
		n = 1
	}
	if n > len(c.steps) {
		n = len(c.steps)
	}
	return c.steps[n-1]
}

// Steps returns a copy of all steps in order.
func (c *Catalog) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}
