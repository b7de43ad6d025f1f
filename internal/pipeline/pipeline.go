// Package pipeline is the host side of sample processing. Processors are
// registered by name and instantiated once per input source.
package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

type Kind uint8

const (
	KindMove Kind = iota + 1
	KindScroll
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindScroll:
		return "scroll"
	case KindButton:
		return "button"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Sample is a single unit flowing through a Chain. Processors may
// modify it in place but must not keep a reference to it.
type Sample struct {
	Kind   Kind
	DX, DY int16

	// Only meaningful for KindButton.
	Button  int
	Pressed bool
}

type Descriptor struct {
	Name    string
	Process func(*Sample) bool
	Init    func() error
}

type Factory func() Descriptor

type Registry struct {
	factories map[string]Factory
}

func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return errors.New("empty processor name")
	}
	if f == nil {
		return fmt.Errorf("nil factory for processor %q", name)
	}
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("processor %q already registered", name)
	}

	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[name] = f
	return nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build instantiates the named processors in order. Every call produces
// fresh processor state.
func (r *Registry) Build(names ...string) (*Chain, error) {
	stages := make([]Descriptor, 0, len(names))
	for _, name := range names {
		f, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown processor %q", name)
		}

		d := f()
		if d.Process == nil {
			return nil, fmt.Errorf("processor %q has no process function", name)
		}
		d.Name = name
		stages = append(stages, d)
	}

	return &Chain{stages: stages}, nil
}

type Chain struct {
	stages []Descriptor
}

func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.stages))
	for _, s := range c.stages {
		names = append(names, s.Name)
	}
	return slices.Clip(names)
}

// Init runs every stage's lifecycle hook. It is called whenever the
// underlying device is attached.
func (c *Chain) Init() error {
	var errs []error
	for _, s := range c.stages {
		if s.Init == nil {
			continue
		}
		if err := s.Init(); err != nil {
			errs = append(errs, fmt.Errorf("init %q: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Process runs s through every stage and reports whether any of them
// modified it.
func (c *Chain) Process(s *Sample) (modified bool) {
	for _, stage := range c.stages {
		if stage.Process(s) {
			modified = true
		}
	}
	return modified
}
