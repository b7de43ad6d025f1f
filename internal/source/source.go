// Package source turns the raw event stream of one input device into
// processed pipeline samples.
package source

import (
	"fmt"
	"math"

	"deedles.dev/circscroll/internal/evdev"
	"deedles.dev/circscroll/internal/output"
	"deedles.dev/circscroll/internal/pipeline"
)

// Source holds the per-device state. It is not safe for concurrent use.
type Source struct {
	chain *pipeline.Chain
	frame evdev.Frame
	out   []pipeline.Sample

	// Forward makes Feed return every sample rather than only the ones
	// the chain modified. It is used when the device is grabbed and
	// nothing else sees its raw events.
	Forward bool
}

func New(chain *pipeline.Chain, forward bool) *Source {
	return &Source{chain: chain, Forward: forward}
}

// Attach resets per-attachment state. It must be called every time the
// underlying device is (re)opened.
func (s *Source) Attach() error {
	s.frame.Reset()
	return s.chain.Init()
}

// Feed handles one event and returns the samples that should be sent
// downstream. The returned slice is only valid until the next call.
func (s *Source) Feed(ev evdev.InputEvent) ([]pipeline.Sample, error) {
	s.out = s.out[:0]

	switch {
	case ev.Type == evdev.EvKey:
		s.button(ev)
		return s.out, nil

	case ev.Is(evdev.EvSyn, evdev.SynDropped):
		// A gesture can't be continued across lost events.
		err := s.chain.Init()
		if err != nil {
			return nil, fmt.Errorf("reset processors: %w", err)
		}
	}

	if !s.frame.Add(ev) {
		return s.out, nil
	}

	r := s.frame.Take()
	if r.HasMotion() {
		s.process(pipeline.Sample{Kind: pipeline.KindMove, DX: r.DX, DY: r.DY})
	}
	if r.HasWheel() {
		s.process(pipeline.Sample{Kind: pipeline.KindScroll, DX: r.HWheel, DY: negate(r.Wheel)})
	}
	return s.out, nil
}

func (s *Source) process(sample pipeline.Sample) {
	modified := s.chain.Process(&sample)
	if modified || s.Forward {
		s.out = append(s.out, sample)
	}
}

func (s *Source) button(ev evdev.InputEvent) {
	b, ok := buttons[ev.Code]
	if !ok || (ev.Value > 1) {
		return
	}

	s.process(pipeline.Sample{
		Kind:    pipeline.KindButton,
		Button:  b,
		Pressed: ev.Value == 1,
	})
}

// buttons maps evdev button codes to X button numbers.
var buttons = map[uint16]int{
	evdev.BtnLeft:    output.ButtonLeft,
	evdev.BtnMiddle:  output.ButtonMiddle,
	evdev.BtnRight:   output.ButtonRight,
	evdev.BtnSide:    output.ButtonBack,
	evdev.BtnBack:    output.ButtonBack,
	evdev.BtnExtra:   output.ButtonForward,
	evdev.BtnForward: output.ButtonForward,
	evdev.BtnTask:    output.ButtonTask,
}

// negate flips a wheel value, which counts away from the user, into
// scroll direction, which counts down the screen.
func negate(v int16) int16 {
	if v == math.MinInt16 {
		return math.MaxInt16
	}
	return -v
}
