// Package scroll turns circular pointer gestures into vertical scrolling.
//
// Each motion sample is reduced to a pseudo-angle (see Angle). While the
// pointer keeps moving faster than the dead zone, the signed change in
// angle between consecutive samples is scaled into a scroll amount, so
// tracing a circle clockwise scrolls one way and counterclockwise the
// other. Dropping below the dead zone ends the gesture.
package scroll

import (
	"math"

	"deedles.dev/circscroll/internal/pipeline"
)

const (
	// Name is the name the converter is registered under.
	Name = "circular_scroll"

	// TrackpadName is an alternate name for the same converter, kept so
	// that pipelines configured with it still resolve.
	TrackpadName = "trackpad_circular_scroll"

	// DefaultSensitivity is the scroll amount produced by a quarter turn.
	DefaultSensitivity = 10

	// MaxSensitivity is the largest sensitivity used. A half turn
	// scaled by it still fits in int32.
	MaxSensitivity = 1 << 16

	// DeadZone is the squared magnitude below which a sample is treated
	// as a pause.
	DeadZone = 25
)

// State tracks a gesture for a single input source. The zero value is an
// inactive gesture.
type State struct {
	Active bool

	// PrevAngle is only meaningful while Active is true.
	PrevAngle uint16
}

func (s *State) Reset() {
	*s = State{}
}

// Track feeds one motion sample into the gesture. It returns ok == false
// if the sample was in the dead zone or started a new gesture. Otherwise
// it returns the scroll amount for the angular change, which may be zero.
// The magnitude of sensitivity is capped at MaxSensitivity.
func (s *State) Track(dx, dy int16, sensitivity int) (scroll int, ok bool) {
	x, y := int64(dx), int64(dy)
	if x*x+y*y < DeadZone {
		s.Active = false
		return 0, false
	}

	angle := Angle(dx, dy)
	if !s.Active {
		s.Active = true
		s.PrevAngle = angle
		return 0, false
	}

	delta := Delta(s.PrevAngle, angle)
	s.PrevAngle = angle

	sensitivity = max(-MaxSensitivity, min(sensitivity, MaxSensitivity))
	return delta * sensitivity / QuarterTurn, true
}

// Converter is a pipeline processor that rewrites motion samples into
// scroll samples while a circular gesture is in progress. A Converter
// is not safe for concurrent use; create one per input source.
type Converter struct {
	sensitivity int
	state       State
}

// New returns a Converter. A non-positive sensitivity selects
// DefaultSensitivity and one above MaxSensitivity is capped.
func New(sensitivity int) *Converter {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	sensitivity = min(sensitivity, MaxSensitivity)
	return &Converter{sensitivity: sensitivity}
}

func (c *Converter) Sensitivity() int { return c.sensitivity }

func (c *Converter) State() State { return c.state }

// Init resets the gesture. It never fails.
func (c *Converter) Init() error {
	c.state.Reset()
	return nil
}

// Process implements the pipeline processing hook. Samples other than
// relative motion are never touched.
func (c *Converter) Process(s *pipeline.Sample) bool {
	if s.Kind != pipeline.KindMove {
		return false
	}

	v, ok := c.state.Track(s.DX, s.DY, c.sensitivity)
	if !ok {
		return false
	}

	s.DX = 0
	s.DY = saturate(v)
	s.Kind = pipeline.KindScroll
	return true
}

func (c *Converter) Descriptor() pipeline.Descriptor {
	return pipeline.Descriptor{
		Name:    Name,
		Process: c.Process,
		Init:    c.Init,
	}
}

// Register adds a converter factory to r under Name and TrackpadName.
func Register(r *pipeline.Registry, sensitivity int) error {
	factory := func() pipeline.Descriptor {
		return New(sensitivity).Descriptor()
	}
	for _, name := range []string{Name, TrackpadName} {
		err := r.Register(name, factory)
		if err != nil {
			return err
		}
	}
	return nil
}

func saturate(v int) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
