package evdev

import "math"

// Frame accumulates relative axes between SYN_REPORT events. Devices
// report each axis as a separate event, so a single pointer movement is
// only complete once the sync arrives.
type Frame struct {
	x, y, wheel, hwheel int32
	dropped             bool
}

// Report is the content of one completed frame.
type Report struct {
	DX, DY int16

	// Wheel is positive away from the user. HWheel is positive to the
	// right.
	Wheel, HWheel int16
}

func (r Report) HasMotion() bool {
	return (r.DX != 0) || (r.DY != 0)
}

func (r Report) HasWheel() bool {
	return (r.Wheel != 0) || (r.HWheel != 0)
}

// Add feeds ev into the frame. It returns true when ev completes a frame
// that moved any axis, at which point Take returns the accumulated values.
func (f *Frame) Add(ev InputEvent) (done bool) {
	switch ev.Type {
	case EvRel:
		if f.dropped {
			return false
		}
		switch ev.Code {
		case RelX:
			f.x = addSat(f.x, ev.Value)
		case RelY:
			f.y = addSat(f.y, ev.Value)
		case RelWheel:
			f.wheel = addSat(f.wheel, ev.Value)
		case RelHWheel:
			f.hwheel = addSat(f.hwheel, ev.Value)
		}

	case EvSyn:
		switch ev.Code {
		case SynDropped:
			// Everything up to the next report is unreliable.
			f.Reset()
			f.dropped = true
		case SynReport:
			if f.dropped {
				f.dropped = false
				return false
			}
			return (f.x != 0) || (f.y != 0) || (f.wheel != 0) || (f.hwheel != 0)
		}
	}

	return false
}

// Take returns the completed frame, clamped to int16, and resets it.
func (f *Frame) Take() Report {
	r := Report{
		DX:     clamp16(f.x),
		DY:     clamp16(f.y),
		Wheel:  clamp16(f.wheel),
		HWheel: clamp16(f.hwheel),
	}
	f.Reset()
	return r
}

func (f *Frame) Reset() {
	*f = Frame{}
}

func addSat(a, b int32) int32 {
	s := int64(a) + int64(b)
	switch {
	case s > math.MaxInt32:
		return math.MaxInt32
	case s < math.MinInt32:
		return math.MinInt32
	default:
		return int32(s)
	}
}

func clamp16(v int32) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
