// Package output replays processed samples as X pointer actions.
package output

import (
	"fmt"

	"deedles.dev/circscroll/internal/pipeline"
)

// X pointer button numbers.
const (
	ButtonLeft = 1 + iota
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
	ButtonWheelLeft
	ButtonWheelRight
	ButtonBack
	ButtonForward
	ButtonTask
)

type Sender interface {
	Move(dx, dy int)
	Click(button int)
	Button(button int, pressed bool)
}

// Send performs the action described by s. A positive DY scrolls down,
// matching the direction of positive Y motion on screen, and a positive
// DX scrolls right.
func Send(out Sender, s pipeline.Sample) error {
	switch s.Kind {
	case pipeline.KindMove:
		out.Move(int(s.DX), int(s.DY))

	case pipeline.KindScroll:
		// A zero scroll still marks the sample as part of a gesture, but
		// there is nothing to click.
		clicks(out, int(s.DY), ButtonWheelDown, ButtonWheelUp)
		clicks(out, int(s.DX), ButtonWheelRight, ButtonWheelLeft)

	case pipeline.KindButton:
		out.Button(s.Button, s.Pressed)

	default:
		return fmt.Errorf("invalid sample kind: %v", s.Kind)
	}

	return nil
}

func clicks(out Sender, n, pos, neg int) {
	b := pos
	if n < 0 {
		n, b = -n, neg
	}
	for range n {
		out.Click(b)
	}
}
