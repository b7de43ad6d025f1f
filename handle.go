package main

import (
	"context"
	"errors"

	"deedles.dev/circscroll/internal/output"
	"deedles.dev/circscroll/internal/pipeline"
	"deedles.dev/circscroll/internal/xdo"
)

func handle(ctx context.Context, samples <-chan pipeline.Sample) error {
	logger := Logger(ctx)

	do, ok := xdo.New()
	if !ok {
		return errors.New("xdo initialization failed")
	}
	defer do.Close()

	out := xdoSender{do}
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)

		case s, ok := <-samples:
			if !ok {
				logger.Info("no devices left to listen to")
				return nil
			}

			err := output.Send(out, s)
			if err != nil {
				return err
			}
			if s.Kind != pipeline.KindMove {
				logger.Debug("sent", "kind", s.Kind, "dy", s.DY, "button", s.Button, "pressed", s.Pressed)
			}
		}
	}
}

type xdoSender struct {
	do *xdo.Xdo
}

func (s xdoSender) Move(dx, dy int) {
	s.do.MoveRelative(dx, dy)
}

func (s xdoSender) Click(button int) {
	s.do.Click(xdo.CurrentWindow, button)
}

func (s xdoSender) Button(button int, pressed bool) {
	if pressed {
		s.do.MouseDown(xdo.CurrentWindow, button)
		return
	}
	s.do.MouseUp(xdo.CurrentWindow, button)
}
