package main

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"deedles.dev/circscroll/internal/evdev"
	"deedles.dev/circscroll/internal/pipeline"
	"deedles.dev/circscroll/internal/source"
	"golang.org/x/sys/unix"
)

type Listener struct {
	Device string
	Chain  *pipeline.Chain
	Grab   bool
	C      chan<- pipeline.Sample
	Retry  time.Duration
}

func (lis Listener) Run(ctx context.Context) error {
	logger := Logger(ctx).With("device", lis.Device)
	ctx = WithLogger(ctx, logger)

	src := source.New(lis.Chain, lis.Grab)
	for {
		retry, err := lis.listen(ctx, src)
		if (lis.Retry <= 0) || !retry {
			return err
		}

		logger.Info("waiting before retrying", "duration", lis.Retry, slogErr(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lis.Retry):
		}
	}
}

func (lis *Listener) listen(ctx context.Context, src *source.Source) (retry bool, err error) {
	logger := Logger(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d, err := evdev.Open(lis.Device)
	if err != nil {
		retry := isTemporary(err) || errors.Is(err, fs.ErrNotExist)
		if retry {
			return true, err
		}

		logger.Warn("ignoring device", "reason", "failed to open", slogErr(err))
		return false, nil
	}
	defer d.Close()

	go func() {
		<-ctx.Done()
		d.Close()
	}()

	logger.Info(
		"initialized device",
		"name", d.Name,
		"phys", d.Phys,
		"bus", d.ID.BusType,
		"vendor", d.ID.Vendor,
		"product", d.ID.Product,
	)

	if !d.HasEventCode(evdev.EvRel, evdev.RelX) || !d.HasEventCode(evdev.EvRel, evdev.RelY) {
		logger.Info("ignoring device", "reason", "not a relative pointing device")
		return false, nil
	}

	if lis.Grab {
		err = d.Grab()
		if err != nil {
			logger.Warn("ignoring device", "reason", "failed to grab", slogErr(err))
			return false, nil
		}
		defer d.Ungrab()
	}

	err = src.Attach()
	if err != nil {
		return false, err
	}
	logger.Debug("attached processors", "processors", lis.Chain.Names())

	for {
		ev, err := d.NextEvent()
		if err != nil {
			if ctx.Err() != nil {
				return false, err
			}
			if errors.Is(err, fs.ErrClosed) {
				logger.Warn("device closed while reading")
				return false, nil
			}
			if isTemporary(err) || errors.Is(err, unix.ENODEV) {
				logger.Warn("device disappeared while reading", slogErr(err))
				return true, err
			}

			logger.Warn("read event", slogErr(err))
			continue
		}

		if ev.Is(evdev.EvSyn, evdev.SynDropped) {
			logger.Warn("kernel dropped events, resetting gesture", "time", ev.Time)
		}

		samples, err := src.Feed(ev)
		if err != nil {
			return false, err
		}

		for _, sample := range samples {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case lis.C <- sample:
			}
		}
	}
}

func isTemporary(err error) bool {
	var errno unix.Errno
	return errors.As(err, &errno) && errno.Temporary()
}
