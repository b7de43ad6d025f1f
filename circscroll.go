package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"deedles.dev/circscroll/internal/config"
	"deedles.dev/circscroll/internal/glossy"
	"deedles.dev/circscroll/internal/pipeline"
	"deedles.dev/circscroll/internal/scroll"
	"golang.org/x/sync/errgroup"
)

func loadConfig(ctx context.Context, path string) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("find config: %w", err)
		}
		path = p
	}

	c, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		Logger(ctx).Info("config not found, using defaults", "path", path)
		return config.Parse(strings.NewReader(config.DefaultFile()))
	}
	if err != nil {
		return c, fmt.Errorf("load config %q: %w", path, err)
	}
	return c, nil
}

func run(ctx context.Context) error {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %v [options] [/dev/input/by-id/<device>...]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "path to config file (default $XDG_CONFIG_HOME/circscroll/config)")
	defaultConfig := flag.Bool("default-config", false, "print the default config and exit")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		slog.SetDefault(slog.New(glossy.Handler{
			UseJournal: glossy.UseJournal(),
			Level:      slog.LevelDebug,
		}.Synchronized()))
	}
	logger := slog.Default()
	ctx = WithLogger(ctx, logger)

	if *defaultConfig {
		fmt.Print(config.DefaultFile())
		return nil
	}

	c, err := loadConfig(ctx, *configPath)
	if err != nil {
		return err
	}
	if flag.NArg() > 0 {
		c.Devices = flag.Args()
	}
	if len(c.Devices) == 0 {
		return errors.New("no devices found")
	}
	if len(c.Processors) == 0 {
		c.Processors = []string{scroll.Name}
	}

	var registry pipeline.Registry
	err = scroll.Register(&registry, c.Sensitivity)
	if err != nil {
		return err
	}
	logger.Debug("registered processors", "names", registry.Names(), "sensitivity", c.Sensitivity)

	eg, ctx := errgroup.WithContext(ctx)

	samples := make(chan pipeline.Sample)
	listeners, lctx := errgroup.WithContext(ctx)
	for _, dev := range c.Devices {
		chain, err := registry.Build(c.Processors...)
		if err != nil {
			return err
		}

		lis := Listener{
			Device: dev,
			Chain:  chain,
			Grab:   c.Grab,
			C:      samples,
			Retry:  c.Retry,
		}
		listeners.Go(func() error { return lis.Run(lctx) })
	}
	eg.Go(func() error {
		defer close(samples)
		return listeners.Wait()
	})
	eg.Go(func() error { return handle(ctx, samples) })

	err = eg.Wait()
	if (err != nil) && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func main() {
	slog.SetDefault(slog.New(glossy.Handler{UseJournal: glossy.UseJournal()}.Synchronized()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if err != nil {
		slog.Error("fatal", slogErr(err))
		os.Exit(1)
	}
}
