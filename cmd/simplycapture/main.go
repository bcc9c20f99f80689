package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simplycapture/internal/capture"
	"simplycapture/internal/config"
	"simplycapture/internal/encoder"
	"simplycapture/internal/recorder"
	"simplycapture/internal/region"
)

func main() {
	flags, err := config.ParseFlags("simplycapture", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadFrom(flags.ConfigPath)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if err := flags.Apply(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "simplycapture:", err)
		os.Exit(2)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flags.Region != "" {
		if err := recordRegion(logger, cfg, flags.Region, flags.Duration); err != nil {
			logger.Error("recording failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runTray(logger, cfg, flags.ConfigPath); err != nil {
		logger.Error("tray exited", "error", err)
		os.Exit(1)
	}
}

func newController(logger *slog.Logger, cfg *config.Config, obs recorder.Observer) *recorder.Controller {
	return recorder.New(recorder.Options{
		Source:    capture.NewScreen(),
		Opener:    encoder.NewOpener(cfg.JPEGQuality),
		FrameRate: cfg.FPS,
		Observer:  obs,
		Logger:    logger,
	})
}

// recordRegion records rect until interrupted, until d elapses when d > 0,
// or until the recording fails on its own.
func recordRegion(logger *slog.Logger, cfg *config.Config, rect string, d time.Duration) error {
	r, err := region.Parse(rect)
	if err != nil {
		return err
	}

	ctrl := newController(logger, cfg, nil)
	if err := ctrl.StartRecording(r, cfg.OutputDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	finished := make(chan struct{})
	go func() {
		ctrl.Wait()
		close(finished)
	}()

	select {
	case <-ctx.Done():
		ctrl.StopRecording()
		<-finished
	case <-finished:
	}

	s, _ := ctrl.Session()
	if s.Err != nil {
		return s.Err
	}
	fmt.Println(s.OutputPath)
	return nil
}
