package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"simplycapture/internal/capture"
	"simplycapture/internal/encoder"
	"simplycapture/internal/region"
	"simplycapture/internal/selector"
)

// Options configures a Controller. Source and Opener are required.
type Options struct {
	Source    capture.Source
	Opener    encoder.Opener
	FrameRate int
	Observer  Observer
	Now       func() time.Time
	Logger    *slog.Logger
}

// Controller owns the recording session and its worker goroutine.
type Controller struct {
	src  capture.Source
	open encoder.Opener
	fps  int
	obs  Observer
	now  func() time.Time
	log  *slog.Logger

	mu       sync.Mutex
	notifyMu sync.Mutex
	state    State
	starting bool
	session  *Session
	selected region.Region
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(opts Options) *Controller {
	c := &Controller{
		src:  opts.Source,
		open: opts.Opener,
		fps:  opts.FrameRate,
		obs:  opts.Observer,
		now:  opts.Now,
		log:  opts.Logger,
	}
	if c.fps <= 0 {
		c.fps = DefaultFrameRate
	}
	if c.obs == nil {
		c.obs = nopObserver{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns a copy of the current or most recent session.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Region returns the region stored by the last successful SelectRegion.
func (c *Controller) Region() region.Region {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SelectRegion runs sel and stores its result for StartSelected. A cancelled
// or failed selection leaves the stored region unchanged.
func (c *Controller) SelectRegion(ctx context.Context, sel selector.Selector) (region.Region, error) {
	r, err := sel.Select(ctx)
	if err != nil {
		if errors.Is(err, selector.ErrCancelled) {
			c.log.Info("region selection cancelled")
		}
		return region.Region{}, err
	}

	c.log.Info("region selected", "region", r.String())

	c.mu.Lock()
	c.selected = r
	c.unlockAndNotify(func(o Observer) { o.OnRegionSelected(r) })
	return r, nil
}

// StartSelected starts recording the stored region into folder.
func (c *Controller) StartSelected(folder string) error {
	return c.StartRecording(c.Region(), folder)
}

// StartRecording opens the output file and starts the capture worker. An
// empty folder means the working directory. Errors are returned to the
// caller and are not sent to the observer.
func (c *Controller) StartRecording(r region.Region, folder string) error {
	if r.Empty() {
		return ErrNoRegionSelected
	}

	c.mu.Lock()
	if c.state.Active() || c.starting {
		c.mu.Unlock()
		return ErrAlreadyRecording
	}
	// Reserve the session so the file can be created without holding mu.
	c.starting = true
	c.mu.Unlock()

	if folder == "" {
		if wd, err := os.Getwd(); err == nil {
			folder = wd
		}
	}
	started := c.now()
	s := &Session{
		ID:         uuid.New(),
		Region:     r,
		OutputPath: filepath.Join(folder, FileName(started)),
		FrameRate:  c.fps,
		State:      Recording,
		StartedAt:  started,
	}

	sink, err := c.open(s.OutputPath, r.Width, r.Height, s.FrameRate)
	if err != nil {
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
		var oe *encoder.OpenError
		if !errors.As(err, &oe) {
			err = &encoder.OpenError{Path: s.OutputPath, Err: err}
		}
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.mu.Lock()
	c.starting = false
	c.state = Recording
	c.session = s
	c.cancel = cancel
	c.done = done
	snapshot := *s

	c.log.Info("recording started",
		"session", s.ID.String(),
		"region", r.String(),
		"fps", s.FrameRate,
		"output", s.OutputPath,
	)
	go c.run(ctx, snapshot, sink, done)
	c.unlockAndNotify(func(o Observer) { o.OnStateChanged(Recording) })
	return nil
}

// StopRecording asks the worker to stop. It returns before the file is
// finalized; wait for the Stopped or Failed notification, or call Wait.
// Calling it when not recording does nothing.
func (c *Controller) StopRecording() {
	c.mu.Lock()
	if c.state != Recording {
		c.mu.Unlock()
		return
	}
	c.state = Stopping
	c.session.State = Stopping
	c.cancel()
	c.log.Info("stopping recording", "session", c.session.ID.String())
	c.unlockAndNotify(func(o Observer) { o.OnStateChanged(Stopping) })
}

// Toggle stops an active recording or starts a new one.
func (c *Controller) Toggle(r region.Region, folder string) error {
	if c.State().Active() {
		c.StopRecording()
		return nil
	}
	return c.StartRecording(r, folder)
}

// ToggleSelected is Toggle with the stored region.
func (c *Controller) ToggleSelected(folder string) error {
	return c.Toggle(c.Region(), folder)
}

// Wait blocks until the current worker, if any, has exited.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Shutdown stops any active recording and waits for the file to be
// finalized or for ctx to end.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.StopRecording()

	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for recording to finalize: %w", ctx.Err())
	}
}

func (c *Controller) run(ctx context.Context, s Session, sink encoder.Sink, done chan struct{}) {
	defer close(done)
	log := c.log.With("session", s.ID.String())

	// A panic here is a programming error; still leave a playable file behind.
	defer func() {
		if p := recover(); p != nil {
			_ = sink.Finalize()
			panic(p)
		}
	}()

	frames, err := runLoop(ctx, c.src, sink, s.Region, s.FrameRate)
	if ferr := sink.Finalize(); ferr != nil {
		if err == nil {
			err = fmt.Errorf("finalize %s: %w", s.OutputPath, ferr)
		} else {
			log.Warn("finalize after failure", "error", ferr)
		}
	}

	final := Stopped
	if err != nil {
		final = Failed
	}

	if err != nil {
		log.Error("recording failed", "error", err, "frames", frames, "output", s.OutputPath)
	} else {
		log.Info("recording saved", "frames", frames, "output", s.OutputPath, "elapsed", c.now().Sub(s.StartedAt))
	}

	c.mu.Lock()
	c.state = final
	c.session.State = final
	c.session.Frames = frames
	c.session.Err = err
	c.cancel = nil
	c.unlockAndNotify(func(o Observer) {
		if err != nil {
			o.OnError(err)
		}
		o.OnSaved(s.OutputPath, frames)
		o.OnStateChanged(final)
	})
}

// unlockAndNotify releases c.mu, which the caller holds, and delivers fn
// before any later transition can deliver its own events.
func (c *Controller) unlockAndNotify(fn func(Observer)) {
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()
	fn(c.obs)
}
