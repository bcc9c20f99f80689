// Package selector lets the user drag out a capture region on screen.
package selector

import (
	"context"
	"errors"

	"simplycapture/internal/region"
)

var (
	ErrCancelled   = errors.New("region selection cancelled")
	ErrUnsupported = errors.New("region selection is not supported on this platform")
)

// Selector blocks until the user has chosen a region or cancelled.
type Selector interface {
	Select(ctx context.Context) (region.Region, error)
}

// Options are hooks run around the overlay. Restore always runs once Hide
// has run, whatever the outcome.
type Options struct {
	Hide    func()
	Restore func()
	// Alpha is the overlay opacity, 1-255.
	Alpha uint8
}

// DefaultAlpha makes the overlay about 30% opaque.
const DefaultAlpha = 77

// Func adapts a plain function to Selector.
type Func func(ctx context.Context) (region.Region, error)

func (f Func) Select(ctx context.Context) (region.Region, error) { return f(ctx) }

// New returns the overlay selector for this platform.
func New(opts Options) Selector {
	if opts.Alpha == 0 {
		opts.Alpha = DefaultAlpha
	}
	return newOverlay(opts)
}

// withHooks runs fn between opts.Hide and opts.Restore.
func withHooks(opts Options, fn func() (region.Region, error)) (region.Region, error) {
	if opts.Hide != nil {
		opts.Hide()
	}
	if opts.Restore != nil {
		defer opts.Restore()
	}
	return fn()
}
