package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"simplycapture/internal/region"
)

var (
	ErrDisplayUnavailable = errors.New("no active display")
	ErrOffScreen          = errors.New("region is outside the visible screen")
)

// Error reports a failed grab of a screen region.
type Error struct {
	Region region.Region
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture %v: %v", e.Region, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Source produces one frame of a screen region per call.
type Source interface {
	Grab(r region.Region) (*Frame, error)
}

// Screen grabs pixels from the live displays.
type Screen struct {
	displays func() []image.Rectangle
	capture  func(image.Rectangle) (*image.RGBA, error)
}

// NewScreen returns a Source backed by the platform screenshot API.
func NewScreen() *Screen {
	return &Screen{
		displays: DisplayBounds,
		capture:  screenshot.CaptureRect,
	}
}

// Grab captures r and converts it to packed RGB.
func (s *Screen) Grab(r region.Region) (*Frame, error) {
	if r.Empty() {
		return nil, &Error{Region: r, Err: fmt.Errorf("empty region")}
	}

	displays := s.displays()
	if len(displays) == 0 {
		return nil, &Error{Region: r, Err: ErrDisplayUnavailable}
	}
	rect := r.Rect()
	if !rect.In(union(displays)) {
		return nil, &Error{Region: r, Err: ErrOffScreen}
	}

	img, err := s.capture(rect)
	if err != nil {
		return nil, &Error{Region: r, Err: fmt.Errorf("screenshot capture failed: %w", err)}
	}
	if b := img.Bounds(); b.Dx() != r.Width || b.Dy() != r.Height {
		return nil, &Error{Region: r, Err: fmt.Errorf("captured %dx%d, want %dx%d", b.Dx(), b.Dy(), r.Width, r.Height)}
	}
	return ToRGB(img), nil
}

// DisplayBounds lists the bounds of every active display.
func DisplayBounds() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// VirtualBounds returns the smallest rectangle covering all active displays.
// It is empty when no display is active.
func VirtualBounds() image.Rectangle {
	return union(DisplayBounds())
}

func union(rects []image.Rectangle) image.Rectangle {
	var u image.Rectangle
	for _, r := range rects {
		u = u.Union(r)
	}
	return u
}
