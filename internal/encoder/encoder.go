// Package encoder writes captured frames to a Motion-JPEG AVI file.
package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"

	"github.com/icza/mjpeg"

	"simplycapture/internal/capture"
)

const (
	// Extension is the container extension of every recording.
	Extension = "avi"

	DefaultQuality = 85

	// MaxFrameRate is the highest rate a recording may be opened with.
	MaxFrameRate = 120
)

var ErrFinalized = errors.New("encoder already finalized")

// OpenError reports that the output file could not be created.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open encoder %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Sink accepts frames in presentation order until it is finalized.
type Sink interface {
	Append(f *capture.Frame) error
	Finalize() error
}

// Opener creates a Sink for a recording of the given size and rate.
type Opener func(path string, width, height, fps int) (Sink, error)

// NewOpener returns an Opener producing AVI files at the given JPEG quality.
func NewOpener(quality int) Opener {
	return func(path string, width, height, fps int) (Sink, error) {
		return Open(path, width, height, fps, WithQuality(quality))
	}
}

// Option configures an AVI writer.
type Option func(*AVI)

// WithQuality sets the JPEG quality (1-100) used for each frame.
func WithQuality(q int) Option {
	return func(a *AVI) {
		if q >= 1 && q <= 100 {
			a.quality = q
		}
	}
}

// AVI is a Sink writing Motion-JPEG frames through icza/mjpeg.
type AVI struct {
	width   int
	height  int
	quality int

	mu     sync.Mutex
	w      mjpeg.AviWriter
	buf    bytes.Buffer
	frames int

	once     sync.Once
	closeErr error
}

// Open creates or truncates path and prepares it for width x height frames.
func Open(path string, width, height, fps int, opts ...Option) (*AVI, error) {
	if width <= 0 || height <= 0 {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("invalid frame size %dx%d", width, height)}
	}
	if fps < 1 || fps > MaxFrameRate {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("invalid frame rate %d", fps)}
	}

	a := &AVI{width: width, height: height, quality: DefaultQuality}
	for _, opt := range opts {
		opt(a)
	}

	w, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	a.w = w
	return a, nil
}

// Append encodes f and adds it as the next frame. A frame whose size differs
// from the one given to Open is a programming error and panics.
func (a *AVI) Append(f *capture.Frame) error {
	if f.Width != a.width || f.Height != a.height {
		panic(fmt.Sprintf("encoder: frame is %dx%d, recording is %dx%d", f.Width, f.Height, a.width, a.height))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.w == nil {
		return ErrFinalized
	}

	a.buf.Reset()
	if err := jpeg.Encode(&a.buf, toYCbCr(f), &jpeg.Options{Quality: a.quality}); err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", a.frames, err)
	}
	if err := a.w.AddFrame(a.buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", a.frames, err)
	}
	a.frames++
	return nil
}

// Finalize flushes the index and closes the file. Only the first call does
// any work; later calls return its result.
func (a *AVI) Finalize() error {
	a.once.Do(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.closeErr = a.w.Close()
		a.w = nil
	})
	return a.closeErr
}

// toYCbCr converts f to 4:2:0 YCbCr so image/jpeg can take its fast path.
func toYCbCr(f *capture.Frame) *image.YCbCr {
	img := image.NewYCbCr(f.Bounds(), image.YCbCrSubsampleRatio420)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.RGBAt(x, y)
			yy, cb, cr := color.RGBToYCbCr(r, g, b)
			img.Y[img.YOffset(x, y)] = yy
			if x%2 == 0 && y%2 == 0 {
				ci := img.COffset(x, y)
				img.Cb[ci] = cb
				img.Cr[ci] = cr
			}
		}
	}
	return img
}
