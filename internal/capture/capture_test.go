package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"simplycapture/internal/region"
)

func fakeScreen(displays []image.Rectangle) *Screen {
	return &Screen{
		displays: func() []image.Rectangle { return displays },
		capture: func(r image.Rectangle) (*image.RGBA, error) {
			img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
			for y := 0; y < r.Dy(); y++ {
				for x := 0; x < r.Dx(); x++ {
					img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 7, A: 0x80})
				}
			}
			return img, nil
		},
	}
}

func TestToRGB_DropsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 40})

	f := ToRGB(img)
	if f.Width != 3 || f.Height != 2 || f.Stride != 9 || len(f.Pix) != 18 {
		t.Fatalf("unexpected frame geometry: %+v", f)
	}
	r, g, b := f.RGBAt(2, 1)
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("RGBAt = %d,%d,%d", r, g, b)
	}
	if c := f.At(2, 1).(color.RGBA); c.A != 0xff {
		t.Fatalf("frame must be opaque, got alpha %d", c.A)
	}
}

func TestToRGB_SubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.SetRGBA(5, 6, color.RGBA{R: 1, G: 2, B: 3, A: 0xff})
	sub := img.SubImage(image.Rect(4, 4, 8, 8)).(*image.RGBA)

	f := ToRGB(sub)
	if f.Width != 4 || f.Height != 4 {
		t.Fatalf("size = %dx%d", f.Width, f.Height)
	}
	if r, g, b := f.RGBAt(1, 2); r != 1 || g != 2 || b != 3 {
		t.Fatalf("RGBAt(1,2) = %d,%d,%d", r, g, b)
	}
}

func TestScreenGrab_ReturnsRequestedSize(t *testing.T) {
	s := fakeScreen([]image.Rectangle{image.Rect(0, 0, 1920, 1080)})
	f, err := s.Grab(region.Region{Top: 10, Left: 20, Width: 64, Height: 48})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Width != 64 || f.Height != 48 {
		t.Fatalf("size = %dx%d", f.Width, f.Height)
	}
	if r, g, b := f.RGBAt(5, 9); r != 5 || g != 9 || b != 7 {
		t.Fatalf("RGBAt(5,9) = %d,%d,%d", r, g, b)
	}
}

func TestScreenGrab_SpansDisplays(t *testing.T) {
	s := fakeScreen([]image.Rectangle{
		image.Rect(-1920, 0, 0, 1080),
		image.Rect(0, 0, 1920, 1080),
	})
	if _, err := s.Grab(region.Region{Left: -100, Top: 0, Width: 200, Height: 100}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScreenGrab_Errors(t *testing.T) {
	cases := []struct {
		name     string
		displays []image.Rectangle
		r        region.Region
		want     error
	}{
		{"no display", nil, region.Region{Width: 10, Height: 10}, ErrDisplayUnavailable},
		{"off screen", []image.Rectangle{image.Rect(0, 0, 800, 600)}, region.Region{Left: 790, Width: 20, Height: 10}, ErrOffScreen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fakeScreen(tc.displays).Grab(tc.r)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var ce *Error
			if !errors.As(err, &ce) || ce.Region != tc.r {
				t.Fatalf("expected *Error carrying the region, got %#v", err)
			}
		})
	}
}

func TestScreenGrab_BackendFailure(t *testing.T) {
	boom := errors.New("device lost")
	s := fakeScreen([]image.Rectangle{image.Rect(0, 0, 800, 600)})
	s.capture = func(image.Rectangle) (*image.RGBA, error) { return nil, boom }

	_, err := s.Grab(region.Region{Width: 10, Height: 10})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
