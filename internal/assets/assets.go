// Package assets loads the tray icons.
package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// IconSize is the edge length every icon is scaled to.
const IconSize = 128

// LoadError reports an icon that could not be read or decoded.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s icon %q: %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Icon is one tray image as a PNG-in-ICO file, the format systray takes on
// Windows.
type Icon struct {
	ICO []byte
}

// Icons are shown while idle (Start) and while recording (Stop).
type Icons struct {
	Start Icon
	Stop  Icon
}

// Load reads the start and stop icons from dir. With an empty dir it returns
// built-in icons instead.
func Load(dir, startName, stopName string) (*Icons, error) {
	if dir == "" {
		return builtin()
	}
	start, err := loadFile("start", filepath.Join(dir, startName))
	if err != nil {
		return nil, err
	}
	stop, err := loadFile("stop", filepath.Join(dir, stopName))
	if err != nil {
		return nil, err
	}
	return &Icons{Start: start, Stop: stop}, nil
}

func loadFile(name, path string) (Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return Icon{}, &LoadError{Name: name, Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Icon{}, &LoadError{Name: name, Path: path, Err: err}
	}
	icon, err := encode(resize(img, IconSize))
	if err != nil {
		return Icon{}, &LoadError{Name: name, Path: path, Err: err}
	}
	return icon, nil
}

func resize(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func encode(img image.Image) (Icon, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Icon{}, err
	}
	b := img.Bounds()
	return Icon{ICO: wrapICO(buf.Bytes(), b.Dx(), b.Dy())}, nil
}

// wrapICO packs PNG data as a single-image ICO file.
func wrapICO(pngData []byte, width, height int) []byte {
	dim := func(v int) uint8 {
		if v >= 256 {
			return 0
		}
		return uint8(v)
	}

	var buf bytes.Buffer
	le := binary.LittleEndian
	binary.Write(&buf, le, [3]uint16{0, 1, 1})
	buf.WriteByte(dim(width))
	buf.WriteByte(dim(height))
	buf.WriteByte(0) // palette size
	buf.WriteByte(0)
	binary.Write(&buf, le, uint16(1))  // planes
	binary.Write(&buf, le, uint16(32)) // bits per pixel
	binary.Write(&buf, le, uint32(len(pngData)))
	binary.Write(&buf, le, uint32(6+16))
	buf.Write(pngData)
	return buf.Bytes()
}

var recordRed = color.NRGBA{R: 0xd9, G: 0x2b, B: 0x2b, A: 0xff}

// builtin draws a red dot for start and a red square for stop.
func builtin() (*Icons, error) {
	dot := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	square := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	c := IconSize / 2
	radius := IconSize/2 - 8
	for y := 0; y < IconSize; y++ {
		for x := 0; x < IconSize; x++ {
			dx, dy := x-c, y-c
			if dx*dx+dy*dy <= radius*radius {
				dot.SetNRGBA(x, y, recordRed)
			}
			if x >= 24 && x < IconSize-24 && y >= 24 && y < IconSize-24 {
				square.SetNRGBA(x, y, recordRed)
			}
		}
	}

	start, err := encode(dot)
	if err != nil {
		return nil, &LoadError{Name: "start", Path: "builtin", Err: err}
	}
	stop, err := encode(square)
	if err != nil {
		return nil, &LoadError{Name: "stop", Path: "builtin", Err: err}
	}
	return &Icons{Start: start, Stop: stop}, nil
}
