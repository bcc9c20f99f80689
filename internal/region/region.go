package region

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Region is a rectangle in screen pixel coordinates.
type Region struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FromCorners builds a Region from the anchor and release points of a drag.
// The corners may be given in any order.
func FromCorners(ax, ay, bx, by int) Region {
	return Region{
		Left:   min(ax, bx),
		Top:    min(ay, by),
		Width:  abs(bx - ax),
		Height: abs(by - ay),
	}
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Rect returns the region as an image.Rectangle in screen coordinates.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

// Offset returns the region moved by dx, dy.
func (r Region) Offset(dx, dy int) Region {
	r.Left += dx
	r.Top += dy
	return r
}

func (r Region) String() string {
	return fmt.Sprintf("%dx%d at (%d,%d)", r.Width, r.Height, r.Left, r.Top)
}

// Parse reads a region written as "left,top,width,height".
func Parse(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("region %q: want left,top,width,height", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return Region{}, fmt.Errorf("region %q: negative size", s)
	}
	return Region{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
