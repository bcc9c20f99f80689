package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func checkIcon(t *testing.T, icon Icon) {
	t.Helper()
	ico := icon.ICO
	if len(ico) < 22 {
		t.Fatalf("ICO is only %d bytes", len(ico))
	}
	payload := ico[22:]
	cfg, err := png.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("PNG does not decode: %v", err)
	}
	if cfg.Width != IconSize || cfg.Height != IconSize {
		t.Fatalf("icon is %dx%d, want %d", cfg.Width, cfg.Height, IconSize)
	}

	le := binary.LittleEndian
	if le.Uint16(ico[0:]) != 0 || le.Uint16(ico[2:]) != 1 || le.Uint16(ico[4:]) != 1 {
		t.Fatalf("bad ICO header % x", ico[:6])
	}
	if ico[6] != IconSize || ico[7] != IconSize {
		t.Fatalf("ICO size = %dx%d", ico[6], ico[7])
	}
	if int(le.Uint32(ico[14:])) != len(payload) || le.Uint32(ico[18:]) != 22 {
		t.Fatalf("bad ICO directory entry")
	}
}

func TestLoad_Builtin(t *testing.T) {
	icons, err := Load("", "", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkIcon(t, icons.Start)
	checkIcon(t, icons.Stop)
	if bytes.Equal(icons.Start.ICO, icons.Stop.ICO) {
		t.Fatalf("built-in start and stop icons should differ")
	}
}

func TestLoad_FromDirResizes(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "icon.png"), 512, 512)
	writePNG(t, filepath.Join(dir, "stop.png"), 16, 16)

	icons, err := Load(dir, "icon.png", "stop.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkIcon(t, icons.Start)
	checkIcon(t, icons.Stop)
}

func TestLoad_SameFileForBothStates(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "icon.png"), 64, 64)

	icons, err := Load(dir, "icon.png", "icon.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(icons.Start.ICO, icons.Stop.ICO) {
		t.Fatalf("same file should give identical icons")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "icon.png"), 8, 8)
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(dir, "icon.png", "missing.png")
	var le *LoadError
	if !errors.As(err, &le) || le.Name != "stop" || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: err = %v", err)
	}

	_, err = Load(dir, "broken.png", "icon.png")
	if !errors.As(err, &le) || le.Name != "start" {
		t.Fatalf("broken file: err = %v", err)
	}
}
