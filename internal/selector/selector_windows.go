//go:build windows

package selector

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"simplycapture/internal/capture"
	"simplycapture/internal/region"
)

const (
	overlayClassName = "SimplyCaptureRegionOverlay"
	lwaAlpha         = 0x2
	outlineWidth     = 2
)

var (
	gdi32                          = windows.NewLazySystemDLL("gdi32.dll")
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procCreatePen                  = gdi32.NewProc("CreatePen")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")

	registerOnce sync.Once
	registerErr  error

	// One overlay at a time; the window procedure reads the active drag.
	activeMu sync.Mutex
	active   *drag

	errBusy = errors.New("region selection already in progress")
)

type drag struct {
	mu       sync.Mutex
	anchorX  int
	anchorY  int
	curX     int
	curY     int
	dragging bool
	ok       bool
	result   region.Region
}

type overlay struct {
	opts Options
}

func newOverlay(opts Options) Selector {
	return &overlay{opts: opts}
}

func (o *overlay) Select(ctx context.Context) (region.Region, error) {
	return withHooks(o.opts, func() (region.Region, error) {
		return o.run(ctx)
	})
}

func (o *overlay) run(ctx context.Context) (region.Region, error) {
	// Window messages are delivered to the creating thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	vb := capture.VirtualBounds()
	if vb.Empty() {
		return region.Region{}, fmt.Errorf("select region: %w", capture.ErrDisplayUnavailable)
	}
	if err := registerClass(); err != nil {
		return region.Region{}, err
	}

	d := &drag{}
	activeMu.Lock()
	if active != nil {
		activeMu.Unlock()
		return region.Region{}, errBusy
	}
	active = d
	activeMu.Unlock()
	defer func() {
		activeMu.Lock()
		active = nil
		activeMu.Unlock()
	}()

	hwnd := win.CreateWindowEx(
		win.WS_EX_LAYERED|win.WS_EX_TOPMOST|win.WS_EX_TOOLWINDOW,
		syscall.StringToUTF16Ptr(overlayClassName),
		nil,
		win.WS_POPUP|win.WS_VISIBLE,
		int32(vb.Min.X), int32(vb.Min.Y), int32(vb.Dx()), int32(vb.Dy()),
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if hwnd == 0 {
		return region.Region{}, fmt.Errorf("create overlay window: %w", windows.GetLastError())
	}
	defer win.DestroyWindow(hwnd)

	setLayeredWindowAttributes(hwnd, 0, o.opts.Alpha, lwaAlpha)
	win.SetForegroundWindow(hwnd)
	win.SetFocus(hwnd)

	stop := context.AfterFunc(ctx, func() {
		win.PostMessage(hwnd, win.WM_CLOSE, 0, 0)
	})
	defer stop()

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ok {
		if err := ctx.Err(); err != nil {
			return region.Region{}, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		return region.Region{}, ErrCancelled
	}
	return d.result.Offset(vb.Min.X, vb.Min.Y), nil
}

func registerClass() error {
	registerOnce.Do(func() {
		atom := win.RegisterClassEx(&win.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
			Style:         win.CS_HREDRAW | win.CS_VREDRAW,
			LpfnWndProc:   windows.NewCallback(wndProc),
			HInstance:     win.GetModuleHandle(nil),
			LpszClassName: syscall.StringToUTF16Ptr(overlayClassName),
			HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS)),
			HbrBackground: win.HBRUSH(win.GetStockObject(win.BLACK_BRUSH)),
		})
		if atom == 0 {
			registerErr = fmt.Errorf("register overlay class: %w", windows.GetLastError())
		}
	})
	return registerErr
}

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	activeMu.Lock()
	d := active
	activeMu.Unlock()
	if d == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	switch msg {
	case win.WM_LBUTTONDOWN:
		x, y := pointFromLParam(lParam)
		d.mu.Lock()
		d.anchorX, d.anchorY = x, y
		d.curX, d.curY = x, y
		d.dragging = true
		d.mu.Unlock()
		win.SetCapture(hwnd)
		win.InvalidateRect(hwnd, nil, true)
		return 0
	case win.WM_MOUSEMOVE:
		if wParam&win.MK_LBUTTON != 0 {
			x, y := pointFromLParam(lParam)
			d.mu.Lock()
			d.curX, d.curY = x, y
			d.mu.Unlock()
			win.InvalidateRect(hwnd, nil, true)
		}
		return 0
	case win.WM_LBUTTONUP:
		x, y := pointFromLParam(lParam)
		d.mu.Lock()
		if d.dragging {
			d.result = region.FromCorners(d.anchorX, d.anchorY, x, y)
			d.ok = true
			d.dragging = false
		}
		d.mu.Unlock()
		win.ReleaseCapture()
		win.PostQuitMessage(0)
		return 0
	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			win.PostQuitMessage(0)
		}
		return 0
	case win.WM_CLOSE:
		win.PostQuitMessage(0)
		return 0
	case win.WM_PAINT:
		paint(hwnd, d)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func paint(hwnd win.HWND, d *drag) {
	var ps win.PAINTSTRUCT
	hdc := win.BeginPaint(hwnd, &ps)
	defer win.EndPaint(hwnd, &ps)
	if hdc == 0 {
		return
	}

	d.mu.Lock()
	r := region.FromCorners(d.anchorX, d.anchorY, d.curX, d.curY)
	dragging := d.dragging
	d.mu.Unlock()
	if !dragging {
		return
	}

	pen := createPen(win.PS_SOLID, outlineWidth, uint32(win.RGB(255, 0, 0)))
	oldPen := win.SelectObject(hdc, win.HGDIOBJ(pen))
	win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))
	win.Rectangle_(hdc, int32(r.Left), int32(r.Top), int32(r.Left+r.Width), int32(r.Top+r.Height))
	win.SelectObject(hdc, oldPen)
	win.DeleteObject(win.HGDIOBJ(pen))
}

// pointFromLParam extracts signed client coordinates; they go negative while
// the mouse is captured outside the window.
func pointFromLParam(lParam uintptr) (int, int) {
	return int(int16(win.LOWORD(uint32(lParam)))), int(int16(win.HIWORD(uint32(lParam))))
}

func createPen(style, width int32, color uint32) win.HPEN {
	r, _, _ := procCreatePen.Call(uintptr(style), uintptr(width), uintptr(color))
	return win.HPEN(r)
}

func setLayeredWindowAttributes(hwnd win.HWND, key uint32, alpha uint8, flags uint32) bool {
	r, _, _ := procSetLayeredWindowAttributes.Call(uintptr(hwnd), uintptr(key), uintptr(alpha), uintptr(flags))
	return r != 0
}
