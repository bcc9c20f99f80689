//go:build windows

package tray

import (
	"runtime"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const (
	bifReturnOnlyFSDirs = 0x00000001
	bifNewDialogStyle   = 0x00000040

	// CoInitializeEx result when COM is already initialized on the thread.
	sFalse = windows.Errno(1)
)

var (
	shell32                 = windows.NewLazySystemDLL("shell32.dll")
	procSHBrowseForFolder   = shell32.NewProc("SHBrowseForFolderW")
	procSHGetPathFromIDList = shell32.NewProc("SHGetPathFromIDListW")
)

type browseInfo struct {
	Owner       win.HWND
	Root        uintptr
	DisplayName *uint16
	Title       *uint16
	Flags       uint32
	Callback    uintptr
	LParam      uintptr
	Image       int32
}

// browseFolder shows the native folder picker. An empty result means the
// user cancelled.
func browseFolder(title string) string {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hr := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED)
	if hr == nil || hr == sFalse {
		defer windows.CoUninitialize()
	}

	t, _ := windows.UTF16PtrFromString(title)
	display := make([]uint16, win.MAX_PATH)
	bi := browseInfo{
		DisplayName: &display[0],
		Title:       t,
		Flags:       bifReturnOnlyFSDirs | bifNewDialogStyle,
	}
	pidl, _, _ := procSHBrowseForFolder.Call(uintptr(unsafe.Pointer(&bi)))
	if pidl == 0 {
		return ""
	}
	defer windows.CoTaskMemFree(unsafe.Pointer(pidl))

	buf := make([]uint16, win.MAX_PATH)
	if ok, _, _ := procSHGetPathFromIDList.Call(pidl, uintptr(unsafe.Pointer(&buf[0]))); ok == 0 {
		return ""
	}
	return windows.UTF16ToString(buf)
}

func showError(msg string) {
	messageBox(appName, msg, win.MB_OK|win.MB_ICONERROR)
}

func showInfo(msg string) {
	messageBox(appName, msg, win.MB_OK|win.MB_ICONINFORMATION)
}

func confirm(msg string) bool {
	return messageBox(appName, msg, win.MB_YESNO|win.MB_ICONQUESTION) == win.IDYES
}

func messageBox(title, msg string, flags uint32) int32 {
	t, _ := windows.UTF16PtrFromString(title)
	m, _ := windows.UTF16PtrFromString(msg)
	return win.MessageBox(0, m, t, flags|win.MB_TOPMOST|win.MB_SETFOREGROUND)
}
