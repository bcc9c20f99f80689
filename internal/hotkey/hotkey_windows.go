//go:build windows

package hotkey

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const MOD_NOREPEAT = 0x4000

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procPostThreadMessage  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")

	hotkeyID     = 1
	isRunning    = false
	threadID     uint32
	loopExitChan chan struct{}
	hotkeyMutex  sync.Mutex
)

func register(c Combo) error {
	hotkeyMutex.Lock()
	if isRunning {
		hotkeyMutex.Unlock()
		return fmt.Errorf("hotkey already registered")
	}
	isRunning = true
	loopExitChan = make(chan struct{})
	exitChan := loopExitChan
	hotkeyMutex.Unlock()

	slog.Debug("registering hotkey", "modifiers", c.Modifiers, "key", c.Key)
	resultChan := make(chan error, 1)

	go func() {
		// RegisterHotKey posts WM_HOTKEY to the registering thread, so the
		// loop must stay on it.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(exitChan)

		ret, _, err := procRegisterHotKey.Call(
			0,
			uintptr(hotkeyID),
			uintptr(c.Modifiers|MOD_NOREPEAT),
			uintptr(c.Key),
		)
		if ret == 0 {
			hotkeyMutex.Lock()
			isRunning = false
			hotkeyMutex.Unlock()
			resultChan <- fmt.Errorf("failed to register hotkey: %v", err)
			return
		}

		tid, _, _ := procGetCurrentThreadId.Call()
		hotkeyMutex.Lock()
		threadID = uint32(tid)
		hotkeyMutex.Unlock()

		resultChan <- nil
		messageLoop()
		procUnregisterHotKey.Call(0, uintptr(hotkeyID))
		slog.Debug("hotkey message loop exited")
	}()

	return <-resultChan
}

func messageLoop() {
	var msg win.MSG
	for {
		r := win.GetMessage(&msg, 0, 0, 0)
		if r == 0 || r == -1 {
			return
		}
		if msg.Message == win.WM_HOTKEY {
			if !fire() {
				slog.Warn("hotkey pressed with no handler set")
			}
		}
	}
}

func unregister() {
	hotkeyMutex.Lock()
	if !isRunning {
		hotkeyMutex.Unlock()
		return
	}
	isRunning = false
	tid := threadID
	exitChan := loopExitChan
	threadID = 0
	hotkeyMutex.Unlock()

	if tid != 0 {
		procPostThreadMessage.Call(uintptr(tid), uintptr(win.WM_QUIT), 0, 0)
	}

	select {
	case <-exitChan:
	case <-time.After(3 * time.Second):
		slog.Warn("hotkey message loop did not exit within timeout")
	}
}
