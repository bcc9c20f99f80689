//go:build windows

package tray

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"simplycapture/internal/assets"
	"simplycapture/internal/clipboard"
	"simplycapture/internal/config"
	"simplycapture/internal/hotkey"
	"simplycapture/internal/recorder"
	"simplycapture/internal/region"
	"simplycapture/internal/selector"
	"simplycapture/internal/startup"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Config     *config.Config
	ConfigPath string
	Icons      *assets.Icons
	Logger     *slog.Logger
}

// App is the tray menu. It observes the Controller and forwards menu clicks
// to it.
type App struct {
	cfg     *config.Config
	cfgPath string
	icons   *assets.Icons
	log     *slog.Logger

	ctrl *recorder.Controller
	sel  selector.Selector

	ready chan struct{}

	mu        sync.Mutex
	lastSaved string

	mStatus  *systray.MenuItem
	mRegion  *systray.MenuItem
	mFolder  *systray.MenuItem
	mSelect  *systray.MenuItem
	mToggle  *systray.MenuItem
	mBrowse  *systray.MenuItem
	mCopy    *systray.MenuItem
	mStartup *systray.MenuItem
	mQuit    *systray.MenuItem
}

func New(opts Options) *App {
	a := &App{
		cfg:     opts.Config,
		cfgPath: opts.ConfigPath,
		icons:   opts.Icons,
		log:     opts.Logger,
		ready:   make(chan struct{}),
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	a.sel = selector.New(selector.Options{
		Hide:    a.lockMenu,
		Restore: a.unlockMenu,
	})
	return a
}

// Bind attaches the controller. It must be called before Run.
func (a *App) Bind(ctrl *recorder.Controller) {
	a.ctrl = ctrl
}

// Run blocks in the tray event loop until Quit.
func (a *App) Run() {
	systray.Run(a.onReady, a.onExit)
}

func (a *App) onReady() {
	systray.SetIcon(a.icons.Start.ICO)
	systray.SetTitle(appName)
	systray.SetTooltip(tooltip(recorder.Idle, a.cfg.Hotkey))

	a.mStatus = systray.AddMenuItem("Status: Idle", "Recorder status")
	a.mStatus.Disable()
	a.mRegion = systray.AddMenuItem("Selected Region: none", "Region that will be recorded")
	a.mRegion.Disable()
	a.mFolder = systray.AddMenuItem(folderLabel(a.cfg.OutputDir), "Folder recordings are saved to")
	a.mFolder.Disable()
	systray.AddSeparator()

	a.mSelect = systray.AddMenuItem("Select Recording Region", "Drag a rectangle on the screen")
	a.mToggle = systray.AddMenuItem("Start Recording", "Start or stop recording the selected region")
	a.mBrowse = systray.AddMenuItem("Browse Save Folder...", "Choose where recordings are saved")
	a.mCopy = systray.AddMenuItem("Copy Last Recording Path", "Copy the saved file path to the clipboard")
	a.mCopy.Disable()
	systray.AddSeparator()

	hk := systray.AddMenuItem("Stop Hotkey: "+a.cfg.Hotkey, "Stops the recording from anywhere")
	hk.Disable()
	a.mStartup = systray.AddMenuItemCheckbox("Start on Boot", "Start "+appName+" when Windows starts", startup.IsEnabled())
	systray.AddSeparator()

	a.mQuit = systray.AddMenuItem("Quit", "Quit "+appName)

	if err := hotkey.Register(a.cfg.Hotkey, a.ctrl.StopRecording); err != nil {
		a.log.Warn("failed to register hotkey; stop from the tray menu instead", "hotkey", a.cfg.Hotkey, "error", err)
	}

	close(a.ready)
	go a.loop()
}

func (a *App) onExit() {
	hotkey.Unregister()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.ctrl.Shutdown(ctx); err != nil {
		a.log.Error("recording not finalized before exit", "error", err)
	}
}

func (a *App) loop() {
	for {
		select {
		case <-a.mSelect.ClickedCh:
			a.selectRegion()
		case <-a.mToggle.ClickedCh:
			if err := a.ctrl.ToggleSelected(a.cfg.OutputDir); err != nil {
				a.log.Warn("cannot start recording", "error", err)
				showError(userMessage(err))
			}
		case <-a.mBrowse.ClickedCh:
			a.browse()
		case <-a.mCopy.ClickedCh:
			a.mu.Lock()
			path := a.lastSaved
			a.mu.Unlock()
			if err := clipboard.CopyText(path); err != nil {
				a.log.Warn("failed to copy recording path", "error", err)
			}
		case <-a.mStartup.ClickedCh:
			if a.mStartup.Checked() {
				if err := startup.Disable(); err != nil {
					a.log.Warn("failed to disable startup", "error", err)
				} else {
					a.mStartup.Uncheck()
				}
			} else {
				if err := startup.Enable(); err != nil {
					a.log.Warn("failed to enable startup", "error", err)
				} else {
					a.mStartup.Check()
				}
			}
		case <-a.mQuit.ClickedCh:
			if a.ctrl.State().Active() && !confirm("A recording is in progress. Stop it and quit?") {
				continue
			}
			systray.Quit()
			return
		}
	}
}

func (a *App) selectRegion() {
	if a.ctrl.State().Active() {
		showError(userMessage(recorder.ErrAlreadyRecording))
		return
	}
	_, err := a.ctrl.SelectRegion(context.Background(), a.sel)
	switch {
	case err == nil:
	case errors.Is(err, selector.ErrCancelled):
		showInfo(userMessage(err))
	default:
		a.log.Error("region selection failed", "error", err)
		showError(userMessage(err))
	}
}

func (a *App) browse() {
	dir := browseFolder("Select the folder for recordings")
	if dir == "" {
		return
	}
	a.cfg.OutputDir = dir
	a.mFolder.SetTitle(folderLabel(dir))
	if err := config.SaveTo(a.cfgPath, a.cfg); err != nil {
		a.log.Warn("failed to save config", "error", err)
	}
}

// lockMenu and unlockMenu stand in for hiding a main window while the
// overlay is up.
func (a *App) lockMenu() {
	a.mSelect.Disable()
	a.mToggle.Disable()
}

func (a *App) unlockMenu() {
	a.mSelect.Enable()
	a.mToggle.Enable()
}

func (a *App) isReady() bool {
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

func (a *App) OnStateChanged(s recorder.State) {
	if !a.isReady() {
		return
	}
	if s.Active() {
		systray.SetIcon(a.icons.Stop.ICO)
	} else {
		systray.SetIcon(a.icons.Start.ICO)
	}
	systray.SetTooltip(tooltip(s, a.cfg.Hotkey))
	a.mToggle.SetTitle(toggleTitle(s))
	if s == recorder.Recording {
		a.mSelect.Disable()
	} else if !s.Active() {
		a.mSelect.Enable()
	}
	if text, ok := stateStatus(s); ok {
		a.mStatus.SetTitle(text)
	}
}

func (a *App) OnRegionSelected(r region.Region) {
	if !a.isReady() {
		return
	}
	a.mRegion.SetTitle(regionStatus(r))
	a.mStatus.SetTitle(regionStatus(r))
}

func (a *App) OnSaved(path string, frames int) {
	a.mu.Lock()
	a.lastSaved = path
	a.mu.Unlock()
	if !a.isReady() {
		return
	}
	a.mCopy.Enable()
	a.mStatus.SetTitle(savedStatus(path, frames))
}

// OnError shows the error without blocking the worker.
func (a *App) OnError(err error) {
	go showError(userMessage(err))
}
