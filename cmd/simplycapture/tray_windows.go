//go:build windows

package main

import (
	"errors"
	"log/slog"

	"golang.org/x/sys/windows"

	"simplycapture/internal/assets"
	"simplycapture/internal/config"
	"simplycapture/internal/tray"
)

var errAlreadyRunning = errors.New("another instance of SimplyCapture is already running")

func runTray(logger *slog.Logger, cfg *config.Config, cfgPath string) error {
	mutexName, err := windows.UTF16PtrFromString("Global\\SimplyCapture-SingleInstance-Mutex")
	if err != nil {
		return err
	}
	instanceMutex, err := windows.CreateMutex(nil, false, mutexName)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if instanceMutex != 0 {
			windows.CloseHandle(instanceMutex)
		}
		return errAlreadyRunning
	}
	if err != nil {
		return err
	}
	defer windows.CloseHandle(instanceMutex)

	// A missing or unreadable icon is fatal.
	icons, err := assets.Load(cfg.AssetDir, cfg.StartIcon, cfg.StopIcon)
	if err != nil {
		return err
	}

	app := tray.New(tray.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Icons:      icons,
		Logger:     logger,
	})
	app.Bind(newController(logger, cfg, app))
	app.Run()
	return nil
}
