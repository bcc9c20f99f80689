//go:build windows

package startup

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

func ShortcutPath() string {
	appData := os.Getenv("APPDATA")
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup", ShortcutName)
}

func IsEnabled() bool {
	_, err := os.Stat(ShortcutPath())
	return err == nil
}

func Enable() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command("powershell", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command",
		shortcutScript(ShortcutPath(), exePath))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("create startup shortcut: %w: %s", err, out)
	}
	return nil
}

func Disable() error {
	err := os.Remove(ShortcutPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
