// Package startup manages the Startup folder shortcut that launches the
// recorder at logon.
package startup

import (
	"errors"
	"strings"
)

const ShortcutName = "SimplyCapture.lnk"

var ErrUnsupported = errors.New("start on boot is not supported on this platform")

// shortcutScript returns the PowerShell that writes a shortcut at link
// pointing to target.
func shortcutScript(link, target string) string {
	return "$WshShell = New-Object -ComObject WScript.Shell; " +
		"$Shortcut = $WshShell.CreateShortcut(" + psQuote(link) + "); " +
		"$Shortcut.TargetPath = " + psQuote(target) + "; " +
		"$Shortcut.Save()"
}

// psQuote makes s a single-quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
