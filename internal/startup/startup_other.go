//go:build !windows

package startup

func ShortcutPath() string { return "" }

func IsEnabled() bool { return false }

func Enable() error { return ErrUnsupported }

func Disable() error { return nil }
