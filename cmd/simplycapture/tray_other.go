//go:build !windows

package main

import (
	"errors"
	"log/slog"

	"simplycapture/internal/config"
)

func runTray(*slog.Logger, *config.Config, string) error {
	return errors.New("the tray shell needs Windows; pass -region left,top,width,height to record without it")
}
