// Package tray is the system tray shell around the recorder.
package tray

import (
	"errors"
	"fmt"
	"path/filepath"

	"simplycapture/internal/capture"
	"simplycapture/internal/encoder"
	"simplycapture/internal/recorder"
	"simplycapture/internal/region"
	"simplycapture/internal/selector"
)

const appName = "SimplyCapture"

// stateStatus is the status line for s. Stopped leaves the line to the
// preceding save notice.
func stateStatus(s recorder.State) (string, bool) {
	switch s {
	case recorder.Idle:
		return "Status: Idle", true
	case recorder.Recording:
		return "Status: Recording", true
	case recorder.Stopping:
		return "Status: Saving recording...", true
	case recorder.Failed:
		return "Recording stopped unexpectedly.", true
	}
	return "", false
}

func savedStatus(path string, frames int) string {
	return fmt.Sprintf("Recording saved as %s (%d frames)", filepath.Base(path), frames)
}

func regionStatus(r region.Region) string {
	return "Selected Region: " + r.String()
}

func folderLabel(dir string) string {
	if dir == "" {
		return "Save Folder: (working directory)"
	}
	return "Save Folder: " + dir
}

func toggleTitle(s recorder.State) string {
	if s.Active() {
		return "Stop Recording"
	}
	return "Start Recording"
}

func tooltip(s recorder.State, hotkey string) string {
	if s == recorder.Recording {
		return appName + " - Recording (" + hotkey + " to stop)"
	}
	return appName
}

// userMessage turns an error from the controller or selector into text for
// a message box.
func userMessage(err error) string {
	var oe *encoder.OpenError
	var ce *capture.Error
	switch {
	case errors.Is(err, recorder.ErrNoRegionSelected):
		return "Please select a region before starting the recording."
	case errors.Is(err, recorder.ErrAlreadyRecording):
		return "A recording is already in progress."
	case errors.Is(err, selector.ErrCancelled):
		return "Region selection was cancelled."
	case errors.As(err, &oe):
		return fmt.Sprintf("Could not create %s:\n%v", oe.Path, oe.Err)
	case errors.As(err, &ce):
		if errors.Is(ce.Err, capture.ErrOffScreen) {
			return fmt.Sprintf("The region %s is no longer on screen.", ce.Region)
		}
		return fmt.Sprintf("Screen capture failed: %v", ce.Err)
	}
	return err.Error()
}
