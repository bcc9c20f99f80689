package recorder

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"simplycapture/internal/encoder"
	"simplycapture/internal/region"
)

var (
	ErrNoRegionSelected = errors.New("no region selected")
	ErrAlreadyRecording = errors.New("already recording")
)

// DefaultFrameRate is used when Options.FrameRate is zero.
const DefaultFrameRate = 20

// State is the lifecycle position of the controller's current session.
type State int

const (
	Idle State = iota
	Recording
	Stopping
	Stopped
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Recording:
		return "Recording"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Active reports whether a worker may still be running in this state.
func (s State) Active() bool {
	return s == Recording || s == Stopping
}

// Session describes one start-to-stop recording.
type Session struct {
	ID         uuid.UUID
	Region     region.Region
	OutputPath string
	FrameRate  int
	State      State
	StartedAt  time.Time
	// Frames and Err are set once the worker has exited.
	Frames int
	Err    error
}

// FileName returns the output file name for a recording started at t.
func FileName(t time.Time) string {
	return "screenrecording_" + t.Format("010206_150405") + "." + encoder.Extension
}
