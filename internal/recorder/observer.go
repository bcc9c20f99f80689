package recorder

import "simplycapture/internal/region"

// Observer receives controller events. Events arrive one at a time in the
// order the transitions happened, from the caller's goroutine or from the
// recording worker. Callbacks must return quickly and must not call back into
// the Controller; hand such work to another goroutine.
type Observer interface {
	OnStateChanged(s State)
	OnRegionSelected(r region.Region)
	// OnSaved fires once per session after the file has been finalized, on
	// success and on failure alike.
	OnSaved(path string, frames int)
	OnError(err error)
}

type nopObserver struct{}

func (nopObserver) OnStateChanged(State) {}
func (nopObserver) OnRegionSelected(region.Region) {}
func (nopObserver) OnSaved(string, int) {}
func (nopObserver) OnError(error) {}
