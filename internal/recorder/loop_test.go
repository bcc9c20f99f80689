package recorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"simplycapture/internal/capture"
	"simplycapture/internal/region"
)

type countingSink struct {
	appended int
	failAt   int
}

func (s *countingSink) Append(*capture.Frame) error {
	s.appended++
	if s.failAt > 0 && s.appended >= s.failAt {
		return errors.New("disk full")
	}
	return nil
}

func (s *countingSink) Finalize() error { return nil }

func TestRunLoop_Pacing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	sink := &countingSink{}
	frames, err := runLoop(ctx, &fakeSource{}, sink, region.Region{Width: 4, Height: 4}, 50)
	if err != nil {
		t.Fatalf("runLoop: %v", err)
	}
	// 0.5s at 50 fps is 25 frames; allow scheduler slack below.
	if frames < 15 || frames > 27 {
		t.Fatalf("frames = %d, want about 25", frames)
	}
	if sink.appended != frames {
		t.Fatalf("appended %d, reported %d", sink.appended, frames)
	}
}

func TestRunLoop_OverrunLowersRateWithoutDropping(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	src := &fakeSource{cost: 30 * time.Millisecond}
	sink := &countingSink{}
	frames, err := runLoop(ctx, src, sink, region.Region{Width: 4, Height: 4}, 50)
	if err != nil {
		t.Fatalf("runLoop: %v", err)
	}
	if frames > 11 {
		t.Fatalf("frames = %d, overrunning ticks must not be made up", frames)
	}
	if int64(frames) != src.grabs.Load() || sink.appended != frames {
		t.Fatalf("grabs=%d appended=%d frames=%d, every grab must be written once",
			src.grabs.Load(), sink.appended, frames)
	}
}

func TestRunLoop_StoppedBeforeFirstTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{}
	frames, err := runLoop(ctx, src, &countingSink{}, region.Region{Width: 4, Height: 4}, 20)
	if err != nil || frames != 0 || src.grabs.Load() != 0 {
		t.Fatalf("frames=%d grabs=%d err=%v", frames, src.grabs.Load(), err)
	}
}

func TestRunLoop_Errors(t *testing.T) {
	r := region.Region{Width: 4, Height: 4}

	frames, err := runLoop(context.Background(), &fakeSource{failAt: 2}, &countingSink{}, r, 1000)
	var ce *capture.Error
	if !errors.As(err, &ce) || frames != 1 {
		t.Fatalf("capture failure: frames=%d err=%v", frames, err)
	}

	frames, err = runLoop(context.Background(), &fakeSource{}, &countingSink{failAt: 3}, r, 1000)
	if err == nil || frames != 2 {
		t.Fatalf("append failure: frames=%d err=%v", frames, err)
	}
}
