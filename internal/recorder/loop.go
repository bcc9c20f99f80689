package recorder

import (
	"context"
	"fmt"
	"time"

	"simplycapture/internal/capture"
	"simplycapture/internal/encoder"
	"simplycapture/internal/region"
)

// runLoop grabs r from src and appends it to sink about fps times a second
// until ctx is cancelled or a grab or append fails. Ticks that overrun the
// interval are not made up, so sustained overrun lowers the effective rate
// without dropping or duplicating frames. The caller finalizes sink.
func runLoop(ctx context.Context, src capture.Source, sink encoder.Sink, r region.Region, fps int) (int, error) {
	interval := time.Second / time.Duration(fps)
	timer := time.NewTimer(interval)
	timer.Stop()
	defer timer.Stop()

	frames := 0
	for {
		if ctx.Err() != nil {
			return frames, nil
		}
		start := time.Now()

		f, err := src.Grab(r)
		if err != nil {
			return frames, err
		}
		if err := sink.Append(f); err != nil {
			return frames, fmt.Errorf("append frame %d: %w", frames, err)
		}
		frames++

		wait := interval - time.Since(start)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return frames, nil
		case <-timer.C:
		}
	}
}
