package selector

import (
	"context"
	"errors"
	"testing"

	"simplycapture/internal/region"
)

func TestWithHooks_RestoresOnEveryOutcome(t *testing.T) {
	outcomes := []struct {
		name string
		r    region.Region
		err  error
	}{
		{"selected", region.Region{Width: 10, Height: 10}, nil},
		{"cancelled", region.Region{}, ErrCancelled},
	}
	for _, tc := range outcomes {
		t.Run(tc.name, func(t *testing.T) {
			var calls []string
			opts := Options{
				Hide:    func() { calls = append(calls, "hide") },
				Restore: func() { calls = append(calls, "restore") },
			}
			got, err := withHooks(opts, func() (region.Region, error) {
				calls = append(calls, "select")
				return tc.r, tc.err
			})
			if !errors.Is(err, tc.err) || got != tc.r {
				t.Fatalf("got (%v, %v), want (%v, %v)", got, err, tc.r, tc.err)
			}
			if len(calls) != 3 || calls[0] != "hide" || calls[1] != "select" || calls[2] != "restore" {
				t.Fatalf("hook order = %v", calls)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	want := region.Region{Left: 1, Top: 2, Width: 3, Height: 4}
	var s Selector = Func(func(context.Context) (region.Region, error) { return want, nil })
	got, err := s.Select(context.Background())
	if err != nil || got != want {
		t.Fatalf("Select = %v, %v", got, err)
	}
}
