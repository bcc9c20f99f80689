//go:build !windows

package selector

import (
	"context"

	"simplycapture/internal/region"
)

type unsupported struct{ opts Options }

func newOverlay(opts Options) Selector { return unsupported{opts: opts} }

func (u unsupported) Select(ctx context.Context) (region.Region, error) {
	return withHooks(u.opts, func() (region.Region, error) {
		return region.Region{}, ErrUnsupported
	})
}
