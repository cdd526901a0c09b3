package anno

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RasterizeAll rasterizes shapes in parallel. Each shape produces an
// isolated mask with no shared mutable state, so the work distributes
// freely across workers; results come back aligned with the input.
//
// Per-shape failures land in the aligned error slice and never affect
// other shapes. Context cancellation marks the remaining entries with
// the context error.
//
// The output order carries no compositing semantics; feeding the masks
// into a label map still requires the sequential last-write-wins pass
// of BuildLabelMap.
func RasterizeAll(ctx context.Context, width, height int, shapes []Shape, opts ...RasterOption) ([]*BitMask, []error) {
	masks := make([]*BitMask, len(shapes))
	errs := make([]error, len(shapes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range shapes {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			masks[i], errs[i] = Rasterize(width, height, s, opts...)
			return nil
		})
	}
	_ = g.Wait() // workers only report through the aligned slices

	return masks, errs
}
