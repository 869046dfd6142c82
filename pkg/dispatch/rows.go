package dispatch

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

// RowBands splits the image into one contiguous band of rows per
// worker. Band i covers rows [i*h/n, (i+1)*h/n).
type RowBands struct {
	Workers int
}

func (rb RowBands) Dispatch(ctx context.Context, bounds image.Rectangle, fn PixelFunc) error {
	h := bounds.Dy()
	n := numWorkers(rb.Workers)
	if n > h {
		n = h
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		band := image.Rect(bounds.Min.X, bounds.Min.Y+i*h/n, bounds.Max.X, bounds.Min.Y+(i+1)*h/n)
		g.Go(func() error {
			return Serial{}.Dispatch(gctx, band, fn)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
