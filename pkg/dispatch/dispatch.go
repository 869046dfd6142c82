// Package dispatch fans a per-pixel function out over the coordinates
// of an image. The pixel function must be safe to call concurrently
// and each call must only write to its own output location.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
)

// A PixelFunc is called exactly once for every coordinate.
type PixelFunc func(x, y int)

type Dispatcher interface {
	// Dispatch returns once fn has been called for every point in bounds,
	// or early with ctx's error if ctx is cancelled. Work already started
	// when cancellation is seen is allowed to finish.
	Dispatch(ctx context.Context, bounds image.Rectangle, fn PixelFunc) error
}

var ErrUnknownDispatcher = errors.New("unknown dispatcher")

var Names = []string{"rows", "tiles", "serial"}

// New returns the dispatcher registered under name. workers <= 0 means
// one per CPU.
func New(name string, workers int) (Dispatcher, error) {
	switch name {
	case "rows", "":
		return RowBands{Workers: workers}, nil
	case "tiles":
		return Tiles{Workers: workers, TileSize: DefaultTileSize}, nil
	case "serial":
		return Serial{}, nil
	}
	return nil, fmt.Errorf("dispatcher '%s' (want one of %v): %w", name, Names, ErrUnknownDispatcher)
}

func numWorkers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Serial walks the image row by row on the calling goroutine.
type Serial struct{}

func (Serial) Dispatch(ctx context.Context, bounds image.Rectangle, fn PixelFunc) error {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fn(x, y)
		}
	}
	return nil
}
