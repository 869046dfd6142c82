package dispatch

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

// DefaultTileSize keeps a tile of 8-bit RGBA at 16KB.
const DefaultTileSize = 64

// Tiles cuts the image into square tiles and hands them to a bounded
// pool of workers. Edge tiles are clipped to bounds.
type Tiles struct {
	Workers  int
	TileSize int
}

// TileRects lists the tiles covering bounds, in row-major order.
func TileRects(bounds image.Rectangle, size int) []image.Rectangle {
	if size <= 0 {
		size = DefaultTileSize
	}

	var tiles []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y += size {
		for x := bounds.Min.X; x < bounds.Max.X; x += size {
			tiles = append(tiles, image.Rect(x, y, x+size, y+size).Intersect(bounds))
		}
	}
	return tiles
}

func (t Tiles) Dispatch(ctx context.Context, bounds image.Rectangle, fn PixelFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers(t.Workers))

	for _, tile := range TileRects(bounds, t.TileSize) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for y := tile.Min.Y; y < tile.Max.Y; y++ {
				for x := tile.Min.X; x < tile.Max.X; x++ {
					fn(x, y)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
