package dispatch

import (
	"context"
	"image"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDispatchers() map[string]Dispatcher {
	return map[string]Dispatcher{
		"serial":        Serial{},
		"rows":          RowBands{},
		"rows-1":        RowBands{Workers: 1},
		"rows-many":     RowBands{Workers: 64},
		"tiles":         Tiles{},
		"tiles-small":   Tiles{Workers: 3, TileSize: 7},
		"tiles-default": Tiles{Workers: 2, TileSize: 0},
	}
}

func TestDispatchVisitsEveryPointOnce(t *testing.T) {
	bounds := image.Rect(-3, 5, 150, 71)

	for name, d := range allDispatchers() {
		t.Run(name, func(t *testing.T) {
			counts := make([]int32, bounds.Dx()*bounds.Dy())
			err := d.Dispatch(context.Background(), bounds, func(x, y int) {
				if !assert.True(t, image.Pt(x, y).In(bounds)) {
					return
				}
				atomic.AddInt32(&counts[(y-bounds.Min.Y)*bounds.Dx()+(x-bounds.Min.X)], 1)
			})
			require.NoError(t, err)

			for i, c := range counts {
				require.Equal(t, int32(1), c, "index %d", i)
			}
		})
	}
}

func TestDispatchEmptyBounds(t *testing.T) {
	for name, d := range allDispatchers() {
		called := false
		require.NoError(t, d.Dispatch(context.Background(), image.Rectangle{}, func(int, int) { called = true }), name)
		assert.False(t, called, name)
	}
}

func TestDispatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, d := range allDispatchers() {
		var n atomic.Int64
		err := d.Dispatch(ctx, image.Rect(0, 0, 500, 500), func(int, int) { n.Add(1) })
		assert.ErrorIs(t, err, context.Canceled, name)
		assert.Less(t, n.Load(), int64(500*500), name)
	}
}

func TestTileRects(t *testing.T) {
	tiles := TileRects(image.Rect(0, 0, 130, 64), 64)
	require.Len(t, tiles, 3)
	assert.Equal(t, image.Rect(128, 0, 130, 64), tiles[2])
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		d, err := New(name, 2)
		require.NoError(t, err)
		require.NotNil(t, d)
	}

	_, err := New("gpu", 0)
	assert.ErrorIs(t, err, ErrUnknownDispatcher)
}
