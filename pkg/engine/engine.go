// Package engine wires the tile bounding box, uniform-tile cache, seed
// queue, scanline and gap-closing fill drivers, morphology, and compositor
// into the single public entry point a caller actually wants: flood-fill a
// region of a source surface and composite the result onto a destination.
package engine

import (
	"fmt"

	"github.com/Fepozopo/tilefill/pkg/compose"
	"github.com/Fepozopo/tilefill/pkg/fill"
	"github.com/Fepozopo/tilefill/pkg/morph"
	"github.com/Fepozopo/tilefill/pkg/tile"
)

// Options carries every flood_fill input besides the source/destination
// surfaces and the seed point.
type Options struct {
	Color      compose.Color
	Tolerance  float64
	Offset     int
	Feather    int
	GapClosing *fill.GapClosingOptions
	Mode       compose.Mode
	Framed     bool

	BBoxX, BBoxY, BBoxW, BBoxH int
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FloodFill runs a tile-graph flood fill seeded at pixel (x, y) of src and
// composites the result onto dst. A degenerate bbox (w<=0 or h<=0) is a
// silent no-op, matching the core algorithm's own error-handling design.
func FloodFill(src fill.Source, x, y int, opts Options, dst compose.Destination) error {
	if opts.BBoxW <= 0 || opts.BBoxH <= 0 {
		return nil
	}
	bbox, ok := tile.NewBoundingBox(opts.BBoxX, opts.BBoxY, opts.BBoxW, opts.BBoxH)
	if !ok {
		return nil
	}

	tolerance := clampFloat(opts.Tolerance, 0, 1)
	offset := clampInt(opts.Offset, -tile.N, tile.N)
	feather := clampInt(opts.Feather, 0, tile.N)

	seedTC, seedPX, seedPY := tile.PixelToTile(x, y)
	seedSrc, release, err := src.AcquireRead(seedTC.TX, seedTC.TY)
	if err != nil {
		return fmt.Errorf("engine: acquiring seed tile: %w", err)
	}
	tr, tg, tb, ta := seedSrc.At(seedPX, seedPY)
	release()

	filler := fill.NewToleranceFiller(tr, tg, tb, ta, tolerance)
	cache := tile.NewUniformCache()

	var filled map[tile.Coord]tile.Tile
	if opts.GapClosing != nil {
		driver := fill.NewGapClosingDriver(src, filler, cache, *opts.GapClosing)
		filled, err = driver.Run(seedTC, seedPX, seedPY, bbox)
	} else {
		driver := fill.NewScanlineDriver(src, filler, cache)
		filled, err = driver.Run(seedTC, seedPX, seedPY, bbox)
	}
	if err != nil {
		return fmt.Errorf("engine: running fill: %w", err)
	}

	trimResult := opts.Framed && (offset > 0 || feather != 0)

	if offset != 0 {
		filled = morph.Offset(filled, bbox, offset)
	}
	if feather != 0 {
		filled = morph.Feather(filled, bbox, float64(feather))
	}

	compositor := &compose.Compositor{
		Mode:       opts.Mode,
		Color:      opts.Color,
		TrimResult: trimResult,
		Bbox:       bbox,
		Dst:        dst,
	}
	if err := compositor.Run(filled); err != nil {
		return fmt.Errorf("engine: compositing: %w", err)
	}
	return nil
}
