package fill

import "github.com/Fepozopo/tilefill/pkg/tile"

// ScanlineDriver runs the tile-graph flood fill: it walks the seed queue,
// applying the uniform-tile short-circuit where possible and falling back
// to the per-pixel Filler otherwise, until the queue is dry.
type ScanlineDriver struct {
	Source  Source
	Filler  Filler
	Skipper *Skipper
}

// fullTileBounds is the in-tile clip of a tile the bbox does not cut into.
var fullTileBounds = tile.PixelBounds{MinX: 0, MinY: 0, MaxX: tile.N - 1, MaxY: tile.N - 1}

// NewScanlineDriver wires a Source, Filler and shared uniform-tile cache
// into a ready-to-run driver.
func NewScanlineDriver(src Source, filler Filler, cache *tile.UniformCache) *ScanlineDriver {
	return &ScanlineDriver{Source: src, Filler: filler, Skipper: NewSkipper(filler, cache)}
}

// Run executes the flood fill seeded at pixel (seedX, seedY) of tile
// seedTile, constrained to bbox, and returns the filled alpha tiles keyed
// by tile coordinate. Only tiles that received at least one nonzero pixel,
// or that short-circuited to a uniform non-transparent tile, are present
// in the result.
func (d *ScanlineDriver) Run(seedTile tile.Coord, seedX, seedY int, bbox tile.BoundingBox) (map[tile.Coord]tile.Tile, error) {
	filled := make(map[tile.Coord]tile.Tile)
	final := make(map[tile.Coord]bool)

	queue := []Record{{
		Coord: seedTile,
		Seeds: Seeds{FromEdge: tile.EdgeNone, Point: PixelPoint{X: seedX, Y: seedY}},
	}}

	for len(queue) > 0 {
		rec := queue[0]
		queue = queue[1:]
		tc := rec.Coord

		if bbox.Outside(tc) || final[tc] {
			continue
		}

		src, release, err := d.Source.AcquireRead(tc.TX, tc.TY)
		if err != nil {
			return nil, err
		}

		// A tile the bbox cuts through needs per-pixel clipping, so only a
		// tile whose clip is the whole tile may take the short-circuit.
		_, alreadyTouched := filled[tc]
		if !alreadyTouched && bbox.TileBounds(tc) == fullTileBounds {
			isEmpty := false
			if eh, ok := src.(EmptyHint); ok {
				isEmpty = eh.IsEmpty()
			}
			if out, overflow, ok := d.Skipper.Check(isEmpty, src); ok {
				release()
				final[tc] = true
				if out.IsEmpty() {
					continue
				}
				filled[tc] = out
				EnqueueOverflow(&queue, tc, overflow, bbox)
				continue
			}
		}

		out, exists := filled[tc]
		if !exists {
			out = tile.NewOwned()
		}
		overflow := d.Filler.Fill(src, out, rec.Seeds, bbox.TileBounds(tc))
		release()
		filled[tc] = out
		EnqueueOverflow(&queue, tc, overflow, bbox)
	}

	result := make(map[tile.Coord]tile.Tile, len(filled))
	for tc, t := range filled {
		if t.AllZero() {
			continue
		}
		result[tc] = t
	}
	return result, nil
}
