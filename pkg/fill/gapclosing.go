package fill

import "github.com/Fepozopo/tilefill/pkg/tile"

// GapClosingOptions configures the gap-closing fill variant.
type GapClosingOptions struct {
	// MaxGapSize is the widest gap, in pixels, a fill may bridge.
	// Clamped to [1, tile.N].
	MaxGapSize int
	// RetractSeeps controls whether pixels reached only by bridging a gap
	// are erased again once the whole fill is known.
	RetractSeeps bool
}

// clamped returns a copy of o with MaxGapSize clamped into range. The
// caller's value is never mutated: reusing the same GapClosingOptions
// across multiple flood_fill calls must not surprise the caller by having
// its fields rewritten underneath it.
func (o GapClosingOptions) clamped() GapClosingOptions {
	c := o
	if c.MaxGapSize < 1 {
		c.MaxGapSize = 1
	}
	if c.MaxGapSize > tile.N {
		c.MaxGapSize = tile.N
	}
	return c
}

// GapRecord is one entry in the gap-closing fill queue.
type GapRecord struct {
	Coord tile.Coord
	Seeds GapSeeds
}

func enqueueGapOverflow(queue *[]GapRecord, src tile.Coord, overflow Overflow, bbox tile.BoundingBox) {
	neighbors := src.Neighbors()
	for i := 0; i < 4; i++ {
		ranges := overflow[i]
		if len(ranges) == 0 {
			continue
		}
		nc := neighbors[i]
		if bbox.Outside(nc) {
			continue
		}
		*queue = append(*queue, GapRecord{
			Coord: nc,
			Seeds: GapSeeds{FromEdge: edgeOrder[i].Opposite(), Ranges: ranges},
		})
	}
}

type unseepRecord struct {
	Coord tile.Coord
	Seeds UnseepSeeds
}

func enqueueUnseepOverflow(queue *[]unseepRecord, src tile.Coord, overflow Overflow, bbox tile.BoundingBox) {
	neighbors := src.Neighbors()
	for i := 0; i < 4; i++ {
		ranges := overflow[i]
		if len(ranges) == 0 {
			continue
		}
		nc := neighbors[i]
		if bbox.Outside(nc) {
			continue
		}
		*queue = append(*queue, unseepRecord{
			Coord: nc,
			Seeds: UnseepSeeds{Seeds: Seeds{FromEdge: edgeOrder[i].Opposite(), Ranges: ranges}},
		})
	}
}

// GapClosingDriver runs the gap-closing fill variant: 3x3 alpha
// preparation, per-tile gap distance fields, the constrained fill, and the
// seep-retraction pass with rollback.
type GapClosingDriver struct {
	Source  Source
	Filler  Filler
	GCF     GapClosingFiller
	Cache   *tile.UniformCache
	Bucket  DistanceBucket
	Options GapClosingOptions
}

// NewGapClosingDriver wires a Source, Filler and shared uniform-tile cache
// into a ready-to-run gap-closing driver.
func NewGapClosingDriver(src Source, filler Filler, cache *tile.UniformCache, opts GapClosingOptions) *GapClosingDriver {
	opts = opts.clamped()
	return &GapClosingDriver{
		Source:  src,
		Filler:  filler,
		GCF:     NewDefaultGapClosingFiller(opts),
		Cache:   cache,
		Bucket:  DistanceBucket{MaxGapSize: opts.MaxGapSize},
		Options: opts,
	}
}

// prepAlphas ensures fullAlphas holds a scored alpha tile for tc and each
// of its eight neighbors, classifying each through Filler.TileUniformity
// before falling back to a full per-pixel Filler.Flood.
func (d *GapClosingDriver) prepAlphas(tc tile.Coord, fullAlphas map[tile.Coord]tile.Tile) error {
	for _, ntc := range tc.NineGrid() {
		if _, ok := fullAlphas[ntc]; ok {
			continue
		}
		src, release, err := d.Source.AcquireRead(ntc.TX, ntc.TY)
		if err != nil {
			return err
		}
		isEmpty := false
		if eh, ok := src.(EmptyHint); ok {
			isEmpty = eh.IsEmpty()
		}
		if alpha, uniform := d.Filler.TileUniformity(isEmpty, src); uniform {
			fullAlphas[ntc] = d.Cache.Get(alpha)
			release()
			continue
		}
		buf := tile.NewOwned()
		d.Filler.Flood(src, buf)
		release()
		fullAlphas[ntc] = buf
	}
	return nil
}

// computeDistance derives tc's gap distance field from its already
// materialized 3x3 alpha neighborhood, taking the GAPLESS_TILE
// short-circuit whenever the geometry proves no gap can reach tc.
func (d *GapClosingDriver) computeDistance(tc tile.Coord, fullAlphas, distances map[tile.Coord]tile.Tile) {
	if _, ok := distances[tc]; ok {
		return
	}
	grid9 := tc.NineGrid()
	var grid [9]tile.Tile
	allFull := true
	for i, ntc := range grid9 {
		grid[i] = fullAlphas[ntc]
		if !grid[i].IsFull() {
			allFull = false
		}
	}
	if allFull || (grid[0].IsFull() && noCornerGaps(d.Bucket.MaxGapSize, grid[1], grid[2], grid[3], grid[4])) {
		distances[tc] = tile.GaplessTile
		return
	}
	buf := tile.NewOwnedFilled(tile.GaplessValue)
	findGaps(&d.Bucket, buf, grid)
	distances[tc] = buf
}

// Run executes the gap-closing flood fill seeded at pixel (seedX, seedY)
// of tile seedTile, constrained to bbox, and returns the filled alpha
// tiles keyed by tile coordinate.
func (d *GapClosingDriver) Run(seedTile tile.Coord, seedX, seedY int, bbox tile.BoundingBox) (map[tile.Coord]tile.Tile, error) {
	fullAlphas := make(map[tile.Coord]tile.Tile)
	distances := make(map[tile.Coord]tile.Tile)
	filled := make(map[tile.Coord]tile.Tile)
	backup := make(map[tile.Coord]tile.Tile)

	if err := d.prepAlphas(seedTile, fullAlphas); err != nil {
		return nil, err
	}
	d.computeDistance(seedTile, fullAlphas, distances)
	seedDist := distances[seedTile].At(seedX, seedY)

	queue := []GapRecord{{
		Coord: seedTile,
		Seeds: GapSeeds{
			FromEdge: tile.EdgeNone,
			Initial:  GapSeed{Point: PixelPoint{X: seedX, Y: seedY}, Distance: seedDist},
		},
	}}

	var unseepQueue []unseepRecord
	totalPixels := 0

	for len(queue) > 0 {
		rec := queue[0]
		queue = queue[1:]
		tc := rec.Coord

		if bbox.Outside(tc) {
			continue
		}
		if err := d.prepAlphas(tc, fullAlphas); err != nil {
			return nil, err
		}
		d.computeDistance(tc, fullAlphas, distances)

		out, exists := filled[tc]
		if !exists {
			out = tile.NewOwned()
		}
		overflow, fillEdges, n := d.GCF.Fill(fullAlphas[tc], distances[tc], out, rec.Seeds, bbox.TileBounds(tc))
		filled[tc] = out
		totalPixels += n

		enqueueGapOverflow(&queue, tc, overflow, bbox)

		if !fillEdges.Empty() {
			unseepQueue = append(unseepQueue, unseepRecord{
				Coord: tc,
				Seeds: UnseepSeeds{Initial: true, Edges: fillEdges},
			})
		}
	}

	if d.Options.RetractSeeps {
		backedUp := make(map[tile.Coord]bool)
		for len(unseepQueue) > 0 {
			rec := unseepQueue[0]
			unseepQueue = unseepQueue[1:]
			tc := rec.Coord

			dist, hasDist := distances[tc]
			out, hasFilled := filled[tc]
			if !hasDist || !hasFilled {
				continue
			}
			if !backedUp[tc] {
				backup[tc] = out.Clone()
				backedUp[tc] = true
			}

			overflow, erased := d.GCF.Unseep(dist, out, rec.Seeds, bbox.TileBounds(tc))
			totalPixels -= erased
			enqueueUnseepOverflow(&unseepQueue, tc, overflow, bbox)
		}

		if totalPixels <= 0 {
			for tc, snap := range backup {
				filled[tc] = snap
			}
		}
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
