// Package fill implements the tile-graph flood-fill engine: cross-tile
// seed propagation, the uniform-tile short-circuit, and the gap-closing
// fill variant with its alpha preparation, distance field and seep
// retraction passes.
package fill

import "github.com/Fepozopo/tilefill/pkg/tile"

// Direction indices into an Overflow, matching the fixed (N, E, S, W) order
// used everywhere seeds cross a tile boundary.
const (
	North = 0
	East  = 1
	South = 2
	West  = 3
)

// SeedRange is an inclusive pixel interval along one tile edge.
type SeedRange struct {
	Start, End int
}

// FullEdge is the seed range covering an entire tile edge, [0, N-1].
var FullEdge = SeedRange{Start: 0, End: tile.N - 1}

// PixelPoint is a single in-tile pixel coordinate.
type PixelPoint struct {
	X, Y int
}

// Overflow holds the seed ranges a filled tile leaves behind on each of its
// four edges, ordered (north, east, south, west) relative to the tile that
// produced it.
type Overflow [4][]SeedRange

// Seeds describes the seed data entering one tile: either a single point
// (the very first seed of a fill, FromEdge == tile.EdgeNone) or a set of
// ranges along the edge the fill arrived through.
type Seeds struct {
	FromEdge tile.Edge
	Point    PixelPoint
	Ranges   []SeedRange
}

// edgeOrder lists the edge identity of each Overflow slot, in order.
var edgeOrder = [4]tile.Edge{tile.EdgeNorth, tile.EdgeEast, tile.EdgeSouth, tile.EdgeWest}

// Record is one entry in the scanline fill queue (the gap-closing driver
// queues GapRecord instead).
type Record struct {
	Coord tile.Coord
	Seeds Seeds
}

// EnqueueOverflow appends the seed records an Overflow produces for the
// neighbors of src, skipping empty seed lists and any neighbor tile outside
// bbox. Order is fixed at (N, E, S, W), so the resulting queue entries carry
// unambiguous origin-edge tags.
func EnqueueOverflow(queue *[]Record, src tile.Coord, overflow Overflow, bbox tile.BoundingBox) {
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
		*queue = append(*queue, Record{
			Coord: nc,
			Seeds: Seeds{FromEdge: edgeOrder[i].Opposite(), Ranges: ranges},
		})
	}
}

// edgeRun accumulates touched pixel positions along a single tile edge and
// compresses them into the minimal set of inclusive SeedRanges. Ranges in
// an Overflow are built with one of these per direction.
type edgeRun struct {
	hit [tile.N]bool
	any bool
}

func (r *edgeRun) mark(i int) {
	r.hit[i] = true
	r.any = true
}

func (r *edgeRun) ranges() []SeedRange {
	if !r.any {
		return nil
	}
	var out []SeedRange
	i := 0
	for i < tile.N {
		if !r.hit[i] {
			i++
			continue
		}
		start := i
		for i < tile.N && r.hit[i] {
			i++
		}
		out = append(out, SeedRange{Start: start, End: i - 1})
	}
	return out
}
