package fill

import "github.com/Fepozopo/tilefill/pkg/tile"

// EdgeSet is a bitmask over the four tile edges.
type EdgeSet uint8

const (
	EdgeSetNorth EdgeSet = 1 << iota
	EdgeSetEast
	EdgeSetSouth
	EdgeSetWest
)

func edgeBit(i int) EdgeSet {
	switch i {
	case North:
		return EdgeSetNorth
	case East:
		return EdgeSetEast
	case South:
		return EdgeSetSouth
	case West:
		return EdgeSetWest
	default:
		return 0
	}
}

// Has reports whether bit is set in s.
func (s EdgeSet) Has(bit EdgeSet) bool { return s&bit != 0 }

// Empty reports whether s has no bits set.
func (s EdgeSet) Empty() bool { return s == 0 }

// GapSeed is a single seed pixel together with the gap distance it started
// on. Only the very first seed of a gap-closing fill carries one.
type GapSeed struct {
	Point    PixelPoint
	Distance uint16
}

// GapSeeds mirrors Seeds for the gap-closing driver: either the promoted
// initial point seed (with its starting gap distance) or the ranges
// propagated in from a neighbor tile.
type GapSeeds struct {
	FromEdge tile.Edge
	Initial  GapSeed
	Ranges   []SeedRange
}

// UnseepSeeds describes one entry in the seep-retraction queue: either the
// initial request to retract from every already-filled pixel along a
// tile's flagged edges, or a propagated request entering from one
// neighbor along specific ranges.
type UnseepSeeds struct {
	Initial bool
	Edges   EdgeSet
	Seeds   Seeds
}

// GapClosingFiller runs the constrained, gap-aware fill and its seep
// retraction pass.
type GapClosingFiller interface {
	// Fill propagates the fill from seeds across alpha exactly like the
	// ordinary tolerance fill. When any pixel it fills is one the gap
	// distance field marked as sitting inside a narrow break between walls,
	// fillEdges reports every tile edge the fill overflowed; otherwise it is
	// empty.
	Fill(alpha, dist tile.Tile, out tile.Tile, seeds GapSeeds, bounds tile.PixelBounds) (overflow Overflow, fillEdges EdgeSet, pixelsFilled int)

	// Unseep erases previously filled pixels reachable from seeds,
	// stopping at a pixel the distance field marks as a gap-corridor
	// pixel (it seals the break rather than being erased itself) or at an
	// already-empty pixel.
	Unseep(dist tile.Tile, out tile.Tile, seeds UnseepSeeds, bounds tile.PixelBounds) (overflow Overflow, erasedPixels int)
}

// DefaultGapClosingFiller is the engine's own implementation of the
// gap-closing fill and retraction algorithm. The constrained fill itself
// propagates exactly like the ordinary tolerance fill; what it adds is
// tracking: once any pixel it fills is one findGaps marked as sitting inside
// a narrow break between walls, every tile edge the fill overflowed is
// flagged, which drives the later seep-retraction pass.
type DefaultGapClosingFiller struct {
	MaxGapSize   int
	RetractSeeps bool
}

// NewDefaultGapClosingFiller builds a DefaultGapClosingFiller from already
// clamped options.
func NewDefaultGapClosingFiller(opts GapClosingOptions) *DefaultGapClosingFiller {
	return &DefaultGapClosingFiller{MaxGapSize: opts.MaxGapSize, RetractSeeps: opts.RetractSeeps}
}

func (g *DefaultGapClosingFiller) Fill(alpha, dist tile.Tile, out tile.Tile, seeds GapSeeds, bounds tile.PixelBounds) (Overflow, EdgeSet, int) {
	type point struct{ x, y int }
	var stack []point
	push := func(x, y int) {
		if x < bounds.MinX || x > bounds.MaxX || y < bounds.MinY || y > bounds.MaxY {
			return
		}
		stack = append(stack, point{x, y})
	}

	if seeds.FromEdge == tile.EdgeNone {
		push(seeds.Initial.Point.X, seeds.Initial.Point.Y)
	} else {
		for _, r := range seeds.Ranges {
			for v := r.Start; v <= r.End; v++ {
				x, y := edgeCoord(seeds.FromEdge, v)
				push(x, y)
			}
		}
	}

	var north, east, south, west edgeRun
	usedGap := false
	pixelsFilled := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out.At(p.x, p.y) != 0 {
			continue
		}

		a := alpha.At(p.x, p.y)
		if a == 0 {
			continue
		}
		out.Set(p.x, p.y, a)
		pixelsFilled++
		if dist.At(p.x, p.y) != tile.GaplessValue {
			usedGap = true
		}

		if p.y == 0 {
			north.mark(p.x)
		} else {
			push(p.x, p.y-1)
		}
		if p.x == tile.N-1 {
			east.mark(p.y)
		} else {
			push(p.x+1, p.y)
		}
		if p.y == tile.N-1 {
			south.mark(p.x)
		} else {
			push(p.x, p.y+1)
		}
		if p.x == 0 {
			west.mark(p.y)
		} else {
			push(p.x-1, p.y)
		}
	}

	overflow := Overflow{north.ranges(), east.ranges(), south.ranges(), west.ranges()}
	var fillEdges EdgeSet
	if usedGap {
		for i, ov := range overflow {
			if len(ov) > 0 {
				fillEdges |= edgeBit(i)
			}
		}
	}
	return overflow, fillEdges, pixelsFilled
}

func (g *DefaultGapClosingFiller) Unseep(dist tile.Tile, out tile.Tile, seeds UnseepSeeds, bounds tile.PixelBounds) (Overflow, int) {
	type point struct{ x, y int }
	var stack []point
	push := func(x, y int) {
		if x < bounds.MinX || x > bounds.MaxX || y < bounds.MinY || y > bounds.MaxY {
			return
		}
		stack = append(stack, point{x, y})
	}

	if seeds.Initial {
		if seeds.Edges.Has(EdgeSetNorth) {
			for x := 0; x < tile.N; x++ {
				push(x, 0)
			}
		}
		if seeds.Edges.Has(EdgeSetSouth) {
			for x := 0; x < tile.N; x++ {
				push(x, tile.N-1)
			}
		}
		if seeds.Edges.Has(EdgeSetEast) {
			for y := 0; y < tile.N; y++ {
				push(tile.N-1, y)
			}
		}
		if seeds.Edges.Has(EdgeSetWest) {
			for y := 0; y < tile.N; y++ {
				push(0, y)
			}
		}
	} else {
		for _, r := range seeds.Seeds.Ranges {
			for v := r.Start; v <= r.End; v++ {
				x, y := edgeCoord(seeds.Seeds.FromEdge, v)
				push(x, y)
			}
		}
	}

	var north, east, south, west edgeRun
	erased := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out.At(p.x, p.y) == 0 {
			continue
		}
		// A gap-corridor pixel is the sealing boundary of the break it
		// belongs to: retraction stops there instead of crossing back
		// through the gap into whatever legitimately reaches it from the
		// other side.
		if dist.At(p.x, p.y) != tile.GaplessValue {
			continue
		}
		out.Set(p.x, p.y, 0)
		erased++

		if p.y == 0 {
			north.mark(p.x)
		} else {
			push(p.x, p.y-1)
		}
		if p.x == tile.N-1 {
			east.mark(p.y)
		} else {
			push(p.x+1, p.y)
		}
		if p.y == tile.N-1 {
			south.mark(p.x)
		} else {
			push(p.x, p.y+1)
		}
		if p.x == 0 {
			west.mark(p.y)
		} else {
			push(p.x-1, p.y)
		}
	}

	return Overflow{north.ranges(), east.ranges(), south.ranges(), west.ranges()}, erased
}
