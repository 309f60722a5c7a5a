package fill

import (
	"math"

	"github.com/Fepozopo/tilefill/pkg/tile"
)

// Filler scores a source tile's pixels against a target color and
// tolerance, producing the fill alpha the scanline and gap-closing drivers
// write into their output tiles.
type Filler interface {
	// TileUniformity reports the single alpha every pixel of src would
	// score, or ok == false if the tile is not uniform. isEmpty marks a
	// source tile known to hold no painted pixels at all (the surface's
	// transparent sentinel), letting an implementation skip the scan.
	TileUniformity(isEmpty bool, src PixelTile) (alpha uint16, ok bool)

	// Fill propagates the fill from seeds across src, writing alpha scores
	// into out for every pixel reached within bounds, and returns the
	// seed ranges that spilled across each tile edge. It must be
	// idempotent: pixels already written in out (nonzero) are left alone,
	// so repeated calls against the same out tile with different seeds
	// only do incremental work.
	Fill(src PixelTile, out tile.Tile, seeds Seeds, bounds tile.PixelBounds) Overflow

	// Flood scores every pixel of src unconditionally, ignoring
	// connectivity. It is used to materialize the alpha neighborhood that
	// gap detection searches.
	Flood(src PixelTile, out tile.Tile)
}

// ToleranceFiller is the engine's default Filler: it scores pixels by
// perceptual (CIE L*a*b*) distance from a target color, the same distance
// metric the package's originating paint-engine tooling uses for its
// fuzz-tolerant flood fill, adapted here to the tile engine's premultiplied
// linear color scale instead of 8-bit sRGB.
type ToleranceFiller struct {
	targetR, targetG, targetB, targetA uint16
	tolerance                          float64
	targetL, targetA_, targetB_        float64
}

// NewToleranceFiller constructs a Filler for the given target color and
// tolerance in [0.0, 1.0]. Per the fill contract, a fully transparent
// target forces its RGB to black so that transparent-vs-transparent always
// matches regardless of stray color data in unpainted pixels.
func NewToleranceFiller(targetR, targetG, targetB, targetA uint16, tolerance float64) *ToleranceFiller {
	if targetA == 0 {
		targetR, targetG, targetB = 0, 0, 0
	}
	f := &ToleranceFiller{
		targetR: targetR, targetG: targetG, targetB: targetB, targetA: targetA,
		tolerance: tolerance,
	}
	rf, gf, bf := unpremultiply(targetR, targetG, targetB, targetA)
	x, y, z := linearToXYZ(rf, gf, bf)
	f.targetL, f.targetA_, f.targetB_ = xyzToLab(x, y, z)
	return f
}

func unpremultiply(r, g, b, a uint16) (rf, gf, bf float64) {
	if a == 0 {
		return 0, 0, 0
	}
	af := float64(a)
	rf = clamp01(float64(r) / af)
	gf = clamp01(float64(g) / af)
	bf = clamp01(float64(b) / af)
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func linearToXYZ(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return
}

func xyzToLab(x, y, z float64) (l, a, b float64) {
	xr := x / 0.95047
	yr := y / 1.00000
	zr := z / 1.08883
	f := func(t float64) float64 {
		if t > 0.008856 {
			return math.Cbrt(t)
		}
		return 7.787037*t + 16.0/116.0
	}
	fx, fy, fz := f(xr), f(yr), f(zr)
	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return
}

// maxDeltaEPerTolerance scales the [0,1] tolerance input into a Lab
// delta-E-ish budget. The value is a calibration choice, not a derived
// constant: it sets how quickly the soft-match falloff reaches zero.
const maxDeltaEPerTolerance = 120.0

// score returns the fill alpha a pixel earns against the filler's target.
// At zero tolerance the match is a hard threshold (needed for the
// deterministic "filled region == pixels within tolerance" invariant);
// above zero it falls off linearly with combined color and alpha distance.
func (f *ToleranceFiller) score(r, g, b, a uint16) uint16 {
	rf, gf, bf := unpremultiply(r, g, b, a)
	x, y, z := linearToXYZ(rf, gf, bf)
	l, la, lb := xyzToLab(x, y, z)
	dl, da, db := l-f.targetL, la-f.targetA_, lb-f.targetB_
	colorDelta := math.Sqrt(dl*dl + da*da + db*db)
	alphaDelta := math.Abs(float64(a)-float64(f.targetA)) / float64(tile.Opaque) * 100

	delta := colorDelta + alphaDelta
	if f.tolerance <= 0 {
		if delta < 1e-6 {
			return tile.Opaque
		}
		return 0
	}
	maxDelta := f.tolerance * maxDeltaEPerTolerance
	frac := 1 - delta/maxDelta
	if frac <= 0 {
		return 0
	}
	if frac > 1 {
		frac = 1
	}
	return uint16(frac * float64(tile.Opaque))
}

func (f *ToleranceFiller) TileUniformity(isEmpty bool, src PixelTile) (uint16, bool) {
	_ = isEmpty
	var first uint16
	for y := 0; y < tile.N; y++ {
		for x := 0; x < tile.N; x++ {
			r, g, b, a := src.At(x, y)
			s := f.score(r, g, b, a)
			if x == 0 && y == 0 {
				first = s
				continue
			}
			if s != first {
				return 0, false
			}
		}
	}
	return first, true
}

func (f *ToleranceFiller) Flood(src PixelTile, out tile.Tile) {
	for y := 0; y < tile.N; y++ {
		for x := 0; x < tile.N; x++ {
			r, g, b, a := src.At(x, y)
			out.Set(x, y, f.score(r, g, b, a))
		}
	}
}

// edgeCoord converts a coordinate along the edge a seed arrived through
// into full in-tile pixel coordinates.
func edgeCoord(from tile.Edge, v int) (x, y int) {
	switch from {
	case tile.EdgeNorth:
		return v, 0
	case tile.EdgeSouth:
		return v, tile.N - 1
	case tile.EdgeEast:
		return tile.N - 1, v
	case tile.EdgeWest:
		return 0, v
	default:
		return v, v
	}
}

func (f *ToleranceFiller) Fill(src PixelTile, out tile.Tile, seeds Seeds, bounds tile.PixelBounds) Overflow {
	type point struct{ x, y int }
	var stack []point
	push := func(x, y int) {
		if x < bounds.MinX || x > bounds.MaxX || y < bounds.MinY || y > bounds.MaxY {
			return
		}
		stack = append(stack, point{x, y})
	}

	if seeds.FromEdge == tile.EdgeNone {
		push(seeds.Point.X, seeds.Point.Y)
	} else {
		for _, r := range seeds.Ranges {
			for v := r.Start; v <= r.End; v++ {
				x, y := edgeCoord(seeds.FromEdge, v)
				push(x, y)
			}
		}
	}

	var north, east, south, west edgeRun
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out.At(p.x, p.y) != 0 {
			continue
		}
		r, g, b, a := src.At(p.x, p.y)
		s := f.score(r, g, b, a)
		if s == 0 {
			continue
		}
		out.Set(p.x, p.y, s)

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

	return Overflow{north.ranges(), east.ranges(), south.ranges(), west.ranges()}
}
