package fill

import "github.com/Fepozopo/tilefill/pkg/tile"

// Skipper implements the uniform-tile short-circuit: before running the
// pixel-by-pixel Filler, it asks whether the whole source tile would score
// a single repeated alpha, and if so hands back the cached uniform tile and
// full-edge overflow directly, skipping the scanline fill entirely.
type Skipper struct {
	Filler Filler
	Cache  *tile.UniformCache
}

// NewSkipper builds a Skipper over f, caching uniform results in cache so
// that every tile scoring the same alpha shares one Tile value.
func NewSkipper(f Filler, cache *tile.UniformCache) *Skipper {
	return &Skipper{Filler: f, Cache: cache}
}

// fullOverflow is the seed set a wholly-filled tile leaves on every edge.
var fullOverflow = Overflow{
	{FullEdge}, {FullEdge}, {FullEdge}, {FullEdge},
}

// Check attempts the short-circuit for src. isEmpty marks a source tile
// already known to be the surface's transparent sentinel, letting the
// underlying Filler skip its scan. On success it returns the sentinel or
// cached uniform output tile and the overflow a wholly-filled tile leaves
// on its edges, with ok == true: the caller must add the tile to its final
// set and must not run the per-pixel Filler against it. On failure
// (ok == false) the source tile is not uniform and has to go through
// Filler.Fill as usual.
func (s *Skipper) Check(isEmpty bool, src PixelTile) (out tile.Tile, overflow Overflow, ok bool) {
	alpha, uniform := s.Filler.TileUniformity(isEmpty, src)
	if !uniform {
		return tile.Tile{}, Overflow{}, false
	}
	out = s.Cache.Get(alpha)
	if alpha == 0 {
		return out, Overflow{}, true
	}
	return out, fullOverflow, true
}
