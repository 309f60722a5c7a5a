package tile

// UniformCache memoizes the shared Uniform tiles produced when a source
// tile scores the same alpha at every pixel. It is scoped to a single fill
// operation: construct one per call to the top-level fill entry point and
// discard it once the fill completes.
type UniformCache struct {
	tiles map[uint16]Tile
}

// NewUniformCache returns an empty cache.
func NewUniformCache() *UniformCache {
	return &UniformCache{tiles: make(map[uint16]Tile)}
}

// Get returns the shared tile for alpha, creating and memoizing it on the
// first request. Alpha 0 and Opaque resolve to the Empty/Full sentinels
// rather than entries in the map.
func (c *UniformCache) Get(alpha uint16) Tile {
	if alpha == 0 {
		return EmptyTile
	}
	if alpha == Opaque {
		return FullTile
	}
	if t, ok := c.tiles[alpha]; ok {
		return t
	}
	t := Tile{Kind: Uniform, Alpha: alpha}
	c.tiles[alpha] = t
	return t
}
