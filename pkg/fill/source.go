package fill

// PixelTile is a read-only view over one source tile's pixels. Channel
// values share the same linear scale as fill alpha: 0 is transparent,
// tile.Opaque is fully opaque, and RGB is premultiplied by alpha.
type PixelTile interface {
	At(x, y int) (r, g, b, a uint16)
}

// Source is the read side of the surface contract the fill algorithm
// needs: scoped, read-only access to one source tile at a time. Every
// acquisition must be released, including on panics, so implementations
// should hand the release step to the caller via a deferred call rather
// than requiring explicit cleanup bookkeeping.
type Source interface {
	// AcquireRead returns the tile at (tx, ty) read-only, and a release
	// function the caller must invoke exactly once when finished with it.
	AcquireRead(tx, ty int) (t PixelTile, release func(), err error)
}

// EmptyHint is an optional capability a PixelTile may implement to report
// that it holds no painted pixels at all, letting the uniform-tile
// short-circuit skip its per-pixel scan entirely. Implementing it is
// purely an optimization; a PixelTile that doesn't implement it is simply
// scored the normal way.
type EmptyHint interface {
	PixelTile
	IsEmpty() bool
}
