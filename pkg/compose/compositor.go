package compose

import "github.com/Fepozopo/tilefill/pkg/tile"

// WritableTile is a single destination tile exposing premultiplied pixel
// access on the same tile.Opaque scale as a fill alpha tile. Destination
// surfaces implement this structurally; this package never imports the
// surface that does.
type WritableTile interface {
	At(x, y int) (r, g, b, a uint16)
	Set(x, y int, r, g, b, a uint16)
}

// Destination is the write side of a compositing target.
type Destination interface {
	// AcquireWrite returns scoped read/write access to the tile at (tx,
	// ty), creating it if absent, plus a release function that must be
	// called exactly once when the caller is done with it.
	AcquireWrite(tx, ty int) (WritableTile, func(), error)

	// HasTile reports whether the destination already holds a tile at
	// (tx, ty), without allocating one.
	HasTile(tx, ty int) bool

	// NotifyObservers announces that the pixel rectangle (x, y, w, h) may
	// have changed, and that any cached mipmap covering it is stale.
	NotifyObservers(x, y, w, h int)
}

// Color is the straight, 8-bit fill color a flood_fill call was given.
// Per-pixel coverage comes from the fill alpha tile, not from this color,
// so it carries no alpha channel of its own.
type Color struct {
	R, G, B uint8
}

// Compositor writes a filled alpha tile map onto a destination surface.
type Compositor struct {
	Mode       Mode
	Color      Color
	TrimResult bool
	Bbox       tile.BoundingBox
	Dst        Destination
}

// Run writes every (tc, src) pair in filled onto the destination. Map
// iteration order is immaterial: every tile write is independent. It
// returns the first tile-acquisition error encountered, per the
// fatal-per-tile failure policy: no further tiles are written once one
// fails, but tiles already written stay written.
func (c *Compositor) Run(filled map[tile.Coord]tile.Tile) error {
	touched := false
	var minTX, minTY, maxTX, maxTY int

	for tc, src := range filled {
		if c.TrimResult && c.Bbox.Outside(tc) {
			continue
		}
		if src.IsEmpty() {
			continue
		}
		if c.Mode.IsErasing() && !c.Dst.HasTile(tc.TX, tc.TY) {
			continue
		}

		dstTile, release, err := c.Dst.AcquireWrite(tc.TX, tc.TY)
		if err != nil {
			return err
		}

		fastPath := src.IsFull() && !(c.TrimResult && c.Bbox.Crossing(tc))
		switch {
		case fastPath && c.Mode == Normal:
			fillFullColor(dstTile, c.Color)
		case fastPath && c.Mode == DestinationOut:
			clearTile(dstTile)
		default:
			bounds := tile.PixelBounds{MinX: 0, MinY: 0, MaxX: tile.N - 1, MaxY: tile.N - 1}
			if c.TrimResult {
				bounds = c.Bbox.TileBounds(tc)
			}
			blendGeneral(c.Mode, c.Color, src, dstTile, bounds)
		}
		release()

		if !touched {
			minTX, maxTX, minTY, maxTY = tc.TX, tc.TX, tc.TY, tc.TY
			touched = true
		} else {
			if tc.TX < minTX {
				minTX = tc.TX
			}
			if tc.TX > maxTX {
				maxTX = tc.TX
			}
			if tc.TY < minTY {
				minTY = tc.TY
			}
			if tc.TY > maxTY {
				maxTY = tc.TY
			}
		}
	}

	if touched {
		x, y := minTX*tile.N, minTY*tile.N
		w, h := (maxTX-minTX+1)*tile.N, (maxTY-minTY+1)*tile.N
		c.Dst.NotifyObservers(x, y, w, h)
	}
	return nil
}

func fillFullColor(dst WritableTile, col Color) {
	r := uint16(uint32(col.R) * uint32(tile.Opaque) / 255)
	g := uint16(uint32(col.G) * uint32(tile.Opaque) / 255)
	b := uint16(uint32(col.B) * uint32(tile.Opaque) / 255)
	for y := 0; y < tile.N; y++ {
		for x := 0; x < tile.N; x++ {
			dst.Set(x, y, r, g, b, tile.Opaque)
		}
	}
}

func clearTile(dst WritableTile) {
	for y := 0; y < tile.N; y++ {
		for x := 0; x < tile.N; x++ {
			dst.Set(x, y, 0, 0, 0, 0)
		}
	}
}

func blendGeneral(m Mode, col Color, src tile.Tile, dst WritableTile, bounds tile.PixelBounds) {
	for y := bounds.MinY; y <= bounds.MaxY; y++ {
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			sa := src.At(x, y)
			if sa == 0 {
				continue
			}
			dr, dg, db, da := dst.At(x, y)
			outR, outG, outB, outA := blendPixel(m, col, sa, dr, dg, db, da)
			dst.Set(x, y, outR, outG, outB, outA)
		}
	}
}
