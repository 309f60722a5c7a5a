package morph

import "github.com/Fepozopo/tilefill/pkg/tile"

// Field reads a sparse alpha tile map by pixel coordinate, treating any tile
// coordinate absent from the map as fully transparent.
type Field map[tile.Coord]tile.Tile

func (f Field) at(x, y int) uint16 {
	tc, px, py := tile.PixelToTile(x, y)
	t, ok := f[tc]
	if !ok {
		return 0
	}
	return t.At(px, py)
}

// pixelExtent returns the inclusive pixel rectangle covered by bbox's
// tiles, expanded by pad pixels on every side.
func pixelExtent(bbox tile.BoundingBox, pad int) (minX, minY, maxX, maxY int) {
	minX = bbox.MinTX*tile.N - pad
	minY = bbox.MinTY*tile.N - pad
	maxX = (bbox.MaxTX+1)*tile.N - 1 + pad
	maxY = (bbox.MaxTY+1)*tile.N - 1 + pad
	return
}

// Offset grows the filled region by offset pixels under a square
// structuring element when offset > 0 (dilate), or shrinks it when
// offset < 0 (erode). offset == 0 returns filled unchanged. The result
// only contains tiles with at least one nonzero pixel.
func Offset(filled map[tile.Coord]tile.Tile, bbox tile.BoundingBox, offset int) map[tile.Coord]tile.Tile {
	if offset == 0 {
		return filled
	}
	if offset > tile.N {
		offset = tile.N
	}
	if offset < -tile.N {
		offset = -tile.N
	}

	src := Field(filled)
	radius := abs(offset)
	pad := 0
	if offset > 0 {
		pad = radius
	}
	minX, minY, maxX, maxY := pixelExtent(bbox, pad)

	out := make(map[tile.Coord]tile.Tile)
	get := func(tc tile.Coord) tile.Tile {
		t, ok := out[tc]
		if !ok {
			t = tile.NewOwned()
			out[tc] = t
		}
		return t
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			var v uint16
			if offset > 0 {
				v = dilatePixel(src, x, y, radius)
			} else {
				v = erodePixel(src, x, y, radius, minX, minY, maxX, maxY)
			}
			if v == 0 {
				continue
			}
			tc, px, py := tile.PixelToTile(x, y)
			get(tc).Set(px, py, v)
		}
	}

	result := make(map[tile.Coord]tile.Tile, len(out))
	for tc, t := range out {
		if !t.AllZero() {
			result[tc] = t
		}
	}
	return result
}

func dilatePixel(src Field, x, y, radius int) uint16 {
	var max uint16
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if v := src.at(x+dx, y+dy); v > max {
				max = v
			}
		}
	}
	return max
}

// erodePixel takes the neighborhood minimum around (x, y), clamping sample
// coordinates to the extent (minX, minY)-(maxX, maxY) so the edge of the
// bbox's tiles does not erode the fill by itself.
func erodePixel(src Field, x, y, radius, minX, minY, maxX, maxY int) uint16 {
	min := src.at(x, y)
	if min == 0 {
		return 0
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			sx, sy := x+dx, y+dy
			if sx < minX {
				sx = minX
			} else if sx > maxX {
				sx = maxX
			}
			if sy < minY {
				sy = minY
			} else if sy > maxY {
				sy = maxY
			}
			if v := src.at(sx, sy); v < min {
				min = v
				if min == 0 {
					return 0
				}
			}
		}
	}
	return min
}
