package morph

import (
	"sync"

	"github.com/Fepozopo/tilefill/pkg/tile"
)

// Feather applies a separable Gaussian blur of the given sigma to the
// filled alpha field, clamped at the extent of bbox's tiles (expanded by
// the kernel radius). sigma == 0 returns filled unchanged.
func Feather(filled map[tile.Coord]tile.Tile, bbox tile.BoundingBox, sigma float64) map[tile.Coord]tile.Tile {
	if sigma <= 0 {
		return filled
	}
	kern, radius := gaussianKernel1D(sigma)
	minX, minY, maxX, maxY := pixelExtent(bbox, radius)
	w, h := maxX-minX+1, maxY-minY+1

	src := Field(filled)
	tmp := make([][]float64, h)
	for i := range tmp {
		tmp[i] = make([]float64, w)
	}

	var wg sync.WaitGroup
	for row := 0; row < h; row++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			y := minY + row
			for col := 0; col < w; col++ {
				x := minX + col
				sum, wsum := 0.0, 0.0
				for k := -radius; k <= radius; k++ {
					ix := x + k
					if ix < minX {
						ix = minX
					} else if ix > maxX {
						ix = maxX
					}
					wgt := kern[k+radius]
					sum += float64(src.at(ix, y)) * wgt
					wsum += wgt
				}
				tmp[row][col] = sum / wsum
			}
		}(row)
	}
	wg.Wait()

	out := make(map[tile.Coord]tile.Tile)
	get := func(tc tile.Coord) tile.Tile {
		t, ok := out[tc]
		if !ok {
			t = tile.NewOwned()
			out[tc] = t
		}
		return t
	}

	var mu sync.Mutex
	for col := 0; col < w; col++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			x := minX + col
			for row := 0; row < h; row++ {
				y := minY + row
				sum, wsum := 0.0, 0.0
				for k := -radius; k <= radius; k++ {
					iy := row + k
					if iy < 0 {
						iy = 0
					} else if iy >= h {
						iy = h - 1
					}
					wgt := kern[k+radius]
					sum += tmp[iy][col] * wgt
					wsum += wgt
				}
				v := clampAlpha(sum / wsum)
				if v == 0 {
					continue
				}
				tc, px, py := tile.PixelToTile(x, y)
				mu.Lock()
				get(tc).Set(px, py, v)
				mu.Unlock()
			}
		}(col)
	}
	wg.Wait()

	result := make(map[tile.Coord]tile.Tile, len(out))
	for tc, t := range out {
		if !t.AllZero() {
			result[tc] = t
		}
	}
	return result
}

func clampAlpha(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > float64(tile.Opaque) {
		return tile.Opaque
	}
	return uint16(v)
}
