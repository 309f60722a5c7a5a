package fill

import "github.com/Fepozopo/tilefill/pkg/tile"

// DistanceBucket holds the gap-search configuration shared by every
// findGaps call within one fill: the widest gap a pair of walls may be
// apart and still count as bridgeable.
type DistanceBucket struct {
	MaxGapSize int
}

// wallThreshold is the alpha below which a pixel counts as a wall for gap
// detection purposes.
const wallThreshold = tile.Opaque / 2

func isWall(t tile.Tile, x, y int) bool {
	if t.IsFull() {
		return false
	}
	if t.IsEmpty() {
		return true
	}
	return t.At(x, y) < wallThreshold
}

// gridIndex resolves a tile offset within the nine_grid neighborhood
// (center, N, E, S, W, NE, SE, SW, NW) to its slot.
func gridIndex(tx, ty int) int {
	switch {
	case tx == 0 && ty == 0:
		return 0
	case tx == 0 && ty == -1:
		return 1
	case tx == 1 && ty == 0:
		return 2
	case tx == 0 && ty == 1:
		return 3
	case tx == -1 && ty == 0:
		return 4
	case tx == 1 && ty == -1:
		return 5
	case tx == 1 && ty == 1:
		return 6
	case tx == -1 && ty == 1:
		return 7
	case tx == -1 && ty == -1:
		return 8
	}
	return 0
}

// sampleGrid resolves a pixel coordinate that may run up to one tile width
// past the center tile's edge against the 3x3 neighborhood grid.
func sampleGrid(grid [9]tile.Tile, x, y int) (t tile.Tile, lx, ly int) {
	tx, ty := 0, 0
	if x < 0 {
		tx, x = -1, x+tile.N
	} else if x >= tile.N {
		tx, x = 1, x-tile.N
	}
	if y < 0 {
		ty, y = -1, y+tile.N
	} else if y >= tile.N {
		ty, y = 1, y-tile.N
	}
	return grid[gridIndex(tx, ty)], x, y
}

// distanceToWall walks from (x, y) along (dx, dy), up to MaxGapSize steps,
// looking for the nearest wall pixel, consulting the neighborhood grid for
// coordinates that fall outside the center tile.
func distanceToWall(db *DistanceBucket, grid [9]tile.Tile, x, y, dx, dy int) int {
	max := db.MaxGapSize
	for step := 1; step <= max; step++ {
		t, lx, ly := sampleGrid(grid, x+dx*step, y+dy*step)
		if isWall(t, lx, ly) {
			return step
		}
	}
	return max + 1
}

// gapAxes are the four lines an open pixel is tested along: horizontal,
// vertical, and the two diagonals.
var gapAxes = [4][2][2]int{
	{{-1, 0}, {1, 0}},
	{{0, -1}, {0, 1}},
	{{-1, -1}, {1, 1}},
	{{1, -1}, {-1, 1}},
}

// findGaps scans every open (non-wall, i.e. tolerance-matching) pixel of
// the center tile (grid[0]) and looks for walls flanking it on both sides
// of some axis within MaxGapSize: a pixel pinched between two nearby walls
// sits inside a narrow break in a boundary line, such as a small gap in an
// inked ring. The narrowest flanking distance found across the four axes
// is written into buf; pixels with no nearby wall on one side of every
// axis, or that are themselves walls, are left at buf's initial 2*N*N
// ("no gap") value.
func findGaps(db *DistanceBucket, buf tile.Tile, grid [9]tile.Tile) {
	center := grid[0]
	for y := 0; y < tile.N; y++ {
		for x := 0; x < tile.N; x++ {
			if isWall(center, x, y) {
				continue
			}
			best := buf.At(x, y)
			for _, axis := range gapAxes {
				d1 := distanceToWall(db, grid, x, y, axis[0][0], axis[0][1])
				d2 := distanceToWall(db, grid, x, y, axis[1][0], axis[1][1])
				if d1 > db.MaxGapSize || d2 > db.MaxGapSize {
					continue
				}
				if combined := uint16(d1 + d2); combined < best {
					best = combined
				}
			}
			if best != buf.At(x, y) {
				buf.Set(x, y, best)
			}
		}
	}
}

type stripSide int

const (
	stripNorth stripSide = iota
	stripSouth
	stripEast
	stripWest
)

// borderHasWall reports whether any pixel within depth of the given edge
// of t is a wall.
func borderHasWall(t tile.Tile, depth int, side stripSide) bool {
	if t.IsFull() {
		return false
	}
	if t.IsEmpty() {
		return true
	}
	for i := 0; i < tile.N; i++ {
		for d := 0; d < depth; d++ {
			var x, y int
			switch side {
			case stripNorth:
				x, y = i, d
			case stripSouth:
				x, y = i, tile.N-1-d
			case stripEast:
				x, y = tile.N-1-d, i
			case stripWest:
				x, y = d, i
			}
			if isWall(t, x, y) {
				return true
			}
		}
	}
	return false
}

// noCornerGaps reports whether none of the four orthogonal neighbor tiles
// carry a wall pixel within maxGapSize of the edge they share with the
// center tile, meaning a FULL_TILE center cannot have any gap reach into
// it from outside.
func noCornerGaps(maxGapSize int, north, east, south, west tile.Tile) bool {
	return !borderHasWall(north, maxGapSize, stripSouth) &&
		!borderHasWall(east, maxGapSize, stripWest) &&
		!borderHasWall(south, maxGapSize, stripNorth) &&
		!borderHasWall(west, maxGapSize, stripEast)
}
