package tile

// Coord is a signed tile-grid coordinate. The canvas is conceptually
// unbounded in either direction, so both floor division and floor modulo
// are used when mapping pixels onto tiles.
type Coord struct {
	TX, TY int
}

// Edge names the four sides of a tile, plus None for "no incoming edge"
// (used for the very first seed of a fill).
type Edge int

const (
	EdgeNone Edge = iota
	EdgeNorth
	EdgeEast
	EdgeSouth
	EdgeWest
)

// Opposite returns the edge that faces e from the neighboring tile's point
// of view: seeds leaving a tile's north edge arrive at their destination
// through that tile's south edge, and so on.
func (e Edge) Opposite() Edge {
	switch e {
	case EdgeNorth:
		return EdgeSouth
	case EdgeEast:
		return EdgeWest
	case EdgeSouth:
		return EdgeNorth
	case EdgeWest:
		return EdgeEast
	default:
		return EdgeNone
	}
}

func (e Edge) String() string {
	switch e {
	case EdgeNorth:
		return "north"
	case EdgeEast:
		return "east"
	case EdgeSouth:
		return "south"
	case EdgeWest:
		return "west"
	default:
		return "none"
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if r := a % b; r != 0 && (r < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// PixelToTile maps a pixel coordinate to its tile coordinate and the
// in-tile pixel position within that tile.
func PixelToTile(x, y int) (tc Coord, px, py int) {
	tc = Coord{TX: floorDiv(x, N), TY: floorDiv(y, N)}
	px, py = floorMod(x, N), floorMod(y, N)
	return
}

// Neighbors returns the four orthogonal neighbors of tc in the fixed
// (north, east, south, west) order used whenever overflow seeds are
// enqueued. The order matters: it is what makes origin-edge tagging
// unambiguous.
func (tc Coord) Neighbors() [4]Coord {
	return [4]Coord{
		{tc.TX, tc.TY - 1}, // north
		{tc.TX + 1, tc.TY}, // east
		{tc.TX, tc.TY + 1}, // south
		{tc.TX - 1, tc.TY}, // west
	}
}

// NineGrid returns tc together with its eight surrounding neighbors, in the
// order: center, N, E, S, W, NE, SE, SW, NW. Gap detection needs this full
// neighborhood because a gap up to MaxGapSize pixels wide may have its
// bounding walls in an adjacent tile.
func (tc Coord) NineGrid() [9]Coord {
	return [9]Coord{
		tc,
		{tc.TX, tc.TY - 1},
		{tc.TX + 1, tc.TY},
		{tc.TX, tc.TY + 1},
		{tc.TX - 1, tc.TY},
		{tc.TX + 1, tc.TY - 1},
		{tc.TX + 1, tc.TY + 1},
		{tc.TX - 1, tc.TY + 1},
		{tc.TX - 1, tc.TY - 1},
	}
}

// PixelBounds is an in-tile clip rectangle, inclusive on every side.
type PixelBounds struct {
	MinX, MinY, MaxX, MaxY int
}

// BoundingBox is the tile-grid projection of a pixel rectangle: it tracks
// which tiles the rectangle touches, and how far into the edge tiles it
// actually reaches.
type BoundingBox struct {
	MinTX, MinTY, MaxTX, MaxTY int
	minPX, minPY, maxPX, maxPY int
}

// NewBoundingBox derives a BoundingBox from a pixel rectangle (x, y, w, h).
// It reports ok == false for a degenerate rectangle (w <= 0 or h <= 0),
// which callers must treat as a silent no-op rather than an error.
func NewBoundingBox(x, y, w, h int) (bb BoundingBox, ok bool) {
	if w <= 0 || h <= 0 {
		return BoundingBox{}, false
	}
	brx, bry := x+w-1, y+h-1
	bb.MinTX, bb.minPX = floorDiv(x, N), floorMod(x, N)
	bb.MinTY, bb.minPY = floorDiv(y, N), floorMod(y, N)
	bb.MaxTX, bb.maxPX = floorDiv(brx, N), floorMod(brx, N)
	bb.MaxTY, bb.maxPY = floorDiv(bry, N), floorMod(bry, N)
	return bb, true
}

// Outside reports whether tc lies strictly beyond the bbox's tile extent.
func (bb BoundingBox) Outside(tc Coord) bool {
	return tc.TX < bb.MinTX || tc.TX > bb.MaxTX || tc.TY < bb.MinTY || tc.TY > bb.MaxTY
}

// Crossing reports whether tc sits on the bbox's tile edge, meaning it may
// need a narrower in-tile pixel clip than a full N*N tile.
func (bb BoundingBox) Crossing(tc Coord) bool {
	return tc.TX == bb.MinTX || tc.TX == bb.MaxTX || tc.TY == bb.MinTY || tc.TY == bb.MaxTY
}

// TileBounds returns the in-tile pixel clip for tc: the full tile unless tc
// sits on the bbox's edge, in which case the bound on that side is trimmed
// to the bbox's actual pixel extent.
func (bb BoundingBox) TileBounds(tc Coord) PixelBounds {
	pb := PixelBounds{MinX: 0, MinY: 0, MaxX: N - 1, MaxY: N - 1}
	if tc.TX == bb.MinTX {
		pb.MinX = bb.minPX
	}
	if tc.TY == bb.MinTY {
		pb.MinY = bb.minPY
	}
	if tc.TX == bb.MaxTX {
		pb.MaxX = bb.maxPX
	}
	if tc.TY == bb.MaxTY {
		pb.MaxY = bb.maxPY
	}
	return pb
}
