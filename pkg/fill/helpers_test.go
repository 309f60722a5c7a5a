package fill

import "github.com/Fepozopo/tilefill/pkg/tile"

// fakeTile is a minimal in-memory PixelTile used across this package's
// tests. Pixels default to fully transparent.
type fakeTile struct {
	pix   [tile.N * tile.N][4]uint16
	empty bool
}

func (f *fakeTile) At(x, y int) (r, g, b, a uint16) {
	p := f.pix[y*tile.N+x]
	return p[0], p[1], p[2], p[3]
}

func (f *fakeTile) IsEmpty() bool { return f.empty }

func solidTile(r, g, b, a uint16) *fakeTile {
	t := &fakeTile{empty: a == 0}
	for i := range t.pix {
		t.pix[i] = [4]uint16{r, g, b, a}
	}
	return t
}

// fakeSource vends fakeTiles from a coordinate map, defaulting to an
// implicit fully transparent tile for any coordinate not present.
type fakeSource struct {
	tiles map[tile.Coord]*fakeTile
}

func newFakeSource() *fakeSource {
	return &fakeSource{tiles: make(map[tile.Coord]*fakeTile)}
}

func (s *fakeSource) put(tx, ty int, t *fakeTile) {
	s.tiles[tile.Coord{TX: tx, TY: ty}] = t
}

func (s *fakeSource) AcquireRead(tx, ty int) (PixelTile, func(), error) {
	t, ok := s.tiles[tile.Coord{TX: tx, TY: ty}]
	if !ok {
		t = &fakeTile{empty: true}
	}
	return t, func() {}, nil
}
