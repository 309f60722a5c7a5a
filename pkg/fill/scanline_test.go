package fill

import (
	"testing"

	"github.com/Fepozopo/tilefill/pkg/tile"
)

func newDriver(tolerance float64) (*ScanlineDriver, *fakeSource) {
	src := newFakeSource()
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, tolerance)
	return NewScanlineDriver(src, f, tile.NewUniformCache()), src
}

func TestScanlineDriverFillsSingleSolidTile(t *testing.T) {
	d, src := newDriver(0)
	src.put(0, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(filled) != 1 {
		t.Fatalf("expected exactly one filled tile, got %d", len(filled))
	}
	got, ok := filled[tile.Coord{TX: 0, TY: 0}]
	if !ok || !got.IsFull() {
		t.Fatalf("expected the seed tile to be the Full sentinel, got %+v", got)
	}
}

func TestScanlineDriverPropagatesAcrossTileBoundary(t *testing.T) {
	d, src := newDriver(0)
	src.put(0, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	src.put(1, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	bbox, _ := tile.NewBoundingBox(0, 0, 2*tile.N, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(filled) != 2 {
		t.Fatalf("expected both tiles filled, got %d: %+v", len(filled), filled)
	}
	for _, tc := range []tile.Coord{{TX: 0, TY: 0}, {TX: 1, TY: 0}} {
		if got := filled[tc]; !got.IsFull() {
			t.Fatalf("tile %+v should be the Full sentinel, got %+v", tc, got)
		}
	}
}

func TestScanlineDriverBoundedByBbox(t *testing.T) {
	d, src := newDriver(0)
	src.put(0, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	src.put(1, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	// bbox only covers the seed tile; the matching neighbor must stay out.
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := filled[tile.Coord{TX: 1, TY: 0}]; ok {
		t.Fatalf("fill must not escape the bounding box")
	}
	if got := filled[tile.Coord{TX: 0, TY: 0}]; !got.IsFull() {
		t.Fatalf("the seed tile should still be filled")
	}
}

func TestScanlineDriverStopsAtAWall(t *testing.T) {
	d, src := newDriver(0)
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	for y := 0; y < tile.N; y++ {
		ft.pix[y*tile.N+tile.N/2] = [4]uint16{0, tile.Opaque, 0, tile.Opaque}
	}
	src.put(0, 0, ft)
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, 0, 0, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, ok := filled[tile.Coord{TX: 0, TY: 0}]
	if !ok {
		t.Fatalf("expected the seed tile to be present")
	}
	if got.At(tile.N-1, 0) != 0 {
		t.Fatalf("fill should not have crossed the wall")
	}
	if got.At(0, 0) == 0 {
		t.Fatalf("the seed side should be filled")
	}
}

func TestScanlineDriverEmptyFillOnZeroToleranceMismatch(t *testing.T) {
	d, src := newDriver(0)
	src.put(0, 0, solidTile(0, tile.Opaque, 0, tile.Opaque))
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, 0, 0, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(filled) != 0 {
		t.Fatalf("a seed that matches nothing should produce no filled tiles, got %+v", filled)
	}
}

func TestScanlineDriverClipsUniformTileAtBboxEdge(t *testing.T) {
	d, src := newDriver(0)
	src.put(0, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	// bbox covers only the left half of the seed tile, so the tile is
	// Crossing even though every pixel in it scores uniform: the driver
	// must not take the Skipper short-circuit and paint the whole tile.
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N/2, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, 0, 0, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, ok := filled[tile.Coord{TX: 0, TY: 0}]
	if !ok {
		t.Fatalf("expected the seed tile to be present")
	}
	if got.At(tile.N/2, 0) != 0 {
		t.Fatalf("fill leaked past the bbox's right edge inside the crossing tile")
	}
	if got.At(0, 0) == 0 {
		t.Fatalf("the seed side should still be filled")
	}
}

func TestScanlineDriverIsDeterministic(t *testing.T) {
	d, src := newDriver(0)
	src.put(0, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	src.put(1, 0, solidTile(tile.Opaque, 0, 0, tile.Opaque))
	bbox, _ := tile.NewBoundingBox(0, 0, 2*tile.N, tile.N)

	first, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated runs over identical input should agree: %d vs %d", len(first), len(second))
	}
	for tc, a := range first {
		b, ok := second[tc]
		if !ok || a.Kind != b.Kind || a.Alpha != b.Alpha {
			t.Fatalf("repeated runs disagree at %+v: %+v vs %+v", tc, a, b)
		}
	}
}
