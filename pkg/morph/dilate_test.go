package morph

import (
	"testing"

	"github.com/Fepozopo/tilefill/pkg/tile"
)

func TestOffsetZeroIsANoop(t *testing.T) {
	filled := map[tile.Coord]tile.Tile{{TX: 0, TY: 0}: tile.FullTile}
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)
	got := Offset(filled, bbox, 0)
	if len(got) != 1 || !got[tile.Coord{TX: 0, TY: 0}].IsFull() {
		t.Fatalf("offset 0 should return the input unchanged, got %+v", got)
	}
}

func TestOffsetPositiveDilatesASinglePixel(t *testing.T) {
	src := tile.NewOwned()
	src.Set(32, 32, tile.Opaque)
	filled := map[tile.Coord]tile.Tile{{TX: 0, TY: 0}: src}
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	got := Offset(filled, bbox, 2)
	out := got[tile.Coord{TX: 0, TY: 0}]
	if out.At(32, 32) != tile.Opaque {
		t.Fatalf("the original pixel should stay opaque")
	}
	if out.At(34, 32) != tile.Opaque {
		t.Fatalf("a pixel 2 away should be covered by a radius-2 dilation")
	}
	if out.At(35, 32) != 0 {
		t.Fatalf("a pixel 3 away should be outside a radius-2 dilation, got %d", out.At(35, 32))
	}
}

func TestOffsetNegativeErodesASinglePixelHole(t *testing.T) {
	src := tile.NewOwnedFilled(tile.Opaque)
	src.Set(32, 32, 0)
	filled := map[tile.Coord]tile.Tile{{TX: 0, TY: 0}: src}
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	got := Offset(filled, bbox, -1)
	out := got[tile.Coord{TX: 0, TY: 0}]
	if out.At(32, 32) != 0 {
		t.Fatalf("the hole itself should remain transparent")
	}
	if out.At(31, 32) != 0 || out.At(33, 32) != 0 {
		t.Fatalf("erosion should carve away the ring of pixels adjacent to the hole")
	}
	if out.At(0, 0) != tile.Opaque {
		t.Fatalf("pixels far from the hole should stay opaque, got %d", out.At(0, 0))
	}
}
