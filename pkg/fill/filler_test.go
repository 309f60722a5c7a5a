package fill

import (
	"testing"

	"github.com/Fepozopo/tilefill/pkg/tile"
)

func TestToleranceFillerExactMatchZeroTolerance(t *testing.T) {
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0)
	if s := f.score(tile.Opaque, 0, 0, tile.Opaque); s != tile.Opaque {
		t.Fatalf("exact match should score Opaque, got %d", s)
	}
	if s := f.score(0, tile.Opaque, 0, tile.Opaque); s != 0 {
		t.Fatalf("mismatched color at zero tolerance should score 0, got %d", s)
	}
}

func TestToleranceFillerTransparentTargetIgnoresColor(t *testing.T) {
	f := NewToleranceFiller(12345, 6789, 111, 0, 0)
	if s := f.score(999, 888, 777, 0); s != tile.Opaque {
		t.Fatalf("transparent-vs-transparent should match regardless of stray color, got %d", s)
	}
}

func TestToleranceFillerSoftFalloff(t *testing.T) {
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0.5)
	exact := f.score(tile.Opaque, 0, 0, tile.Opaque)
	near := f.score(tile.Opaque-2000, 0, 0, tile.Opaque)
	far := f.score(0, tile.Opaque, 0, tile.Opaque)
	if exact != tile.Opaque {
		t.Fatalf("exact match should still score Opaque, got %d", exact)
	}
	if near == 0 || near >= exact {
		t.Fatalf("a near miss under nonzero tolerance should score between 0 and Opaque, got %d", near)
	}
	if far > near {
		t.Fatalf("a farther color should never score higher than a nearer one")
	}
}

func TestTileUniformityUniformTile(t *testing.T) {
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0)
	alpha, ok := f.TileUniformity(false, ft)
	if !ok || alpha != tile.Opaque {
		t.Fatalf("expected uniform Opaque, got alpha=%d ok=%v", alpha, ok)
	}
}

func TestTileUniformityNonUniformTile(t *testing.T) {
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	ft.pix[0] = [4]uint16{0, tile.Opaque, 0, tile.Opaque}
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0)
	if _, ok := f.TileUniformity(false, ft); ok {
		t.Fatalf("expected non-uniform tile to report ok=false")
	}
}

func fullBounds() tile.PixelBounds {
	return tile.PixelBounds{MinX: 0, MinY: 0, MaxX: tile.N - 1, MaxY: tile.N - 1}
}

func TestFillPointSeedOverflowsEveryEdgeOfASolidTile(t *testing.T) {
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0)
	out := tile.NewOwned()
	seeds := Seeds{FromEdge: tile.EdgeNone, Point: PixelPoint{X: tile.N / 2, Y: tile.N / 2}}
	overflow := f.Fill(ft, out, seeds, fullBounds())
	if out.At(tile.N/2, tile.N/2) != tile.Opaque {
		t.Fatalf("seed pixel should be filled")
	}
	for i := 0; i < 4; i++ {
		if len(overflow[i]) != 1 || overflow[i][0] != FullEdge {
			t.Fatalf("solid tile fill should overflow the full edge on every side, got %+v", overflow[i])
		}
	}
}

func TestFillDoesNotCrossAWall(t *testing.T) {
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	// A vertical wall of non-matching color splits the tile in half.
	for y := 0; y < tile.N; y++ {
		ft.pix[y*tile.N+tile.N/2] = [4]uint16{0, tile.Opaque, 0, tile.Opaque}
	}
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0)
	out := tile.NewOwned()
	seeds := Seeds{FromEdge: tile.EdgeNone, Point: PixelPoint{X: 0, Y: 0}}
	overflow := f.Fill(ft, out, seeds, fullBounds())
	if out.At(tile.N-1, 0) != 0 {
		t.Fatalf("fill must not cross the wall column")
	}
	if len(overflow[East]) != 0 {
		t.Fatalf("fill blocked by the wall should not overflow east, got %+v", overflow[East])
	}
}

func TestFillIsIdempotentOnAlreadyFilledPixels(t *testing.T) {
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0)
	out := tile.NewOwned()
	out.Set(0, 0, 1)
	seeds := Seeds{FromEdge: tile.EdgeWest, Ranges: []SeedRange{FullEdge}}
	f.Fill(ft, out, seeds, fullBounds())
	if out.At(0, 0) != 1 {
		t.Fatalf("Fill must not overwrite an already-filled pixel, got %d", out.At(0, 0))
	}
}

func TestFillRespectsClippedBounds(t *testing.T) {
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, 0)
	out := tile.NewOwned()
	bounds := tile.PixelBounds{MinX: 0, MinY: 0, MaxX: tile.N/2 - 1, MaxY: tile.N - 1}
	seeds := Seeds{FromEdge: tile.EdgeNone, Point: PixelPoint{X: 0, Y: 0}}
	overflow := f.Fill(ft, out, seeds, bounds)
	if out.At(tile.N/2, 0) != 0 {
		t.Fatalf("fill must not cross past the clipped bounds")
	}
	if len(overflow[East]) != 0 {
		t.Fatalf("a clipped fill must not report overflow past the clip, got %+v", overflow[East])
	}
}
