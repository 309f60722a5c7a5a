package fill

import (
	"testing"

	"github.com/Fepozopo/tilefill/pkg/tile"
)

// ringWithGap builds a single source tile containing a solid background
// (the fill color) bounded by an opaque ring, with an optional notch cut
// into the ring wall. gapWidth == 0 leaves the ring fully closed.
func ringWithGap(gapWidth int) *fakeTile {
	ft := solidTile(tile.Opaque, 0, 0, tile.Opaque)
	const (
		lo = 10
		hi = tile.N - 10
	)
	wall := func(x, y int) { ft.pix[y*tile.N+x] = [4]uint16{0, tile.Opaque, 0, tile.Opaque} }
	for x := lo; x <= hi; x++ {
		wall(x, lo)
		wall(x, hi)
	}
	for y := lo; y <= hi; y++ {
		wall(lo, y)
		wall(hi, y)
	}
	if gapWidth > 0 {
		start := lo + (hi-lo)/2 - gapWidth/2
		for i := 0; i < gapWidth; i++ {
			// notch through the north wall
			ft.pix[lo*tile.N+start+i] = [4]uint16{tile.Opaque, 0, 0, tile.Opaque}
		}
	}
	return ft
}

func newGapDriver(tolerance float64, opts GapClosingOptions) (*GapClosingDriver, *fakeSource) {
	src := newFakeSource()
	f := NewToleranceFiller(tile.Opaque, 0, 0, tile.Opaque, tolerance)
	cache := tile.NewUniformCache()
	return NewGapClosingDriver(src, f, cache, opts), src
}

func TestGapClosingDriverClosedRingConfinesFillWithoutGapClosing(t *testing.T) {
	d, src := newGapDriver(0, GapClosingOptions{MaxGapSize: 4})
	src.put(0, 0, ringWithGap(0))
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out, ok := filled[tile.Coord{TX: 0, TY: 0}]
	if !ok {
		t.Fatalf("expected the seed tile to be present")
	}
	if out.At(0, 0) != 0 {
		t.Fatalf("a fully closed ring should confine the fill to its interior, but the corner outside it was filled")
	}
	if out.At(tile.N/2, tile.N/2) == 0 {
		t.Fatalf("the interior seed pixel should be filled")
	}
}

func TestGapClosingDriverSealsANarrowGapWithRetraction(t *testing.T) {
	opts := GapClosingOptions{MaxGapSize: 6, RetractSeeps: true}
	d, src := newGapDriver(0, opts)
	src.put(0, 0, ringWithGap(3))
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	filled, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out, ok := filled[tile.Coord{TX: 0, TY: 0}]
	if !ok {
		t.Fatalf("expected a non-empty filled tile (total_px > 0) for a sealed gap")
	}
	if out.At(0, 0) != 0 {
		t.Fatalf("the gap-closing fill should still confine the leak to the ring's interior, but the outside corner was filled")
	}
	if out.At(tile.N/2, tile.N/2) == 0 {
		t.Fatalf("the interior seed pixel should be filled")
	}
}

func TestGapClosingDriverIsDeterministic(t *testing.T) {
	opts := GapClosingOptions{MaxGapSize: 6, RetractSeeps: true}
	d, src := newGapDriver(0, opts)
	src.put(0, 0, ringWithGap(3))
	bbox, _ := tile.NewBoundingBox(0, 0, tile.N, tile.N)

	first, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := d.Run(tile.Coord{TX: 0, TY: 0}, tile.N/2, tile.N/2, bbox)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated runs should agree on tile count: %d vs %d", len(first), len(second))
	}
	for tc, a := range first {
		b, ok := second[tc]
		if !ok {
			t.Fatalf("tile %+v missing from second run", tc)
		}
		for y := 0; y < tile.N; y++ {
			for x := 0; x < tile.N; x++ {
				if a.At(x, y) != b.At(x, y) {
					t.Fatalf("runs disagree at tile %+v pixel (%d,%d): %d vs %d", tc, x, y, a.At(x, y), b.At(x, y))
				}
			}
		}
	}
}

func TestGapClosingOptionsClampedDoesNotMutateCaller(t *testing.T) {
	opts := GapClosingOptions{MaxGapSize: 0}
	clamped := opts.clamped()
	if opts.MaxGapSize != 0 {
		t.Fatalf("clamped must not mutate the caller's options, got %d", opts.MaxGapSize)
	}
	if clamped.MaxGapSize != 1 {
		t.Fatalf("MaxGapSize below 1 should clamp to 1, got %d", clamped.MaxGapSize)
	}
	over := GapClosingOptions{MaxGapSize: tile.N + 50}.clamped()
	if over.MaxGapSize != tile.N {
		t.Fatalf("MaxGapSize above N should clamp to N, got %d", over.MaxGapSize)
	}
}
