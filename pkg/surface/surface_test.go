package surface

import (
	"testing"

	"github.com/Fepozopo/tilefill/pkg/tile"
)

func TestAcquireReadOfUntouchedTileIsEmptyAndZero(t *testing.T) {
	s := NewMemSurface()
	pt, release, err := s.AcquireRead(3, 4)
	if err != nil {
		t.Fatalf("AcquireRead: %v", err)
	}
	defer release()

	eh, ok := pt.(interface{ IsEmpty() bool })
	if !ok {
		t.Fatalf("expected the tile to expose IsEmpty")
	}
	if !eh.IsEmpty() {
		t.Fatalf("an untouched tile should report empty")
	}
	r, g, b, a := pt.At(0, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Fatalf("an untouched tile should read back all zero, got (%d,%d,%d,%d)", r, g, b, a)
	}
	if s.TileCount() != 0 {
		t.Fatalf("reading an untouched tile must not allocate it, count=%d", s.TileCount())
	}
}

func TestSetPixelThenAcquireReadSeesIt(t *testing.T) {
	s := NewMemSurface()
	if err := s.SetPixel(10, 20, 100, 200, 300, tile.Opaque); err != nil {
		t.Fatalf("SetPixel: %v", err)
	}
	r, g, b, a := s.Pixel(10, 20)
	if r != 100 || g != 200 || b != 300 || a != tile.Opaque {
		t.Fatalf("got (%d,%d,%d,%d)", r, g, b, a)
	}
	if s.TileCount() != 1 {
		t.Fatalf("expected exactly one allocated tile, got %d", s.TileCount())
	}
}

func TestAcquireWriteCreatesTileAndHasTileReflectsIt(t *testing.T) {
	s := NewMemSurface()
	if s.HasTile(0, 0) {
		t.Fatalf("a fresh surface should report no tiles")
	}
	wt, release, err := s.AcquireWrite(0, 0)
	if err != nil {
		t.Fatalf("AcquireWrite: %v", err)
	}
	wt.Set(5, 5, 1, 2, 3, 4)
	release()

	if !s.HasTile(0, 0) {
		t.Fatalf("AcquireWrite should allocate the tile")
	}
	r, g, b, a := s.Pixel(5, 5)
	if r != 1 || g != 2 || b != 3 || a != 4 {
		t.Fatalf("got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestNotifyObserversRecordsTheLastRect(t *testing.T) {
	s := NewMemSurface()
	if _, _, _, _, ok := s.LastNotified(); ok {
		t.Fatalf("a fresh surface should report no notification yet")
	}
	s.NotifyObservers(10, 20, 64, 64)
	x, y, w, h, ok := s.LastNotified()
	if !ok || x != 10 || y != 20 || w != 64 || h != 64 {
		t.Fatalf("got (%d,%d,%d,%d,%v)", x, y, w, h, ok)
	}
}

func TestMemTileIsEmptyBecomesFalseAfterAWrite(t *testing.T) {
	mt := &MemTile{}
	if !mt.IsEmpty() {
		t.Fatalf("a fresh MemTile should be empty")
	}
	mt.Set(0, 0, 0, 0, 0, 1)
	if mt.IsEmpty() {
		t.Fatalf("a MemTile with any nonzero channel should no longer be empty")
	}
}
