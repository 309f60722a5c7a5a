// Package surface provides a concrete, in-memory tile surface. It plays
// both roles the flood-fill engine needs from a real painting surface: the
// read-only fill.Source the fill drivers sample from, and the
// compose.Destination the compositor writes into. Tiles are premultiplied
// 16-bit RGBA on the same tile.Opaque scale used throughout the engine,
// following the buffer-backed, clamped-sampling conventions of the
// standard-image grounding helpers this package was built from.
package surface

import (
	"fmt"
	"sync"

	"github.com/Fepozopo/tilefill/pkg/compose"
	"github.com/Fepozopo/tilefill/pkg/fill"
	"github.com/Fepozopo/tilefill/pkg/tile"
)

// MemTile is a single N*N tile of premultiplied RGBA values, stored
// channel-interleaved in row-major order.
type MemTile struct {
	pix [tile.N * tile.N * 4]uint16
}

func idx(x, y int) int { return (y*tile.N + x) * 4 }

// At implements fill.PixelTile and compose.WritableTile's read half.
func (m *MemTile) At(x, y int) (r, g, b, a uint16) {
	i := idx(x, y)
	return m.pix[i], m.pix[i+1], m.pix[i+2], m.pix[i+3]
}

// Set implements compose.WritableTile's write half.
func (m *MemTile) Set(x, y int, r, g, b, a uint16) {
	i := idx(x, y)
	m.pix[i], m.pix[i+1], m.pix[i+2], m.pix[i+3] = r, g, b, a
}

// IsEmpty implements fill.EmptyHint: it scans the tile's pixels and reports
// it empty when every channel of every pixel is zero, letting the
// uniform-tile short-circuit skip it outright.
func (m *MemTile) IsEmpty() bool {
	for _, v := range m.pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// MemSurface is a sparse, mutex-guarded map of tile coordinate to MemTile.
// Tiles are allocated lazily on first write; a tile never requested for
// write simply does not exist, matching a real painting surface where
// untouched regions cost no memory.
type MemSurface struct {
	mu    sync.Mutex
	tiles map[tile.Coord]*MemTile

	// observed records the last rectangle NotifyObservers was called with,
	// standing in for a real surface's mipmap-dirty hook: tests and the
	// demo CLI can inspect it to confirm which pixels were touched.
	observed struct {
		x, y, w, h int
		dirty      bool
	}
}

// NewMemSurface returns an empty surface.
func NewMemSurface() *MemSurface {
	return &MemSurface{tiles: make(map[tile.Coord]*MemTile)}
}

// AcquireRead implements fill.Source. A tile that has never been written is
// served as a fresh, all-zero MemTile rather than an error: reading past
// the edge of a painted region is a normal occurrence for a flood fill
// whose bbox extends beyond what's been drawn.
func (s *MemSurface) AcquireRead(tx, ty int) (fill.PixelTile, func(), error) {
	s.mu.Lock()
	t, ok := s.tiles[tile.Coord{TX: tx, TY: ty}]
	s.mu.Unlock()
	if !ok {
		t = &MemTile{}
	}
	return t, func() {}, nil
}

// AcquireWrite implements compose.Destination, creating the tile on first
// write.
func (s *MemSurface) AcquireWrite(tx, ty int) (compose.WritableTile, func(), error) {
	tc := tile.Coord{TX: tx, TY: ty}
	s.mu.Lock()
	t, ok := s.tiles[tc]
	if !ok {
		t = &MemTile{}
		s.tiles[tc] = t
	}
	s.mu.Unlock()
	return t, func() {}, nil
}

// HasTile implements compose.Destination.
func (s *MemSurface) HasTile(tx, ty int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tiles[tile.Coord{TX: tx, TY: ty}]
	return ok
}

// NotifyObservers implements compose.Destination's dirty-rectangle hook.
// A real painting surface would invalidate cached mipmap levels over this
// rectangle; this surface just records it for inspection.
func (s *MemSurface) NotifyObservers(x, y, w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observed.x, s.observed.y, s.observed.w, s.observed.h = x, y, w, h
	s.observed.dirty = true
}

// LastNotified returns the most recent NotifyObservers rectangle and
// whether one has happened yet.
func (s *MemSurface) LastNotified() (x, y, w, h int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observed.x, s.observed.y, s.observed.w, s.observed.h, s.observed.dirty
}

// SetPixel paints a single pixel of the surface directly in premultiplied
// RGBA, allocating its tile if needed. It exists for tests and for the demo
// CLI to stage a source image without going through the fill engine.
func (s *MemSurface) SetPixel(x, y int, r, g, b, a uint16) error {
	tc, px, py := tile.PixelToTile(x, y)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tiles[tc]
	if !ok {
		t = &MemTile{}
		s.tiles[tc] = t
	}
	t.Set(px, py, r, g, b, a)
	return nil
}

// Pixel reads a single pixel in premultiplied RGBA, returning the
// transparent zero value for any tile never written.
func (s *MemSurface) Pixel(x, y int) (r, g, b, a uint16) {
	tc, px, py := tile.PixelToTile(x, y)
	s.mu.Lock()
	t, ok := s.tiles[tc]
	s.mu.Unlock()
	if !ok {
		return 0, 0, 0, 0
	}
	return t.At(px, py)
}

// TileCount reports how many tiles the surface has allocated, used by
// tests to check that untouched regions never cost memory.
func (s *MemSurface) TileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tiles)
}

// validateBounds returns an error when (x, y) lies outside a w×h canvas
// anchored at the origin. Nothing in this module calls it; the core engine
// never rejects out-of-range coordinates.
func validateBounds(w, h, x, y int) error {
	if x < 0 || y < 0 || x >= w || y >= h {
		return fmt.Errorf("surface: pixel (%d,%d) outside %dx%d canvas", x, y, w, h)
	}
	return nil
}
