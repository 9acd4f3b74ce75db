// Package damage accumulates the changed areas of a surface as a region,
// optionally widened to a tile grid for tile-based redraw.
package damage

import (
	"sync"

	"github.com/gogpu/region"
)

// Tracker collects damaged boxes within fixed bounds.
//
// Damage is clipped to the bounds and, when the tile size is larger than one
// pixel, widened to whole tiles of a grid anchored at the bounds origin.
// Tiles on the right and bottom edges may be partial.
//
// All methods are safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	bounds region.Box
	tileW  int
	tileH  int
	dirty  region.Region
}

// NewTracker creates a clean tracker for bounds with the given tile size.
// A tile size of 1 tracks damage at pixel granularity.
// Returns nil if bounds is empty or invalid or a tile size is not positive.
func NewTracker(bounds region.Box, tileW, tileH int) *Tracker {
	if !bounds.Valid() || bounds.Empty() || tileW <= 0 || tileH <= 0 {
		return nil
	}
	return &Tracker{bounds: bounds, tileW: tileW, tileH: tileH}
}

// Bounds returns the tracked area.
func (t *Tracker) Bounds() region.Box { return t.bounds }

// TileSize returns the tile width and height.
func (t *Tracker) TileSize() (w, h int) { return t.tileW, t.tileH }

// TilesX returns the number of tile columns, counting a partial last column.
func (t *Tracker) TilesX() int { return ceilDiv(t.bounds.Width(), t.tileW) }

// TilesY returns the number of tile rows, counting a partial last row.
func (t *Tracker) TilesY() int { return ceilDiv(t.bounds.Height(), t.tileH) }

// snap clips b to the bounds and widens it to whole tiles.
func (t *Tracker) snap(b region.Box) region.Box {
	b = b.Intersect(t.bounds)
	if b.Empty() {
		return region.Box{}
	}
	ox, oy := t.bounds.X1, t.bounds.Y1
	s := region.Box{
		X1: ox + (b.X1-ox)/t.tileW*t.tileW,
		Y1: oy + (b.Y1-oy)/t.tileH*t.tileH,
		X2: ox + ceilDiv(b.X2-ox, t.tileW)*t.tileW,
		Y2: oy + ceilDiv(b.Y2-oy, t.tileH)*t.tileH,
	}
	return s.Intersect(t.bounds)
}

// Mark records b as damaged. Parts outside the bounds are ignored.
// An invalid box is rejected with region.ErrInvalidRect.
func (t *Tracker) Mark(b region.Box) error {
	if !b.Valid() {
		return region.ErrInvalidRect
	}
	s := t.snap(b)
	if s.Empty() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty.UnionRect(&t.dirty, s)
}

// MarkRegion records every box of r as damaged.
func (t *Tracker) MarkRegion(r *region.Region) error {
	if r == nil {
		return region.ErrNilRegion
	}
	if t.tileW == 1 && t.tileH == 1 {
		clipped := new(region.Region)
		if err := clipped.IntersectRect(r, t.bounds); err != nil {
			return err
		}
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.dirty.Union(&t.dirty, clipped)
	}

	snapped := new(region.Region)
	for b := range r.All() {
		if err := snapped.UnionRect(snapped, t.snap(b)); err != nil {
			return err
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty.Union(&t.dirty, snapped)
}

// MarkAll marks the whole bounds as damaged.
func (t *Tracker) MarkAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	// The bounds were validated by NewTracker.
	_ = t.dirty.Reset(t.bounds)
}

// Clear marks everything clean.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty.Clear()
}

// IsEmpty reports whether nothing is damaged.
func (t *Tracker) IsEmpty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty.IsEmpty()
}

// Region returns a copy of the accumulated damage.
func (t *Tracker) Region() *region.Region {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty.Clone()
}

// Take returns the accumulated damage and marks everything clean.
func (t *Tracker) Take() *region.Region {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.dirty.Clone()
	t.dirty.Clear()
	return r
}

// DirtyTiles returns the damaged tiles as {tx, ty} grid coordinates in
// row-major order.
func (t *Tracker) DirtyTiles() [][2]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tiles [][2]int
	if t.dirty.IsEmpty() {
		return tiles
	}
	for ty := range t.TilesY() {
		y1 := t.bounds.Y1 + ty*t.tileH
		for tx := range t.TilesX() {
			x1 := t.bounds.X1 + tx*t.tileW
			tile := region.Box{X1: x1, Y1: y1, X2: x1 + t.tileW, Y2: y1 + t.tileH}.Intersect(t.bounds)
			if t.dirty.ContainsRect(tile) != region.OverlapOut {
				tiles = append(tiles, [2]int{tx, ty})
			}
		}
	}
	return tiles
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
