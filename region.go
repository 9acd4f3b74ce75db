// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"iter"
	"strings"
)

// Region is a set of integer points stored as a canonical list of
// disjoint boxes.
//
// Boxes are grouped into bands: maximal runs of boxes sharing the same
// Y1 and Y2. Bands are sorted top to bottom and never overlap; boxes within
// a band are sorted left to right and never touch. Vertically adjacent bands
// with identical x-spans are merged. Because the decomposition is unique,
// two regions cover the same points exactly when their box lists are equal.
//
// The zero value is an empty region ready to use.
//
// Thread safety: a Region is not safe for concurrent mutation. Callers
// must serialize access to each Region; distinct Regions are independent.
type Region struct {
	extents Box
	boxes   []Box
}

// New returns an empty region.
func New() *Region {
	return &Region{}
}

// NewRect returns the region covering the rectangle at (x, y) with the
// given width and height.
//
// A zero width or height yields the empty region. A negative width or
// height, or a rectangle outside [MinCoord, MaxCoord], also yields the
// empty region and is reported through the package logger; use FromRect
// to get an error instead.
func NewRect(x, y, w, h int) *Region {
	r := &Region{}
	if w == 0 || h == 0 {
		return r
	}
	b := XYWH(x, y, w, h)
	if err := checkBox(b); err != nil {
		Logger().Warn("region: invalid rectangle", "x", x, "y", y, "w", w, "h", h, "err", err)
		return r
	}
	r.setBox(b)
	return r
}

// FromRect returns the region covering r.
// Non-integer, negative-sized or out-of-range rectangles are rejected.
func FromRect(rect Rect) (*Region, error) {
	b, err := rect.Box()
	if err != nil {
		return nil, err
	}
	r := &Region{}
	r.setBox(b)
	return r, nil
}

// NewWithExtents returns a single-box region equal to extents.
// Any finer shape the caller may have in mind is ignored.
// An empty box yields the empty region. An inverted or out-of-range box
// also yields the empty region and is reported through the package logger;
// use Reset to get an error instead.
func NewWithExtents(extents Box) *Region {
	r := &Region{}
	if err := checkBox(extents); err != nil {
		Logger().Warn("region: invalid extents", "box", extents.String(), "err", err)
		return r
	}
	r.setBox(extents)
	return r
}

// setBox makes r the single-box region b, reusing storage.
// b must be valid; an empty b makes r empty.
func (r *Region) setBox(b Box) {
	if b.Empty() {
		r.Clear()
		return
	}
	r.extents = b
	r.boxes = append(r.boxes[:0], b)
}

// setBoxes installs a canonical box list produced by an operation and
// recomputes the extents.
func (r *Region) setBoxes(boxes []Box) {
	if len(boxes) == 0 {
		r.Clear()
		return
	}
	r.boxes = boxes
	r.extents = boundBoxes(boxes)
}

// boundBoxes returns the bounding box of a canonical box list.
// The first and last boxes carry the vertical bounds; only x needs a scan.
func boundBoxes(boxes []Box) Box {
	e := Box{
		X1: boxes[0].X1,
		Y1: boxes[0].Y1,
		X2: boxes[len(boxes)-1].X2,
		Y2: boxes[len(boxes)-1].Y2,
	}
	for _, b := range boxes {
		if b.X1 < e.X1 {
			e.X1 = b.X1
		}
		if b.X2 > e.X2 {
			e.X2 = b.X2
		}
	}
	return e
}

// Extents returns the bounding box of r, or the zero Box if r is empty.
func (r *Region) Extents() Box {
	return r.extents
}

// NotEmpty reports whether r contains at least one point.
func (r *Region) NotEmpty() bool {
	return len(r.boxes) > 0
}

// IsEmpty reports whether r contains no points.
func (r *Region) IsEmpty() bool {
	return len(r.boxes) == 0
}

// NumRects returns the number of boxes in the canonical decomposition.
func (r *Region) NumRects() int {
	return len(r.boxes)
}

// Rects returns a copy of the canonical box list in band order, then
// left to right.
func (r *Region) Rects() []Box {
	if len(r.boxes) == 0 {
		return nil
	}
	out := make([]Box, len(r.boxes))
	copy(out, r.boxes)
	return out
}

// All returns an iterator over the boxes of r in band order.
//
// Each call to the returned sequence iterates over a snapshot of r taken
// when All was called, so the sequence is restartable and unaffected by
// later mutation of r.
func (r *Region) All() iter.Seq[Box] {
	snapshot := r.Rects()
	return func(yield func(Box) bool) {
		for _, b := range snapshot {
			if !yield(b) {
				return
			}
		}
	}
}

// Bands returns an iterator over the bands of r, yielding each band's
// index and its boxes. Like All, it iterates over a snapshot.
func (r *Region) Bands() iter.Seq2[int, []Box] {
	snapshot := r.Rects()
	return func(yield func(int, []Box) bool) {
		band := 0
		for i := 0; i < len(snapshot); {
			end := bandEnd(snapshot, i)
			if !yield(band, snapshot[i:end:end]) {
				return
			}
			band++
			i = end
		}
	}
}

// Area returns the number of integer points in r.
func (r *Region) Area() uint64 {
	var area uint64
	for _, b := range r.boxes {
		area += b.Area()
	}
	return area
}

// Equal reports whether r and o cover exactly the same points.
func (r *Region) Equal(o *Region) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	if r.extents != o.extents || len(r.boxes) != len(o.boxes) {
		return false
	}
	for i := range r.boxes {
		if r.boxes[i] != o.boxes[i] {
			return false
		}
	}
	return true
}

// Set makes r a copy of src and returns r.
func (r *Region) Set(src *Region) *Region {
	if r == src {
		return r
	}
	if len(src.boxes) == 0 {
		r.Clear()
		return r
	}
	r.extents = src.extents
	r.boxes = append(r.boxes[:0], src.boxes...)
	return r
}

// Copy copies r into dst.
func (r *Region) Copy(dst *Region) error {
	if r == nil || dst == nil {
		return ErrNilRegion
	}
	dst.Set(r)
	return nil
}

// Clone returns an independent copy of r.
func (r *Region) Clone() *Region {
	return new(Region).Set(r)
}

// Translate shifts every box of r by (dx, dy) in place and returns r.
// Shifting preserves band order and adjacency, so r stays canonical.
// Parts shifted beyond [MinCoord, MaxCoord] are clipped away.
func (r *Region) Translate(dx, dy int) *Region {
	if len(r.boxes) == 0 || (dx == 0 && dy == 0) {
		return r
	}
	const span = int64(MaxCoord) - MinCoord
	if d := int64(dx); d > span || d < -span {
		r.Clear()
		return r
	}
	if d := int64(dy); d > span || d < -span {
		r.Clear()
		return r
	}
	for i := range r.boxes {
		r.boxes[i] = r.boxes[i].Translate(dx, dy)
	}
	r.extents = r.extents.Translate(dx, dy)
	if !inRange(r.extents) {
		// Intersecting never grows the box count, so it cannot fail.
		_ = r.IntersectRect(r, coordSpace)
	}
	return r
}

// Reset discards the contents of r and makes it the single-box region b,
// reusing storage.
func (r *Region) Reset(b Box) error {
	if r == nil {
		return ErrNilRegion
	}
	if err := checkBox(b); err != nil {
		return err
	}
	r.setBox(b)
	return nil
}

// Clear makes r the empty region, keeping its storage for reuse.
func (r *Region) Clear() {
	r.extents = Box{}
	r.boxes = r.boxes[:0]
}

// String returns a compact description listing the extents and boxes.
func (r *Region) String() string {
	var sb strings.Builder
	sb.WriteString("Region{")
	if len(r.boxes) > 0 {
		sb.WriteString("extents: ")
		sb.WriteString(r.extents.String())
		sb.WriteString(", boxes: [")
		for i, b := range r.boxes {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(b.String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("}")
	return sb.String()
}

// bandEnd returns the index one past the last box of the band that starts
// at boxes[start].
func bandEnd(boxes []Box, start int) int {
	y1 := boxes[start].Y1
	end := start + 1
	for end < len(boxes) && boxes[end].Y1 == y1 {
		end++
	}
	return end
}
