// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import "sort"

// Overlap classifies how a rectangle relates to a region.
type Overlap uint8

const (
	// OverlapOut means the rectangle shares no point with the region.
	OverlapOut Overlap = iota

	// OverlapIn means the rectangle lies entirely inside the region.
	OverlapIn

	// OverlapPart means the rectangle is partially covered.
	OverlapPart
)

// String returns the overlap name.
func (o Overlap) String() string {
	switch o {
	case OverlapOut:
		return "Out"
	case OverlapIn:
		return "In"
	case OverlapPart:
		return "Part"
	default:
		return "Unknown"
	}
}

// findBoxForY returns the index of the first box with Y2 > y, or
// len(boxes) if there is none. Bands are sorted, so this is the first box
// of the band containing y or of the first band below it.
func findBoxForY(boxes []Box, y int) int {
	return sort.Search(len(boxes), func(i int) bool {
		return boxes[i].Y2 > y
	})
}

// ContainsPoint reports whether (x, y) lies inside r, and if so returns
// the box that contains it.
func (r *Region) ContainsPoint(x, y int) (Box, bool) {
	if len(r.boxes) == 0 || !r.extents.ContainsPoint(x, y) {
		return Box{}, false
	}
	if len(r.boxes) == 1 {
		return r.extents, true
	}

	start := findBoxForY(r.boxes, y)
	if start == len(r.boxes) || r.boxes[start].Y1 > y {
		return Box{}, false
	}
	rest := r.boxes[start:]
	bandY1 := rest[0].Y1
	band := rest[:sort.Search(len(rest), func(i int) bool {
		return rest[i].Y1 > bandY1
	})]

	i := sort.Search(len(band), func(i int) bool {
		return band[i].X2 > x
	})
	if i == len(band) || band[i].X1 > x {
		return Box{}, false
	}
	return band[i], true
}

// ContainsRect reports whether b lies outside, inside or partially inside r.
// An empty b is always OverlapOut.
func (r *Region) ContainsRect(b Box) Overlap {
	if len(r.boxes) == 0 || b.Empty() || !r.extents.Overlaps(b) {
		return OverlapOut
	}
	if len(r.boxes) == 1 {
		if r.extents.Contains(b) {
			return OverlapIn
		}
		return OverlapPart
	}

	partIn, partOut := false, false

	// (x, y) is the upper-left corner of the part of b not yet accounted for.
	x, y := b.X1, b.Y1

	boxes := r.boxes
	for i := 0; i < len(boxes); i++ {
		if boxes[i].Y2 <= y {
			// Catch up to the band containing y, skipping the rest of the
			// band just finished.
			i += findBoxForY(boxes[i:], y)
			if i == len(boxes) {
				break
			}
		}
		box := boxes[i]

		if box.Y1 > y {
			// Rows above this band are uncovered.
			partOut = true
			if partIn || box.Y1 >= b.Y2 {
				break
			}
			y = box.Y1
		}

		if box.X2 <= x {
			continue
		}

		if box.X1 > x {
			// Columns to the left of this box are uncovered.
			partOut = true
			if partIn {
				break
			}
		}

		if box.X1 < b.X2 {
			partIn = true
			if partOut {
				break
			}
		}

		if box.X2 >= b.X2 {
			// Finished with this band.
			y = box.Y2
			if y >= b.Y2 {
				break
			}
			x = b.X1
		} else {
			// Boxes in a band never touch, so the span right of this box
			// is uncovered.
			partOut = true
			break
		}
	}

	if !partIn {
		return OverlapOut
	}
	if partOut || y < b.Y2 {
		return OverlapPart
	}
	return OverlapIn
}
