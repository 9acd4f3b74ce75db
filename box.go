// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"fmt"
	"image"
	"math"
)

// Coordinate limits. Every box stored in a Region has coordinates in
// [MinCoord, MaxCoord], so widths, heights and areas fit in 64 bits.
const (
	MinCoord = math.MinInt32
	MaxCoord = math.MaxInt32
)

// Box is a half-open integer rectangle covering the points (x, y) with
// X1 <= x < X2 and Y1 <= y < Y2.
//
// A box with X1 == X2 or Y1 == Y2 is empty. A box with X1 > X2 or Y1 > Y2
// is invalid and is rejected wherever a box is accepted as an argument.
type Box struct {
	X1, Y1, X2, Y2 int
}

// XYWH creates a Box from its top-left corner and size.
func XYWH(x, y, w, h int) Box {
	return Box{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// BoxFromImageRect converts an image.Rectangle to a Box.
// The rectangle is canonicalized first, so it never yields an invalid box.
func BoxFromImageRect(r image.Rectangle) Box {
	r = r.Canon()
	return Box{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// ImageRect converts b to an image.Rectangle.
func (b Box) ImageRect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Width returns X2 - X1.
func (b Box) Width() int { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b Box) Height() int { return b.Y2 - b.Y1 }

// Empty reports whether b contains no points.
func (b Box) Empty() bool {
	return b.X1 >= b.X2 || b.Y1 >= b.Y2
}

// Valid reports whether b is well-formed: corners in order and
// coordinates within [MinCoord, MaxCoord].
func (b Box) Valid() bool {
	return b.X1 <= b.X2 && b.Y1 <= b.Y2 && inRange(b)
}

// Area returns the number of integer points covered by b.
func (b Box) Area() uint64 {
	if b.Empty() {
		return 0
	}
	return uint64(b.Width()) * uint64(b.Height()) //nolint:gosec // non-negative
}

// ContainsPoint reports whether (x, y) lies inside b.
func (b Box) ContainsPoint(x, y int) bool {
	return x >= b.X1 && x < b.X2 && y >= b.Y1 && y < b.Y2
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return b.X1 <= o.X1 && b.X2 >= o.X2 && b.Y1 <= o.Y1 && b.Y2 >= o.Y2
}

// Overlaps reports whether b and o share at least one point.
func (b Box) Overlaps(o Box) bool {
	return b.X2 > o.X1 && b.X1 < o.X2 && b.Y2 > o.Y1 && b.Y1 < o.Y2
}

// Intersect returns the largest box contained by both b and o,
// or the zero Box if they do not overlap.
func (b Box) Intersect(o Box) Box {
	r := Box{
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
		X2: min(b.X2, o.X2),
		Y2: min(b.Y2, o.Y2),
	}
	if r.Empty() {
		return Box{}
	}
	return r
}

// Bound returns the smallest box containing both b and o.
// Empty boxes do not contribute.
func (b Box) Bound(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}

// Translate returns b shifted by (dx, dy).
func (b Box) Translate(dx, dy int) Box {
	return Box{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// String returns "(x1,y1)-(x2,y2)".
func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.X1, b.Y1, b.X2, b.Y2)
}

func inRange(b Box) bool {
	return b.X1 >= MinCoord && b.X2 <= MaxCoord && b.Y1 >= MinCoord && b.Y2 <= MaxCoord &&
		b.X2 >= MinCoord && b.X1 <= MaxCoord && b.Y2 >= MinCoord && b.Y1 <= MaxCoord
}

// checkBox validates a box argument.
func checkBox(b Box) error {
	if b.X1 > b.X2 || b.Y1 > b.Y2 {
		return fmt.Errorf("%w: %v", ErrInvalidRect, b)
	}
	if !inRange(b) {
		return fmt.Errorf("%w: %v", ErrCoordRange, b)
	}
	return nil
}
