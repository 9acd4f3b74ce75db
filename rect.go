// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"fmt"
	"math"
)

// Rect represents a rectangle with float64 coordinates, as produced by
// vector geometry code. It must be integer-valued to be used as a region
// argument; see Rect.Box.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// MakeRect creates a Rect from position and size.
func MakeRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// IsInt reports whether every coordinate of r is integer-valued.
func (r Rect) IsInt() bool {
	return isInt(r.X) && isInt(r.Y) && isInt(r.W) && isInt(r.H)
}

// Box converts r to a Box.
//
// Coordinates are never rounded: a non-integer rectangle yields
// ErrNonInteger, a negative width or height yields ErrInvalidRect and
// coordinates outside [MinCoord, MaxCoord] yield ErrCoordRange.
func (r Rect) Box() (Box, error) {
	if !r.IsInt() {
		return Box{}, fmt.Errorf("%w: %+v", ErrNonInteger, r)
	}
	if r.W < 0 || r.H < 0 {
		return Box{}, fmt.Errorf("%w: %+v", ErrInvalidRect, r)
	}
	if !coordOK(r.X) || !coordOK(r.Y) || !coordOK(r.Right()) || !coordOK(r.Bottom()) {
		return Box{}, fmt.Errorf("%w: %+v", ErrCoordRange, r)
	}
	return Box{X1: int(r.X), Y1: int(r.Y), X2: int(r.Right()), Y2: int(r.Bottom())}, nil
}

// RectFromBox converts a Box to a Rect.
func RectFromBox(b Box) Rect {
	return Rect{X: float64(b.X1), Y: float64(b.Y1), W: float64(b.Width()), H: float64(b.Height())}
}

func isInt(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

func coordOK(v float64) bool {
	return v >= MinCoord && v <= MaxCoord
}
