// Package region provides a set algebra over integer rectangles for 2D
// rendering.
//
// # Overview
//
// A Region represents an arbitrary area of the integer plane as a list of
// disjoint boxes. It is the clip and damage primitive of the gogpu
// ecosystem: compositors clip to regions, windowing code accumulates damage
// into them, and masks are converted to them for fast containment tests.
//
// # Quick Start
//
//	import "github.com/gogpu/region"
//
//	a := region.NewRect(0, 0, 10, 10)
//	b := region.NewRect(20, 0, 10, 10)
//
//	var r region.Region
//	if err := r.Union(a, b); err != nil {
//	    return err
//	}
//	r.Extents()  // (0,0)-(30,10)
//	r.NumRects() // 2
//
//	if _, ok := r.ContainsPoint(25, 5); ok {
//	    // inside
//	}
//
// # Canonical Form
//
// Boxes are grouped into bands of equal vertical extent, sorted top to
// bottom and left to right. Touching boxes in a band are merged, and
// adjacent bands with identical horizontal spans are merged. The
// decomposition of a set of points is therefore unique, and Equal compares
// regions by comparing box lists.
//
// # Operators
//
// Union, Intersect, Subtract and Xor share a single band sweep that walks
// both operands top to bottom and combines the x-spans of overlapping
// bands. The receiver is the destination, in the style of math/big:
//
//	r.Union(a, b)     // r = a ∪ b
//	r.Subtract(r, b)  // r = r \ b; the receiver may alias an operand
//
// Results are built in fresh storage and installed only on success, so an
// operation that fails leaves every argument unchanged.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Boxes are half-open: X2 and Y2 are outside the box
//
// # Images
//
// FromImage and FromCoverage derive a region from pixel coverage, such as
// the non-transparent pixels of a mask.
//
// # Logging
//
// The package is silent by default. See SetLogger.
package region

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
